package grading

import (
	"strings"
	"testing"
)

func TestEstimateGradeEmptyNotes(t *testing.T) {
	if got := EstimateGrade("   "); !strings.Contains(got, "Unable to estimate") {
		t.Errorf("empty notes should be rejected, got %q", got)
	}
}

func TestEstimateGradeKeywords(t *testing.T) {
	// 无负面关键词时维持满分基准
	got := EstimateGrade("pack fresh, pristine")
	if !strings.Contains(got, "PSA 10") {
		t.Errorf("pristine card should estimate gem mint, got %q", got)
	}

	// crease是重大缺陷
	got = EstimateGrade("light crease on the corner")
	if !strings.Contains(got, "Moderate confidence: major defects noted") {
		t.Errorf("crease should be flagged as major defect, got %q", got)
	}
	if strings.Contains(got, "PSA 10") {
		t.Errorf("creased card must not be gem mint, got %q", got)
	}
}

func TestEstimateGradeExplicitMention(t *testing.T) {
	got := EstimateGrade("already graded psa 9")
	if !strings.Contains(got, "High confidence: explicit grade mentioned") {
		t.Errorf("explicit grade should raise confidence, got %q", got)
	}
}

func TestScoreToGradeBounds(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{10, 10},
		{9.5, 10},
		{9.4, 9},
		{8.5, 9},
		{7.5, 8},
		{6.5, 7},
		{5.5, 6},
		{4.5, 5},
		{3.5, 4},
		{2.5, 3},
		{1.75, 2},
		{1.25, 1.5},
		{1.0, 1},
	}
	for _, tt := range tests {
		if got := scoreToGrade(tt.score); got.Numeric != tt.want {
			t.Errorf("scoreToGrade(%v) = %v, want %v", tt.score, got.Numeric, tt.want)
		}
	}
}

func TestAssessCondition(t *testing.T) {
	a := AssessCondition("")
	if a.Grade != nil || a.Confidence != "none" {
		t.Errorf("empty notes should yield no grade, got %+v", a)
	}

	a = AssessCondition("heavily played, creased, water damage")
	if a.Grade == nil {
		t.Fatal("expected a grade")
	}
	if *a.Grade > 2 {
		t.Errorf("wrecked card graded too high: %v", *a.Grade)
	}
	if a.Confidence != "high" {
		t.Errorf("three factors should give high confidence, got %s", a.Confidence)
	}
	if !strings.Contains(a.Recommendation, "major defects") {
		t.Errorf("recommendation should mention defects, got %q", a.Recommendation)
	}

	// 评分钳在[1,10]
	if a.ScoreBreakdown.Final < 1 {
		t.Errorf("final score below floor: %v", a.ScoreBreakdown.Final)
	}
}

func TestEstimateCost(t *testing.T) {
	// 高价卡 + gem mint：净收益远超20，建议送评
	est := EstimateCost(100, 10)
	if est.EstimatedGradedValue != 500 {
		t.Errorf("graded value = %v, want 500 at 5x", est.EstimatedGradedValue)
	}
	if est.GradingCosts["psa"] != 40 || est.GradingCosts["cgc"] != 35 || est.GradingCosts["bgs"] != 45 {
		t.Errorf("unexpected cost table: %+v", est.GradingCosts)
	}
	if est.PotentialNetGain["psa"] != 360 {
		t.Errorf("psa net gain = %v, want 360", est.PotentialNetGain["psa"])
	}
	if est.Recommendation != "Grade" {
		t.Errorf("recommendation = %q, want Grade", est.Recommendation)
	}

	// 低价卡：送评费吃掉收益
	est = EstimateCost(10, 8)
	if est.Recommendation != "Don't grade" {
		t.Errorf("recommendation = %q, want Don't grade", est.Recommendation)
	}

	// 低评级走0.5倍
	est = EstimateCost(100, 1)
	if est.EstimatedGradedValue != 50 {
		t.Errorf("graded value = %v, want 50 at 0.5x", est.EstimatedGradedValue)
	}
}
