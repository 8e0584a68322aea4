package grading

import (
	"fmt"
	"regexp"
	"strings"
)

// 品相评级估算：从用户的品相描述推测送评等级，并给出
// 送评费用和预期增值的粗算。关键词权重取自主流评级机构的
// 公开标准，只是参考值，不保证和实际评级一致。

// Grade PSA量表的一档
type Grade struct {
	Numeric float64
	Label   string
}

var (
	GradeGemMint = Grade{10, "Gem Mint"}
	GradeMint    = Grade{9, "Mint"}
	GradeNmMt    = Grade{8, "NM-MT"}
	GradeNm      = Grade{7, "Near Mint"}
	GradeExMt    = Grade{6, "EX-MT"}
	GradeEx      = Grade{5, "Excellent"}
	GradeVgEx    = Grade{4, "VG-EX"}
	GradeVg      = Grade{3, "Very Good"}
	GradeGood    = Grade{2, "Good"}
	GradeFair    = Grade{1.5, "Fair"}
	GradePoor    = Grade{1, "Poor"}
)

type keywordImpact struct {
	keyword string
	impact  int
}

// 品相关键词对评分的影响。子串匹配，顺序决定factor列表的呈现顺序
var conditionKeywords = []keywordImpact{
	// 负面
	{"scratch", -2},
	{"scratched", -2},
	{"indent", -2},
	{"indented", -2},
	{"crease", -4},
	{"creased", -4},
	{"tear", -5},
	{"torn", -5},
	{"bend", -3},
	{"bent", -3},
	{"warp", -3},
	{"warped", -3},
	{"water", -4},
	{"water damage", -5},
	{"stain", -3},
	{"stained", -3},
	{"discolor", -2},
	{"discolored", -2},
	{"yellow", -2},
	{"yellowing", -2},
	{"faded", -2},
	{"fade", -2},
	{"chipped", -3},
	{"chip", -3},
	{"peeling", -3},
	{"peel", -3},
	{"heavy", -3},
	{"major", -3},
	{"significant", -3},
	{"serious", -4},
	{"severe", -5},
	{"extensive", -4},
	{"edge wear", -2},
	{"corner wear", -2},
	{"surface wear", -2},
	{" whitening", -1},
	{"foxing", -2},
	{"mold", -5},
	{"mildew", -4},
	{"hole", -5},
	{"punched", -4},
	{"written", -2},
	{"writing", -2},
	{"mark", -2},
	{"marked", -2},
	{"ink", -2},
	{"pen", -2},
	{"pencil", -1},

	// 正面
	{"gem", 2},
	{"gem mint", 3},
	{"pristine", 2},
	{"perfect", 2},
	{"flawless", 2},
	{"pack fresh", 1},
	{"packfresh", 1},
	{"mint", 1},
	{"near mint", 0},
	{"nm", 0},
	{"excellent", -1},
	{"ex", -1},
	{"very good", -2},
	{"vg", -2},
	{"good", -3},
	{"played", -4},
	{"heavily played", -5},
	{"hp", -4},
	{"poor", -5},
	{"damaged", -5},
}

// 显式提到的评级（PSA 9、bgs 9.5、grade: 8……）直接作为基准分
var gradePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bpsa\s*(10|9|8|7|6|5|4|3|2|1)\b`),
	regexp.MustCompile(`\bcgc\s*(10|9|8|7|6|5|4|3|2|1)\b`),
	regexp.MustCompile(`\bbgs?\s*(10|9\.5|9|8\.5|8|7\.5|7|6|5|4|3|2|1)\b`),
	regexp.MustCompile(`\bgrade\s*:?\s*(10|9|8|7|6|5|4|3|2|1)\b`),
}

// analysis 单次描述分析的中间结果
type analysis struct {
	Factors       []string
	Adjustment    int
	BaseGrade     float64
	ExplicitGrade *float64
}

func analyzeNotes(notes string) (float64, analysis) {
	lower := strings.ToLower(notes)
	out := analysis{Factors: []string{}, BaseGrade: 10.0}

	for _, pattern := range gradePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		var g float64
		fmt.Sscanf(m[1], "%f", &g)
		out.ExplicitGrade = &g
		out.Factors = append(out.Factors, fmt.Sprintf("Explicit grade mention: %g", g))
		break
	}

	for _, kw := range conditionKeywords {
		if !strings.Contains(lower, kw.keyword) {
			continue
		}
		out.Adjustment += kw.impact
		severity := "positive"
		if kw.impact < -2 {
			severity = "major"
		} else if kw.impact < 0 {
			severity = "minor"
		}
		out.Factors = append(out.Factors, fmt.Sprintf("%s: '%s' (%+d)", severity, kw.keyword, kw.impact))
	}

	if out.ExplicitGrade != nil {
		out.BaseGrade = *out.ExplicitGrade
	}
	score := out.BaseGrade + float64(out.Adjustment)
	if score < 1.0 {
		score = 1.0
	}
	if score > 10.0 {
		score = 10.0
	}
	return score, out
}

func scoreToGrade(score float64) Grade {
	switch {
	case score >= 9.5:
		return GradeGemMint
	case score >= 8.5:
		return GradeMint
	case score >= 7.5:
		return GradeNmMt
	case score >= 6.5:
		return GradeNm
	case score >= 5.5:
		return GradeExMt
	case score >= 4.5:
		return GradeEx
	case score >= 3.5:
		return GradeVgEx
	case score >= 2.5:
		return GradeVg
	case score >= 1.75:
		return GradeGood
	case score >= 1.25:
		return GradeFair
	default:
		return GradePoor
	}
}

// EstimateGrade 从品相描述估算评级，返回带置信度说明的单行结果
func EstimateGrade(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return "Unable to estimate - no condition notes provided"
	}

	score, a := analyzeNotes(notes)
	grade := scoreToGrade(score)
	result := fmt.Sprintf("PSA %g (%s)", grade.Numeric, grade.Label)

	majorCount := 0
	for _, f := range a.Factors {
		if strings.HasPrefix(f, "major") {
			majorCount++
		}
	}
	switch {
	case len(a.Factors) == 0:
		result += " - Low confidence: no condition indicators found"
	case a.ExplicitGrade != nil:
		result += " - High confidence: explicit grade mentioned"
	case majorCount > 0:
		result += " - Moderate confidence: major defects noted"
	default:
		result += " - Moderate confidence: based on condition keywords"
	}
	return result
}

// ScoreBreakdown 评分明细
type ScoreBreakdown struct {
	Base       float64 `json:"base"`
	Adjustment int     `json:"adjustment"`
	Final      float64 `json:"final"`
}

// Assessment 品相评估结果
type Assessment struct {
	Grade          *float64       `json:"grade"`
	Label          string         `json:"label"`
	Confidence     string         `json:"confidence"`
	Factors        []string       `json:"factors"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Recommendation string         `json:"recommendation"`
}

// AssessCondition 详细的品相评估：评级、置信度、影响因素和送评建议
func AssessCondition(notes string) Assessment {
	if strings.TrimSpace(notes) == "" {
		return Assessment{
			Label:          "Unknown",
			Confidence:     "none",
			Factors:        []string{},
			Recommendation: "Provide condition notes for assessment",
		}
	}

	score, a := analyzeNotes(notes)
	grade := scoreToGrade(score)

	confidence := "low"
	switch {
	case a.ExplicitGrade != nil:
		confidence = "high"
	case len(a.Factors) >= 3:
		confidence = "high"
	case len(a.Factors) >= 1:
		confidence = "moderate"
	}

	majorCount := 0
	for _, f := range a.Factors {
		if strings.HasPrefix(f, "major") {
			majorCount++
		}
	}
	var recommendation string
	switch {
	case majorCount > 0:
		recommendation = fmt.Sprintf("Card has major defects. Professional grading may not be worthwhile. Estimated value impact: -%d%%", majorCount*20)
	case score >= 9:
		recommendation = "Excellent condition! Consider professional grading for valuable cards."
	case score >= 7:
		recommendation = "Good condition. Grade-worthy if card value > $50."
	case score >= 5:
		recommendation = "Moderate wear. Only grade if card is rare/valuable."
	default:
		recommendation = "Significant wear. Grading likely not recommended unless very rare."
	}

	g := grade.Numeric
	return Assessment{
		Grade:      &g,
		Label:      grade.Label,
		Confidence: confidence,
		Factors:    a.Factors,
		ScoreBreakdown: ScoreBreakdown{
			Base:       a.BaseGrade,
			Adjustment: a.Adjustment,
			Final:      round1(score),
		},
		Recommendation: recommendation,
	}
}

// 各机构标准送评单价和邮寄保险费（美元）
const (
	psaCost          = 25
	cgcCost          = 20
	bgsCost          = 30
	shippingAndCover = 15
)

// 评级对裸卡价值的粗略倍数
var gradeMultipliers = map[int]float64{
	10: 5.0,
	9:  2.5,
	8:  1.5,
	7:  1.2,
	6:  1.0,
	5:  0.9,
	4:  0.8,
	3:  0.7,
	2:  0.6,
	1:  0.5,
}

// CostEstimate 送评费用与预期收益
type CostEstimate struct {
	CurrentValue         float64            `json:"current_value"`
	EstimatedGradedValue float64            `json:"estimated_graded_value"`
	GradingCosts         map[string]float64 `json:"grading_costs"`
	PotentialNetGain     map[string]float64 `json:"potential_net_gain"`
	Recommendation       string             `json:"recommendation"`
}

// EstimateCost 按预估评级算送评是否划算。建议以PSA通道的净收益为准：
// 超过20美元值得送评，正收益可以考虑，否则不建议。
func EstimateCost(cardValue, estimatedGrade float64) CostEstimate {
	multiplier, ok := gradeMultipliers[int(estimatedGrade)]
	if !ok {
		multiplier = 0.5
	}
	gradedValue := cardValue * multiplier

	totalPsa := float64(psaCost + shippingAndCover)
	totalCgc := float64(cgcCost + shippingAndCover)
	totalBgs := float64(bgsCost + shippingAndCover)

	netPsa := gradedValue - cardValue - totalPsa
	netCgc := gradedValue - cardValue - totalCgc
	netBgs := gradedValue - cardValue - totalBgs

	recommendation := "Don't grade"
	if netPsa > 20 {
		recommendation = "Grade"
	} else if netPsa > 0 {
		recommendation = "Consider"
	}

	return CostEstimate{
		CurrentValue:         cardValue,
		EstimatedGradedValue: round2(gradedValue),
		GradingCosts: map[string]float64{
			"psa": totalPsa,
			"cgc": totalCgc,
			"bgs": totalBgs,
		},
		PotentialNetGain: map[string]float64{
			"psa": round2(netPsa),
			"cgc": round2(netCgc),
			"bgs": round2(netBgs),
		},
		Recommendation: recommendation,
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
