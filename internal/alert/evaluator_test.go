package alert

import (
	"cardpulse/internal/consts"
	"strings"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestEvaluateAbove(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		lastSeen  *float64
		current   float64
		wantFire  bool
	}{
		{"首次观测高于阈值", 100, nil, 120, true},
		{"首次观测低于阈值", 100, nil, 80, false},
		{"从下方穿越", 100, f(95), 105, true},
		{"恰好等于阈值不触发", 100, f(95), 100, false},
		{"持续高于阈值不重复触发", 100, f(105), 110, false},
		{"回落后再次穿越", 100, f(98), 101, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate("sv8-161", consts.ConditionAbove, tt.threshold, tt.lastSeen, tt.current)
			if d.Fire != tt.wantFire {
				t.Errorf("Fire = %v, want %v", d.Fire, tt.wantFire)
			}
			if d.NewSeenValue != tt.current {
				t.Errorf("NewSeenValue = %v, want %v", d.NewSeenValue, tt.current)
			}
		})
	}
}

func TestEvaluateBelow(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		lastSeen  *float64
		current   float64
		wantFire  bool
	}{
		{"首次观测低于阈值", 50, nil, 40, true},
		{"首次观测高于阈值", 50, nil, 60, false},
		{"从上方跌破", 50, f(55), 45, true},
		{"持续低于阈值不重复触发", 50, f(45), 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate("sv8-161", consts.ConditionBelow, tt.threshold, tt.lastSeen, tt.current)
			if d.Fire != tt.wantFire {
				t.Errorf("Fire = %v, want %v", d.Fire, tt.wantFire)
			}
		})
	}
}

func TestEvaluateChangePercent(t *testing.T) {
	// 无基线时永不触发
	d := Evaluate("sv8-161", consts.ConditionChangePercent, 10, nil, 500)
	if d.Fire {
		t.Error("unseen change_percent should never fire")
	}
	if d.NewSeenValue != 500 {
		t.Errorf("NewSeenValue = %v, want 500", d.NewSeenValue)
	}

	// 基线为0时不触发（除零保护）
	d = Evaluate("sv8-161", consts.ConditionChangePercent, 10, f(0), 500)
	if d.Fire {
		t.Error("zero baseline should never fire")
	}

	// 涨幅达到阈值
	d = Evaluate("sv8-161", consts.ConditionChangePercent, 10, f(100), 110)
	if !d.Fire {
		t.Error("+10% move should fire at threshold 10")
	}
	if !strings.Contains(d.Message, "📈") {
		t.Errorf("message should mark direction up: %s", d.Message)
	}

	// 涨幅不足
	d = Evaluate("sv8-161", consts.ConditionChangePercent, 10, f(100), 109)
	if d.Fire {
		t.Error("+9% move should not fire at threshold 10")
	}

	// 跌幅按绝对值比较，负阈值同样生效
	d = Evaluate("sv8-161", consts.ConditionChangePercent, -10, f(100), 89)
	if !d.Fire {
		t.Error("-11% move should fire at threshold -10")
	}
	if !strings.Contains(d.Message, "📉") {
		t.Errorf("message should mark direction down: %s", d.Message)
	}
}

func TestEvaluateMessages(t *testing.T) {
	d := Evaluate("sv8-161", consts.ConditionAbove, 100, nil, 123.456)
	want := "📈 sv8-161 is now $123.46 (above $100.00)"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}

	d = Evaluate("base1-4", consts.ConditionBelow, 400, f(420), 399.9)
	want = "📉 base1-4 is now $399.90 (below $400.00)"
	if d.Message != want {
		t.Errorf("message = %q, want %q", d.Message, want)
	}
}

func TestEvaluateUnknownCondition(t *testing.T) {
	d := Evaluate("sv8-161", consts.AlertCondition("bogus"), 100, f(50), 200)
	if d.Fire {
		t.Error("unknown condition should never fire")
	}
	if d.NewSeenValue != 200 {
		t.Error("observation should still be recorded for unknown condition")
	}
}
