// Package entity defines the core business entities for the domain layer.
package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestGoalProgressPercentage(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    int
	}{
		{name: "quarter of the way", current: "1250", target: "5000", want: 25},
		{name: "rounds to nearest", current: "333", target: "1000", want: 33},
		{name: "rounds half up", current: "335", target: "1000", want: 34},
		{name: "caps at 100", current: "7500", target: "5000", want: 100},
		{name: "exactly complete", current: "5000", target: "5000", want: 100},
		{name: "zero target", current: "100", target: "0", want: 0},
		{name: "nothing saved", current: "0", target: "5000", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{CurrentAmount: dec(tt.current), TargetAmount: dec(tt.target)}
			if got := g.ProgressPercentage(); got != tt.want {
				t.Errorf("ProgressPercentage() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGoalRemainingAmount(t *testing.T) {
	g := &Goal{CurrentAmount: dec("1250"), TargetAmount: dec("5000")}
	if got := g.RemainingAmount(); !got.Equal(dec("3750")) {
		t.Errorf("RemainingAmount() = %s, want 3750", got)
	}

	over := &Goal{CurrentAmount: dec("6000"), TargetAmount: dec("5000")}
	if got := over.RemainingAmount(); !got.IsZero() {
		t.Errorf("RemainingAmount() past target = %s, want 0", got)
	}
}

func TestGoalDaysRemaining(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("no target date", func(t *testing.T) {
		g := &Goal{TargetAmount: dec("100")}
		if g.DaysRemaining(now) != nil {
			t.Error("expected nil days for a goal without a target date")
		}
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		date := now.Add(36 * time.Hour)
		g := &Goal{TargetAmount: dec("100"), TargetDate: &date}
		if got := g.DaysRemaining(now); got == nil || *got != 2 {
			t.Errorf("DaysRemaining() = %v, want 2", got)
		}
	})

	t.Run("past date goes negative", func(t *testing.T) {
		date := now.Add(-48 * time.Hour)
		g := &Goal{TargetAmount: dec("100"), TargetDate: &date}
		if got := g.DaysRemaining(now); got == nil || *got != -2 {
			t.Errorf("DaysRemaining() = %v, want -2", got)
		}
		if !g.IsOverdue(now) {
			t.Error("expected goal past its date to be overdue")
		}
	})

	t.Run("completed goal is never overdue", func(t *testing.T) {
		date := now.Add(-48 * time.Hour)
		g := &Goal{TargetAmount: dec("100"), CurrentAmount: dec("100"), TargetDate: &date, IsCompleted: true}
		if g.IsOverdue(now) {
			t.Error("completed goal should not be overdue")
		}
	})
}

func TestGoalRequiredDailySavings(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("spreads the remainder over the days left", func(t *testing.T) {
		date := now.AddDate(0, 0, 10)
		g := &Goal{TargetAmount: dec("5000"), CurrentAmount: dec("1250"), TargetDate: &date}
		if got := g.RequiredDailySavings(now); !got.Equal(dec("375")) {
			t.Errorf("RequiredDailySavings() = %s, want 375", got)
		}
	})

	t.Run("overdue goal requires nothing", func(t *testing.T) {
		date := now.AddDate(0, 0, -1)
		g := &Goal{TargetAmount: dec("5000"), CurrentAmount: dec("1250"), TargetDate: &date}
		if got := g.RequiredDailySavings(now); !got.IsZero() {
			t.Errorf("RequiredDailySavings() when overdue = %s, want 0", got)
		}
	})

	t.Run("due today requires nothing", func(t *testing.T) {
		g := &Goal{TargetAmount: dec("5000"), CurrentAmount: dec("1250"), TargetDate: &now}
		if got := g.RequiredDailySavings(now); !got.IsZero() {
			t.Errorf("RequiredDailySavings() due today = %s, want 0", got)
		}
	})

	t.Run("completed goal requires nothing", func(t *testing.T) {
		date := now.AddDate(0, 0, 10)
		g := &Goal{TargetAmount: dec("5000"), CurrentAmount: dec("5000"), TargetDate: &date, IsCompleted: true}
		if got := g.RequiredDailySavings(now); !got.IsZero() {
			t.Errorf("RequiredDailySavings() when completed = %s, want 0", got)
		}
	})
}

func TestGoalMilestones(t *testing.T) {
	g := &Goal{TargetAmount: dec("5000"), CurrentAmount: dec("1250")}

	milestones := g.Milestones()
	if len(milestones) != 4 {
		t.Fatalf("expected 4 milestones, got %d", len(milestones))
	}

	wantAmounts := []string{"1250", "2500", "3750", "5000"}
	wantAchieved := []bool{true, false, false, false}
	for i, m := range milestones {
		if !m.Amount.Equal(dec(wantAmounts[i])) {
			t.Errorf("milestone %d%% amount = %s, want %s", m.Percent, m.Amount, wantAmounts[i])
		}
		if m.Achieved != wantAchieved[i] {
			t.Errorf("milestone %d%% achieved = %v, want %v", m.Percent, m.Achieved, wantAchieved[i])
		}
	}

	next := g.NextMilestone()
	if next == nil || next.Percent != 50 {
		t.Fatalf("NextMilestone() = %+v, want the 50%% entry", next)
	}

	g.CurrentAmount = dec("5000")
	if g.NextMilestone() != nil {
		t.Error("expected no next milestone once the target is reached")
	}
}

func TestGoalAddProgress(t *testing.T) {
	t.Run("closing the gap exactly completes the goal", func(t *testing.T) {
		g := &Goal{TargetAmount: dec("500"), CurrentAmount: dec("400")}
		if completed := g.AddProgress(dec("100")); !completed {
			t.Error("expected AddProgress to report completion")
		}
		if !g.IsCompleted {
			t.Error("expected goal to be completed")
		}
		if !g.RemainingAmount().IsZero() {
			t.Errorf("RemainingAmount() = %s, want 0", g.RemainingAmount())
		}
	})

	t.Run("re-crossing the target does not report completion again", func(t *testing.T) {
		g := &Goal{TargetAmount: dec("500"), CurrentAmount: dec("450")}
		first := g.AddProgress(dec("100"))
		second := g.AddProgress(dec("100"))
		if !first {
			t.Error("first crossing should report completion")
		}
		if second {
			t.Error("second call should not report completion again")
		}
		if !g.CurrentAmount.Equal(dec("650")) {
			t.Errorf("CurrentAmount = %s, want 650", g.CurrentAmount)
		}
		if !g.IsCompleted {
			t.Error("completion flag should stay set")
		}
	})

	t.Run("repeating the same amount accumulates without dedup", func(t *testing.T) {
		g := &Goal{TargetAmount: dec("1000"), CurrentAmount: dec("0")}
		g.AddProgress(dec("150"))
		g.AddProgress(dec("150"))
		if !g.CurrentAmount.Equal(dec("300")) {
			t.Errorf("CurrentAmount = %s, want 300", g.CurrentAmount)
		}
	})
}
