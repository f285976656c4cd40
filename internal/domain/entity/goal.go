// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MilestonePercents are the four fixed checkpoints of every savings goal.
var MilestonePercents = []int{25, 50, 75, 100}

// GoalPriority represents how urgent a goal is.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"

	DefaultGoalPriority = GoalPriorityMedium
)

// ValidGoalPriority reports whether the given string names a known priority.
func ValidGoalPriority(p string) bool {
	switch GoalPriority(p) {
	case GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh:
		return true
	}
	return false
}

// Goal represents a savings goal. Completion is one-way: once CurrentAmount
// reaches TargetAmount the goal stays completed, even if amounts are edited
// back down later.
type Goal struct {
	ID            uint
	UserID        uint
	Name          string
	Description   string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Priority      GoalPriority
	CategoryID    *uint
	IsCompleted   bool
	Category      *Category
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGoal creates a new Goal entity with medium priority.
func NewGoal(userID uint, name, description string, targetAmount, currentAmount decimal.Decimal, targetDate *time.Time, categoryID *uint) *Goal {
	now := time.Now().UTC()

	g := &Goal{
		UserID:        userID,
		Name:          name,
		Description:   description,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		Priority:      DefaultGoalPriority,
		CategoryID:    categoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	g.RefreshCompletion()
	return g
}

// ProgressPercent computes min(100, round(current/target*100)), with a zero
// target counting as no progress.
func ProgressPercent(current, target decimal.Decimal) int {
	if target.IsZero() {
		return 0
	}
	pct := current.Div(target).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return int(pct)
}

// ProgressPercentage returns how far along the goal is, capped at 100.
func (g *Goal) ProgressPercentage() int {
	return ProgressPercent(g.CurrentAmount, g.TargetAmount)
}

// RemainingAmount returns max(0, target - current).
func (g *Goal) RemainingAmount() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DaysRemaining returns the number of days until the target date, rounded
// up, or nil when the goal has no target date. The value goes negative once
// the date has passed.
func (g *Goal) DaysRemaining(now time.Time) *int {
	if g.TargetDate == nil {
		return nil
	}
	days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
	return &days
}

// IsOverdue reports whether the target date has passed on an uncompleted goal.
func (g *Goal) IsOverdue(now time.Time) bool {
	days := g.DaysRemaining(now)
	return days != nil && *days < 0 && !g.IsCompleted
}

// RequiredDailySavings returns how much must be saved per day to hit the
// target on time. Completed or overdue goals, and goals whose date is due
// today or absent, require nothing.
func (g *Goal) RequiredDailySavings(now time.Time) decimal.Decimal {
	if g.IsCompleted {
		return decimal.Zero
	}
	days := g.DaysRemaining(now)
	if days == nil || *days <= 0 {
		return decimal.Zero
	}
	return g.RemainingAmount().Div(decimal.NewFromInt(int64(*days))).Round(2)
}

// RefreshCompletion flips the completed flag once the target is reached.
// Returns true when this call performed the flip.
func (g *Goal) RefreshCompletion() bool {
	if !g.IsCompleted && !g.TargetAmount.IsZero() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.IsCompleted = true
		return true
	}
	return false
}

// AddProgress increments the saved amount and marks the goal completed once
// the target is reached. Returns true when this call crossed the target.
func (g *Goal) AddProgress(amount decimal.Decimal) bool {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	return g.RefreshCompletion()
}

// GoalMilestone is one of the four fixed progress checkpoints.
type GoalMilestone struct {
	Percent  int
	Amount   decimal.Decimal
	Achieved bool
}

// Milestones returns the 25/50/75/100% checkpoints with their achievement
// state.
func (g *Goal) Milestones() []GoalMilestone {
	milestones := make([]GoalMilestone, 0, len(MilestonePercents))
	for _, pct := range MilestonePercents {
		amount := g.TargetAmount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
		milestones = append(milestones, GoalMilestone{
			Percent:  pct,
			Amount:   amount,
			Achieved: g.CurrentAmount.GreaterThanOrEqual(amount) && !g.TargetAmount.IsZero(),
		})
	}
	return milestones
}

// NextMilestone returns the first unachieved checkpoint, or nil when the
// goal has passed all of them.
func (g *Goal) NextMilestone() *GoalMilestone {
	for _, m := range g.Milestones() {
		if !m.Achieved {
			next := m
			return &next
		}
	}
	return nil
}

// GoalOverview aggregates all goals visible under one scope.
type GoalOverview struct {
	TotalGoals      int64
	CompletedGoals  int64
	TargetTotal     decimal.Decimal
	CurrentTotal    decimal.Decimal
	OverallProgress int
}
