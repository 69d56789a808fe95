package payout

import (
	"fmt"
	"math"
)

// StatusCompleted — статус задачи, бюджет которой засчитывается в выплату.
const StatusCompleted = "completed"

// TaskInfo — минимальный срез задачи, нужный для расчёта выплаты.
type TaskInfo struct {
	Status string
	Budget float64
}

// Tier — ступень выплат: диапазон общего числа проектов и процент.
// Max == nil означает открытый диапазон.
type Tier struct {
	Min     int
	Max     *int
	Percent float64
}

// Result — итог расчёта выплаты сотруднику.
type Result struct {
	TotalProjects     int     `json:"total_projects"`
	CompletedProjects int     `json:"completed_projects"`
	PayoutPercentage  float64 `json:"payout_percentage"`
	TotalPayout       float64 `json:"total_payout"`
}

// DefaultTiers — действующая сетка выплат студии. Ступень выбирается по
// общему числу назначенных проектов вне зависимости от статуса.
var DefaultTiers = []Tier{
	{Min: 1, Max: intPtr(1), Percent: 20},
	{Min: 2, Max: intPtr(2), Percent: 25},
	{Min: 3, Max: intPtr(6), Percent: 30},
	{Min: 7, Max: intPtr(9), Percent: 35},
	{Min: 10, Max: nil, Percent: 40},
}

// Compute считает выплату по действующей сетке.
func Compute(tasks []TaskInfo) Result {
	// DefaultTiers валидируется тестами, ошибка здесь невозможна.
	res, _ := ComputeWithTiers(DefaultTiers, tasks)
	return res
}

// ComputeWithTiers считает выплату по произвольной сетке.
//
// Правило двухосевое, и сводить его к одному фильтру нельзя: ступень
// (процент) выбирается по ОБЩЕМУ числу назначенных проектов, а сама
// сумма начисляется только с бюджетов ЗАВЕРШЁННЫХ. Пустой список задач —
// валидный вход, все нули.
func ComputeWithTiers(tiers []Tier, tasks []TaskInfo) (Result, error) {
	if err := ValidateTiers(tiers); err != nil {
		return Result{}, err
	}

	res := Result{TotalProjects: len(tasks)}

	var completedBudget float64
	for _, t := range tasks {
		if t.Status == StatusCompleted {
			res.CompletedProjects++
			completedBudget += t.Budget
		}
	}

	res.PayoutPercentage = percentageFor(tiers, res.TotalProjects)
	res.TotalPayout = math.Floor(completedBudget*res.PayoutPercentage/100 + 0.5)

	return res, nil
}

// percentageFor ищет ступень, в чей диапазон попадает total.
// Ноль проектов — всегда нулевой процент.
func percentageFor(tiers []Tier, total int) float64 {
	if total <= 0 {
		return 0
	}
	for _, tier := range tiers {
		if total >= tier.Min && (tier.Max == nil || total <= *tier.Max) {
			return tier.Percent
		}
	}
	return 0
}

// ValidateTiers проверяет, что ступени без разрывов и пересечений
// покрывают диапазон [1, ∞).
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("payout: сетка выплат пуста")
	}

	next := 1
	for i, tier := range tiers {
		if tier.Min != next {
			return fmt.Errorf("payout: ступень %d начинается с %d, ожидалось %d", i, tier.Min, next)
		}
		if tier.Percent < 0 || tier.Percent > 100 {
			return fmt.Errorf("payout: ступень %d имеет недопустимый процент %.2f", i, tier.Percent)
		}
		if tier.Max == nil {
			if i != len(tiers)-1 {
				return fmt.Errorf("payout: открытая ступень %d должна быть последней", i)
			}
			return nil
		}
		if *tier.Max < tier.Min {
			return fmt.Errorf("payout: ступень %d имеет пустой диапазон", i)
		}
		next = *tier.Max + 1
	}

	return fmt.Errorf("payout: последняя ступень должна быть открытой")
}

func intPtr(v int) *int {
	return &v
}
