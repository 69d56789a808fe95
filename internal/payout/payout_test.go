package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksWith(total, completed int, budgetEach float64) []TaskInfo {
	tasks := make([]TaskInfo, 0, total)
	for i := 0; i < total; i++ {
		status := "in_progress"
		if i < completed {
			status = StatusCompleted
		}
		tasks = append(tasks, TaskInfo{Status: status, Budget: budgetEach})
	}
	return tasks
}

func TestCompute_EmptyList(t *testing.T) {
	res := Compute(nil)
	assert.Equal(t, Result{}, res)

	res = Compute([]TaskInfo{})
	assert.Equal(t, 0, res.TotalProjects)
	assert.Equal(t, 0, res.CompletedProjects)
	assert.Equal(t, float64(0), res.PayoutPercentage)
	assert.Equal(t, float64(0), res.TotalPayout)
}

func TestCompute_TierBoundaries(t *testing.T) {
	// Границы ступеней проверяются на точных значениях.
	cases := []struct {
		total int
		pct   float64
	}{
		{1, 20},
		{2, 25},
		{3, 30},
		{6, 30},
		{7, 35},
		{9, 35},
		{10, 40},
		{11, 40},
	}

	for _, tc := range cases {
		res := Compute(tasksWith(tc.total, 0, 1000))
		assert.Equal(t, tc.pct, res.PayoutPercentage, "total=%d", tc.total)
	}
}

func TestCompute_TierIndependentOfCompletedMix(t *testing.T) {
	// Процент определяется общим числом проектов, а не числом завершённых.
	allCompleted := Compute(tasksWith(7, 7, 1000))
	noneCompleted := Compute(tasksWith(7, 0, 1000))

	assert.Equal(t, allCompleted.PayoutPercentage, noneCompleted.PayoutPercentage)
	assert.Equal(t, float64(35), allCompleted.PayoutPercentage)
}

func TestCompute_OnlyCompletedBudgetsEarn(t *testing.T) {
	// У двоих сотрудников одинаковый процент, но разные суммы: платим
	// только с бюджетов завершённых проектов.
	first := Compute(tasksWith(5, 5, 10000))
	second := Compute(tasksWith(5, 2, 10000))

	assert.Equal(t, first.PayoutPercentage, second.PayoutPercentage)
	assert.Equal(t, float64(15000), first.TotalPayout)  // 50000 * 30%
	assert.Equal(t, float64(6000), second.TotalPayout)  // 20000 * 30%
	assert.Equal(t, 5, first.CompletedProjects)
	assert.Equal(t, 2, second.CompletedProjects)
}

func TestCompute_RejectedCountsTowardTierNotBudget(t *testing.T) {
	tasks := []TaskInfo{
		{Status: StatusCompleted, Budget: 10000},
		{Status: "rejected", Budget: 50000},
		{Status: "received", Budget: 30000},
	}

	res := Compute(tasks)
	assert.Equal(t, 3, res.TotalProjects)
	assert.Equal(t, 1, res.CompletedProjects)
	assert.Equal(t, float64(30), res.PayoutPercentage)
	assert.Equal(t, float64(3000), res.TotalPayout)
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	// 1001 * 20% = 200.2 → 200; 1002.5 * 20% = 200.5 → 201.
	res := Compute([]TaskInfo{{Status: StatusCompleted, Budget: 1001}})
	assert.Equal(t, float64(200), res.TotalPayout)

	res = Compute([]TaskInfo{{Status: StatusCompleted, Budget: 1002.5}})
	assert.Equal(t, float64(201), res.TotalPayout)
}

func TestValidateTiers(t *testing.T) {
	assert.NoError(t, ValidateTiers(DefaultTiers))

	two := 2
	four := 4
	five := 5

	cases := []struct {
		name  string
		tiers []Tier
	}{
		{"пустая сетка", nil},
		{"не начинается с единицы", []Tier{{Min: 2, Max: nil, Percent: 10}}},
		{"разрыв между ступенями", []Tier{{Min: 1, Max: &two, Percent: 10}, {Min: 4, Max: nil, Percent: 20}}},
		{"пересечение ступеней", []Tier{{Min: 1, Max: &four, Percent: 10}, {Min: 4, Max: nil, Percent: 20}}},
		{"последняя ступень закрыта", []Tier{{Min: 1, Max: &five, Percent: 10}}},
		{"открытая ступень не последняя", []Tier{{Min: 1, Max: nil, Percent: 10}, {Min: 2, Max: nil, Percent: 20}}},
		{"процент больше ста", []Tier{{Min: 1, Max: nil, Percent: 120}}},
		{"пустой диапазон", []Tier{{Min: 1, Max: intPtr(0), Percent: 10}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateTiers(tc.tiers))
		})
	}
}

func TestComputeWithTiers_CustomTable(t *testing.T) {
	three := 3
	tiers := []Tier{
		{Min: 1, Max: &three, Percent: 10},
		{Min: 4, Max: nil, Percent: 50},
	}

	res, err := ComputeWithTiers(tiers, tasksWith(4, 4, 1000))
	require.NoError(t, err)
	assert.Equal(t, float64(50), res.PayoutPercentage)
	assert.Equal(t, float64(2000), res.TotalPayout)

	_, err = ComputeWithTiers([]Tier{{Min: 5, Max: nil, Percent: 1}}, nil)
	assert.Error(t, err)
}
