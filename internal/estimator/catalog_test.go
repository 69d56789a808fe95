package estimator

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_RejectsBadEntries(t *testing.T) {
	validTypes := []WebsiteType{{ID: "landing", Name: "Landing", BasePrice: 8000, BaseDays: 7}}
	validLevels := []Complexity{{ID: "basic", Name: "Basic", PriceMultiplier: 1, DaysMultiplier: 1}}
	validPlans := []SupportPlan{{ID: "none", Name: "None", FlatPrice: 0}}

	cases := []struct {
		name  string
		types []WebsiteType
		lvls  []Complexity
		feats []Feature
		plans []SupportPlan
	}{
		{"пустые типы", nil, validLevels, nil, validPlans},
		{"пустые уровни", validTypes, nil, nil, validPlans},
		{"пустые тарифы", validTypes, validLevels, nil, nil},
		{"отрицательная цена типа", []WebsiteType{{ID: "x", BasePrice: -1, BaseDays: 1}}, validLevels, nil, validPlans},
		{"нулевой срок типа", []WebsiteType{{ID: "x", BasePrice: 100, BaseDays: 0}}, validLevels, nil, validPlans},
		{"NaN в цене типа", []WebsiteType{{ID: "x", BasePrice: math.NaN(), BaseDays: 1}}, validLevels, nil, validPlans},
		{"дубликат типа", append(validTypes, validTypes[0]), validLevels, nil, validPlans},
		{"множитель меньше единицы", validTypes, []Complexity{{ID: "x", PriceMultiplier: 0.5, DaysMultiplier: 1}}, nil, validPlans},
		{"дубликат уровня", validTypes, append(validLevels, validLevels[0]), nil, validPlans},
		{"отрицательная цена опции", validTypes, validLevels, []Feature{{ID: "f", Price: -5, Days: 0}}, validPlans},
		{"отрицательный срок опции", validTypes, validLevels, []Feature{{ID: "f", Price: 5, Days: -1}}, validPlans},
		{"дубликат опции", validTypes, validLevels, []Feature{{ID: "f", Price: 1}, {ID: "f", Price: 2}}, validPlans},
		{"отрицательная цена тарифа", validTypes, validLevels, nil, []SupportPlan{{ID: "p", FlatPrice: -1}}},
		{"дубликат тарифа", validTypes, validLevels, nil, append(validPlans, validPlans[0])},
		{"опция без идентификатора", validTypes, validLevels, []Feature{{ID: "", Price: 1}}, validPlans},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.types, tc.lvls, tc.feats, tc.plans)
			assert.Error(t, err)
		})
	}
}

func TestDefaultCatalog_Contents(t *testing.T) {
	c := DefaultCatalog()

	assert.Len(t, c.WebsiteTypes(), 6)
	assert.Len(t, c.Features(), 20)
	assert.Len(t, c.Complexities(), 4)

	landing, ok := c.WebsiteType("landing")
	require.True(t, ok)
	assert.Equal(t, float64(8000), landing.BasePrice)
	assert.Equal(t, 7, landing.BaseDays)

	_, ok = c.WebsiteType("nonexistent")
	assert.False(t, ok)
}

func TestDefaultConfig_UsesFreePlanAndLowestComplexity(t *testing.T) {
	c := DefaultCatalog()

	cfg := c.DefaultConfig()
	assert.Equal(t, "landing", cfg.WebsiteType)
	assert.Equal(t, "basic", cfg.Complexity)
	assert.Empty(t, cfg.FeatureIDs)

	plan, ok := c.SupportPlan(cfg.SupportPlan)
	require.True(t, ok)
	assert.Equal(t, float64(0), plan.FlatPrice)
}

func TestNewCatalog_ReducedComplexityTable(t *testing.T) {
	// Сокращённая трёхуровневая таблица — это конфигурация того же
	// каталога, а не отдельная ветка кода.
	c, err := NewCatalog(
		DefaultCatalog().WebsiteTypes(),
		[]Complexity{
			{ID: "simple", Name: "Simple", PriceMultiplier: 1.0, DaysMultiplier: 1.0},
			{ID: "medium", Name: "Medium", PriceMultiplier: 1.4, DaysMultiplier: 1.3},
			{ID: "complex", Name: "Complex", PriceMultiplier: 1.9, DaysMultiplier: 1.7},
		},
		DefaultCatalog().Features(),
		DefaultCatalog().SupportPlans(),
	)
	require.NoError(t, err)

	est, err := c.Estimate(Config{
		WebsiteType: "landing",
		Complexity:  "medium",
		SupportPlan: "none",
	}, testToday)
	require.NoError(t, err)
	assert.Equal(t, float64(11200), est.TotalPrice) // round(8000 * 1.4)

	_, err = c.Estimate(Config{WebsiteType: "landing", Complexity: "standard", SupportPlan: "none"}, testToday)
	assert.Error(t, err)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
		"website_types": [{"id": "landing", "name": "Landing", "base_price": 9000, "base_days": 5}],
		"complexities": [{"id": "basic", "name": "Basic", "price_multiplier": 1, "days_multiplier": 1}],
		"features": [{"id": "seo", "name": "SEO", "price": 4000, "days": 2}],
		"support_plans": [{"id": "none", "name": "None", "flat_price": 0, "months": 0}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)

	landing, ok := c.WebsiteType("landing")
	require.True(t, ok)
	assert.Equal(t, float64(9000), landing.BasePrice)
}

func TestLoadCatalogFile_Missing(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
