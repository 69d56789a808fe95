package estimator

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// WebsiteType описывает тип сайта из прайс-листа студии.
type WebsiteType struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"base_price"`
	BaseDays  int     `json:"base_days"`
}

// Feature описывает дополнительную опцию проекта.
type Feature struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Days  int     `json:"days"`
}

// Complexity описывает уровень сложности проекта. Множители цены и сроков
// независимы друг от друга.
type Complexity struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PriceMultiplier float64 `json:"price_multiplier"`
	DaysMultiplier  float64 `json:"days_multiplier"`
}

// SupportPlan описывает тариф постпроектной поддержки. Цена фиксированная
// и добавляется после умножения на сложность. Months — срок сопровождения
// после запуска, в срок разработки он не входит.
type SupportPlan struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FlatPrice float64 `json:"flat_price"`
	Months    int     `json:"months"`
}

// Catalog хранит неизменяемый прайс-лист студии. Создаётся один раз на
// старте процесса и дальше только читается, поэтому безопасен для
// конкурентного использования.
type Catalog struct {
	websiteTypes []WebsiteType
	complexities []Complexity
	features     []Feature
	supportPlans []SupportPlan

	typeIndex       map[string]int
	complexityIndex map[string]int
	featureIndex    map[string]int
	planIndex       map[string]int
}

// catalogFile — формат JSON файла с прайс-листом.
type catalogFile struct {
	WebsiteTypes []WebsiteType `json:"website_types"`
	Complexities []Complexity  `json:"complexities"`
	Features     []Feature     `json:"features"`
	SupportPlans []SupportPlan `json:"support_plans"`
}

// NewCatalog собирает каталог и валидирует его содержимое. Все ошибки
// прайс-листа ловятся здесь, на этапе загрузки — функции расчёта дальше
// работают только с проверенными данными.
func NewCatalog(types []WebsiteType, complexities []Complexity, features []Feature, plans []SupportPlan) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("catalog: список типов сайтов пуст")
	}
	if len(complexities) == 0 {
		return nil, fmt.Errorf("catalog: список уровней сложности пуст")
	}
	if len(plans) == 0 {
		return nil, fmt.Errorf("catalog: список тарифов поддержки пуст")
	}

	c := &Catalog{
		websiteTypes:    append([]WebsiteType(nil), types...),
		complexities:    append([]Complexity(nil), complexities...),
		features:        append([]Feature(nil), features...),
		supportPlans:    append([]SupportPlan(nil), plans...),
		typeIndex:       make(map[string]int, len(types)),
		complexityIndex: make(map[string]int, len(complexities)),
		featureIndex:    make(map[string]int, len(features)),
		planIndex:       make(map[string]int, len(plans)),
	}

	for i, t := range c.websiteTypes {
		if t.ID == "" {
			return nil, fmt.Errorf("catalog: тип сайта без идентификатора")
		}
		if _, ok := c.typeIndex[t.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующийся тип сайта %q", t.ID)
		}
		if !validMoney(t.BasePrice) || t.BasePrice <= 0 {
			return nil, fmt.Errorf("catalog: некорректная базовая цена типа %q", t.ID)
		}
		if t.BaseDays <= 0 {
			return nil, fmt.Errorf("catalog: некорректный базовый срок типа %q", t.ID)
		}
		c.typeIndex[t.ID] = i
	}

	for i, lvl := range c.complexities {
		if lvl.ID == "" {
			return nil, fmt.Errorf("catalog: уровень сложности без идентификатора")
		}
		if _, ok := c.complexityIndex[lvl.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующийся уровень сложности %q", lvl.ID)
		}
		if !validMultiplier(lvl.PriceMultiplier) || !validMultiplier(lvl.DaysMultiplier) {
			return nil, fmt.Errorf("catalog: некорректные множители уровня %q", lvl.ID)
		}
		c.complexityIndex[lvl.ID] = i
	}

	for i, f := range c.features {
		if f.ID == "" {
			return nil, fmt.Errorf("catalog: опция без идентификатора")
		}
		if _, ok := c.featureIndex[f.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующаяся опция %q", f.ID)
		}
		if !validMoney(f.Price) {
			return nil, fmt.Errorf("catalog: некорректная цена опции %q", f.ID)
		}
		if f.Days < 0 {
			return nil, fmt.Errorf("catalog: некорректный срок опции %q", f.ID)
		}
		c.featureIndex[f.ID] = i
	}

	for i, p := range c.supportPlans {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: тариф поддержки без идентификатора")
		}
		if _, ok := c.planIndex[p.ID]; ok {
			return nil, fmt.Errorf("catalog: дублирующийся тариф поддержки %q", p.ID)
		}
		if !validMoney(p.FlatPrice) {
			return nil, fmt.Errorf("catalog: некорректная цена тарифа %q", p.ID)
		}
		c.planIndex[p.ID] = i
	}

	return c, nil
}

// LoadCatalogFile читает прайс-лист из JSON файла.
func LoadCatalogFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: не удалось прочитать файл %s: %w", path, err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: не удалось разобрать файл %s: %w", path, err)
	}

	return NewCatalog(file.WebsiteTypes, file.Complexities, file.Features, file.SupportPlans)
}

// WebsiteTypes возвращает копию списка типов сайтов в порядке прайс-листа.
func (c *Catalog) WebsiteTypes() []WebsiteType {
	return append([]WebsiteType(nil), c.websiteTypes...)
}

// Complexities возвращает копию списка уровней сложности.
func (c *Catalog) Complexities() []Complexity {
	return append([]Complexity(nil), c.complexities...)
}

// Features возвращает копию списка опций.
func (c *Catalog) Features() []Feature {
	return append([]Feature(nil), c.features...)
}

// SupportPlans возвращает копию списка тарифов поддержки.
func (c *Catalog) SupportPlans() []SupportPlan {
	return append([]SupportPlan(nil), c.supportPlans...)
}

// WebsiteType возвращает тип сайта по идентификатору.
func (c *Catalog) WebsiteType(id string) (WebsiteType, bool) {
	i, ok := c.typeIndex[id]
	if !ok {
		return WebsiteType{}, false
	}
	return c.websiteTypes[i], true
}

// Complexity возвращает уровень сложности по идентификатору.
func (c *Catalog) Complexity(id string) (Complexity, bool) {
	i, ok := c.complexityIndex[id]
	if !ok {
		return Complexity{}, false
	}
	return c.complexities[i], true
}

// Feature возвращает опцию по идентификатору.
func (c *Catalog) Feature(id string) (Feature, bool) {
	i, ok := c.featureIndex[id]
	if !ok {
		return Feature{}, false
	}
	return c.features[i], true
}

// SupportPlan возвращает тариф поддержки по идентификатору.
func (c *Catalog) SupportPlan(id string) (SupportPlan, bool) {
	i, ok := c.planIndex[id]
	if !ok {
		return SupportPlan{}, false
	}
	return c.supportPlans[i], true
}

// DefaultConfig возвращает конфигурацию по умолчанию: первый тип сайта,
// самый низкий уровень сложности, пустой набор опций и бесплатный тариф
// поддержки (или первый, если бесплатного нет). Используется мастером
// расчёта для подстановки ещё не выбранных полей.
func (c *Catalog) DefaultConfig() Config {
	plan := c.supportPlans[0].ID
	for _, p := range c.supportPlans {
		if p.FlatPrice == 0 {
			plan = p.ID
			break
		}
	}

	return Config{
		WebsiteType: c.websiteTypes[0].ID,
		Complexity:  c.complexities[0].ID,
		FeatureIDs:  []string{},
		SupportPlan: plan,
	}
}

// validMoney проверяет, что цена конечна и неотрицательна.
func validMoney(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// validMultiplier проверяет, что множитель конечен и не меньше единицы.
func validMultiplier(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 1
}
