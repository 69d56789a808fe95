package estimator

import (
	"fmt"
	"math"
	"time"
)

// Config — полный набор выбора клиента, по которому считается смета.
type Config struct {
	WebsiteType string   `json:"website_type"`
	Complexity  string   `json:"complexity"`
	FeatureIDs  []string `json:"features"`
	SupportPlan string   `json:"support_plan"`
}

// Estimate — результат расчёта: цена, срок в днях и дата сдачи.
type Estimate struct {
	TotalPrice   float64   `json:"total_price"`
	TotalDays    int       `json:"total_days"`
	DeliveryDate time.Time `json:"delivery_date"`
}

// InvalidConfigError возвращается, когда конфигурация ссылается на
// несуществующую позицию прайс-листа. Неизвестный идентификатор — это
// всегда ошибка, а не нулевое значение по умолчанию.
type InvalidConfigError struct {
	Field string
	Value string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("estimator: неизвестное значение %s %q", e.Field, e.Value)
}

// deliveryDateLayout — формат даты сдачи для клиентских документов,
// например "August 21, 2025".
const deliveryDateLayout = "January 2, 2006"

// FormatDeliveryDate форматирует дату сдачи в человекочитаемый вид.
func FormatDeliveryDate(d time.Time) string {
	return d.Format(deliveryDateLayout)
}

// Estimate считает смету проекта. Функция чистая и детерминированная при
// фиксированном today; порядок шагов нормативный и менять его нельзя:
//
//  1. база + опции (цена и дни считаются отдельно);
//  2. умножение на множители сложности с округлением каждого
//     промежуточного итога до целого;
//  3. цена поддержки добавляется после умножения, фиксированной суммой;
//  4. срок поддержки в срок разработки не входит;
//  5. дата сдачи = today + итоговые календарные дни (выходные включены).
func (c *Catalog) Estimate(cfg Config, today time.Time) (Estimate, error) {
	siteType, ok := c.WebsiteType(cfg.WebsiteType)
	if !ok {
		return Estimate{}, &InvalidConfigError{Field: "website_type", Value: cfg.WebsiteType}
	}

	complexity, ok := c.Complexity(cfg.Complexity)
	if !ok {
		return Estimate{}, &InvalidConfigError{Field: "complexity", Value: cfg.Complexity}
	}

	plan, ok := c.SupportPlan(cfg.SupportPlan)
	if !ok {
		return Estimate{}, &InvalidConfigError{Field: "support_plan", Value: cfg.SupportPlan}
	}

	priceSubtotal := siteType.BasePrice
	daysSubtotal := siteType.BaseDays

	// Дубликаты в списке опций схлопываются: выбор — это множество.
	seen := make(map[string]struct{}, len(cfg.FeatureIDs))
	for _, id := range cfg.FeatureIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		feature, ok := c.Feature(id)
		if !ok {
			return Estimate{}, &InvalidConfigError{Field: "feature", Value: id}
		}
		priceSubtotal += feature.Price
		daysSubtotal += feature.Days
	}

	// Каждый промежуточный итог округляется до целого до добавления
	// фиксированных сумм, чтобы копейки не накапливались.
	price := roundHalfUp(priceSubtotal * complexity.PriceMultiplier)
	days := int(roundHalfUp(float64(daysSubtotal) * complexity.DaysMultiplier))

	return Estimate{
		TotalPrice:   price + plan.FlatPrice,
		TotalDays:    days,
		DeliveryDate: today.AddDate(0, 0, days),
	}, nil
}

// roundHalfUp округляет до ближайшего целого, половина — вверх.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
