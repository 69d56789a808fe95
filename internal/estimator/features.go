package estimator

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// ErrMalformedFeatures возвращается, когда поле features не удалось
// разобрать ни одним из поддерживаемых способов.
var ErrMalformedFeatures = errors.New("estimator: неподдерживаемый формат поля features")

// DecodeFeatures нормализует поле features из сохранённых данных.
// Исторически в записях встречаются три кодировки:
//   - массив идентификаторов: ["seo", "auth"]
//   - объект идентификатор → признак выбора: {"seo": true, "auth": false}
//   - строка с запятыми: "seo,auth" (самые старые записи)
//
// Результат — каноничное отсортированное множество без дубликатов и
// пустых значений. Идентификаторы здесь не сверяются с прайс-листом:
// этим занимается Estimate.
func DecodeFeatures(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err == nil {
		return normalizeFeatureSet(ids), nil
	}

	var flags map[string]bool
	if err := json.Unmarshal(raw, &flags); err == nil {
		ids = ids[:0]
		for id, selected := range flags {
			if selected {
				ids = append(ids, id)
			}
		}
		return normalizeFeatureSet(ids), nil
	}

	// Последняя попытка: строка с запятыми из самых старых записей.
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return normalizeFeatureSet(strings.Split(legacy, ",")), nil
	}

	return nil, ErrMalformedFeatures
}

// normalizeFeatureSet убирает пробелы, пустые значения и дубликаты,
// сортирует результат.
func normalizeFeatureSet(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	sort.Strings(out)
	return out
}
