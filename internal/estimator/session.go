package estimator

import "time"

// Step — шаг мастера расчёта.
type Step int

const (
	StepWebsiteType Step = iota
	StepComplexity
	StepFeatures
	StepSupportPlan
)

// String возвращает имя шага для API и логов.
func (s Step) String() string {
	switch s {
	case StepWebsiteType:
		return "website_type"
	case StepComplexity:
		return "complexity"
	case StepFeatures:
		return "features"
	case StepSupportPlan:
		return "support_plan"
	default:
		return "unknown"
	}
}

// Session — пошаговый мастер расчёта сметы. Шаги линейные:
// тип сайта → сложность → опции → поддержка. Возврат назад разрешён и
// не сбрасывает выбор на последующих шагах. Сессия принадлежит одному
// пользовательскому сценарию и не рассчитана на конкурентный доступ.
type Session struct {
	catalog *Catalog
	now     func() time.Time

	step Step
	cfg  Config

	typeChosen       bool
	complexityChosen bool
	featuresChosen   bool
	supportChosen    bool
}

// Snapshot — текущее состояние мастера: шаг, собранная конфигурация и
// промежуточная смета с подстановкой значений по умолчанию для ещё не
// выбранных полей.
type Snapshot struct {
	Step      Step     `json:"-"`
	StepName  string   `json:"step"`
	Config    Config   `json:"config"`
	Estimate  Estimate `json:"estimate"`
	Completed bool     `json:"completed"`
}

// NewSession создаёт мастер с конфигурацией по умолчанию.
func NewSession(catalog *Catalog) *Session {
	return newSession(catalog, time.Now)
}

func newSession(catalog *Catalog, now func() time.Time) *Session {
	s := &Session{catalog: catalog, now: now}
	s.Reset()
	return s
}

// ChooseWebsiteType выбирает тип сайта и переводит мастер на следующий шаг.
func (s *Session) ChooseWebsiteType(id string) error {
	if _, ok := s.catalog.WebsiteType(id); !ok {
		return &InvalidConfigError{Field: "website_type", Value: id}
	}

	s.cfg.WebsiteType = id
	s.typeChosen = true
	if s.step == StepWebsiteType {
		s.step = StepComplexity
	}
	return nil
}

// ChooseComplexity выбирает уровень сложности.
func (s *Session) ChooseComplexity(id string) error {
	if _, ok := s.catalog.Complexity(id); !ok {
		return &InvalidConfigError{Field: "complexity", Value: id}
	}

	s.cfg.Complexity = id
	s.complexityChosen = true
	if s.step == StepComplexity {
		s.step = StepFeatures
	}
	return nil
}

// ChooseFeatures фиксирует набор опций целиком. Пустой набор — валидный выбор.
func (s *Session) ChooseFeatures(ids []string) error {
	normalized := normalizeFeatureSet(ids)
	for _, id := range normalized {
		if _, ok := s.catalog.Feature(id); !ok {
			return &InvalidConfigError{Field: "feature", Value: id}
		}
	}

	s.cfg.FeatureIDs = normalized
	s.featuresChosen = true
	if s.step == StepFeatures {
		s.step = StepSupportPlan
	}
	return nil
}

// ToggleFeature добавляет или убирает одну опцию, не продвигая мастер:
// выбор опций — множественный, шаг завершается через ChooseFeatures.
func (s *Session) ToggleFeature(id string) error {
	if _, ok := s.catalog.Feature(id); !ok {
		return &InvalidConfigError{Field: "feature", Value: id}
	}

	for i, existing := range s.cfg.FeatureIDs {
		if existing == id {
			s.cfg.FeatureIDs = append(s.cfg.FeatureIDs[:i], s.cfg.FeatureIDs[i+1:]...)
			return nil
		}
	}
	s.cfg.FeatureIDs = normalizeFeatureSet(append(s.cfg.FeatureIDs, id))
	return nil
}

// ChooseSupportPlan выбирает тариф поддержки и завершает мастер.
func (s *Session) ChooseSupportPlan(id string) error {
	if _, ok := s.catalog.SupportPlan(id); !ok {
		return &InvalidConfigError{Field: "support_plan", Value: id}
	}

	s.cfg.SupportPlan = id
	s.supportChosen = true
	return nil
}

// Back возвращает мастер на предыдущий шаг. Выбор на последующих шагах
// сохраняется.
func (s *Session) Back() {
	if s.step > StepWebsiteType {
		s.step--
	}
}

// Reset возвращает мастер в исходное состояние: первый шаг и значения
// прайс-листа по умолчанию.
func (s *Session) Reset() {
	s.cfg = s.catalog.DefaultConfig()
	s.step = StepWebsiteType
	s.typeChosen = false
	s.complexityChosen = false
	s.featuresChosen = false
	s.supportChosen = false
}

// Completed сообщает, дошёл ли пользователь до конца мастера.
func (s *Session) Completed() bool {
	return s.supportChosen
}

// Snapshot возвращает текущее состояние с промежуточной сметой.
// Конфигурация всегда полна — для ещё не выбранных полей подставлены
// значения по умолчанию, — поэтому Estimate здесь не может вернуть ошибку.
func (s *Session) Snapshot() Snapshot {
	est, _ := s.catalog.Estimate(s.cfg, s.now())
	return Snapshot{
		Step:      s.step,
		StepName:  s.step.String(),
		Config:    s.cfg,
		Estimate:  est,
		Completed: s.supportChosen,
	}
}
