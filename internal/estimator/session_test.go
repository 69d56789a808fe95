package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return testToday
}

func TestSession_WalkThroughAllSteps(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	snap := s.Snapshot()
	assert.Equal(t, StepWebsiteType, snap.Step)
	assert.False(t, snap.Completed)
	// Промежуточная смета всегда доступна: посчитана по значениям по умолчанию.
	assert.Equal(t, float64(8000), snap.Estimate.TotalPrice)

	require.NoError(t, s.ChooseWebsiteType("ecommerce"))
	assert.Equal(t, StepComplexity, s.Snapshot().Step)

	require.NoError(t, s.ChooseComplexity("standard"))
	assert.Equal(t, StepFeatures, s.Snapshot().Step)

	require.NoError(t, s.ChooseFeatures([]string{"payment_gateway", "seo"}))
	assert.Equal(t, StepSupportPlan, s.Snapshot().Step)
	assert.False(t, s.Completed())

	require.NoError(t, s.ChooseSupportPlan("basic"))
	snap = s.Snapshot()
	assert.True(t, snap.Completed)

	// round((35000+8000+4000)*1.3) + 3000
	assert.Equal(t, float64(64100), snap.Estimate.TotalPrice)
	assert.Equal(t, Config{
		WebsiteType: "ecommerce",
		Complexity:  "standard",
		FeatureIDs:  []string{"payment_gateway", "seo"},
		SupportPlan: "basic",
	}, snap.Config)
}

func TestSession_RunningEstimateUsesDefaults(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	require.NoError(t, s.ChooseWebsiteType("webapp"))
	snap := s.Snapshot()

	// Сложность и тариф ещё не выбраны — подставлены basic и бесплатный план.
	assert.Equal(t, float64(50000), snap.Estimate.TotalPrice)
	assert.Equal(t, 45, snap.Estimate.TotalDays)
}

func TestSession_BackKeepsLaterSelections(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	require.NoError(t, s.ChooseWebsiteType("landing"))
	require.NoError(t, s.ChooseComplexity("premium"))
	require.NoError(t, s.ChooseFeatures([]string{"seo"}))

	s.Back()
	s.Back()
	assert.Equal(t, StepComplexity, s.Snapshot().Step)

	// Возврат назад не сбросил выбор опций.
	assert.Equal(t, []string{"seo"}, s.Snapshot().Config.FeatureIDs)

	// Повторный выбор сложности снова двигает мастер вперёд.
	require.NoError(t, s.ChooseComplexity("basic"))
	snap := s.Snapshot()
	assert.Equal(t, StepFeatures, snap.Step)
	assert.Equal(t, "basic", snap.Config.Complexity)
	assert.Equal(t, []string{"seo"}, snap.Config.FeatureIDs)
}

func TestSession_BackFromFirstStepIsNoop(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)
	s.Back()
	assert.Equal(t, StepWebsiteType, s.Snapshot().Step)
}

func TestSession_ToggleFeature(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	require.NoError(t, s.ToggleFeature("seo"))
	require.NoError(t, s.ToggleFeature("auth"))
	assert.Equal(t, []string{"auth", "seo"}, s.Snapshot().Config.FeatureIDs)

	// Повторное переключение убирает опцию.
	require.NoError(t, s.ToggleFeature("seo"))
	assert.Equal(t, []string{"auth"}, s.Snapshot().Config.FeatureIDs)

	assert.Error(t, s.ToggleFeature("teleport"))
}

func TestSession_RejectsUnknownIDs(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	assert.Error(t, s.ChooseWebsiteType("mobile_app"))
	assert.Error(t, s.ChooseComplexity("impossible"))
	assert.Error(t, s.ChooseFeatures([]string{"teleport"}))
	assert.Error(t, s.ChooseSupportPlan("platinum"))

	// Ошибочный выбор не двигает мастер.
	assert.Equal(t, StepWebsiteType, s.Snapshot().Step)
}

func TestSession_ResetMatchesFreshSession(t *testing.T) {
	s := newSession(DefaultCatalog(), fixedNow)

	require.NoError(t, s.ChooseWebsiteType("ecommerce"))
	require.NoError(t, s.ChooseComplexity("premium"))
	require.NoError(t, s.ChooseFeatures([]string{"crm_integration"}))
	require.NoError(t, s.ChooseSupportPlan("premium"))
	require.True(t, s.Completed())

	s.Reset()

	fresh := newSession(DefaultCatalog(), fixedNow)
	assert.Equal(t, fresh.Snapshot(), s.Snapshot())
	assert.False(t, s.Completed())
}
