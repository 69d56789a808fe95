package estimator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFeatures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"массив идентификаторов", `["seo", "auth"]`, []string{"auth", "seo"}},
		{"пустой массив", `[]`, []string{}},
		{"объект с признаками", `{"seo": true, "auth": false, "gallery": true}`, []string{"gallery", "seo"}},
		{"объект из одних false", `{"seo": false}`, []string{}},
		{"строка с запятыми", `"seo,auth,seo"`, []string{"auth", "seo"}},
		{"строка с пробелами", `" seo , auth "`, []string{"auth", "seo"}},
		{"пустая строка", `""`, []string{}},
		{"null", `null`, []string{}},
		{"дубликаты в массиве", `["seo", "seo", "auth"]`, []string{"auth", "seo"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeFeatures(json.RawMessage(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeFeatures_Malformed(t *testing.T) {
	cases := []string{`42`, `true`, `{"seo": "yes"}`, `[1, 2]`}

	for _, raw := range cases {
		_, err := DecodeFeatures(json.RawMessage(raw))
		assert.ErrorIs(t, err, ErrMalformedFeatures, "вход: %s", raw)
	}
}

func TestDecodeFeatures_EmptyRaw(t *testing.T) {
	got, err := DecodeFeatures(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
