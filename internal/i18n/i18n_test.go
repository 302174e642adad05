package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Total Revenue", T("en", "insight_total_revenue"))
	assert.NotEqual(t, T("en", "insight_total_revenue"), T("ar", "insight_total_revenue"))

	// Unknown language falls back to English.
	assert.Equal(t, T("en", "stats_summary"), T("fr", "stats_summary"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "no_such_key", T("en", "no_such_key"))
	assert.Equal(t, "no_such_key", T("ar", "no_such_key"))
}

func TestLanguages(t *testing.T) {
	assert.Equal(t, []string{"en", "ar"}, Languages())
	assert.Equal(t, "en", DefaultLanguage)
}

func TestBundlesCoverSameKeys(t *testing.T) {
	for key := range bundles["en"] {
		_, ok := bundles["ar"][key]
		assert.True(t, ok, "ar bundle missing key %q", key)
	}
	for key := range bundles["ar"] {
		_, ok := bundles["en"][key]
		assert.True(t, ok, "en bundle missing key %q", key)
	}
}
