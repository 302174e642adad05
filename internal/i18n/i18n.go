// Package i18n holds the bilingual (English/Arabic) label bundles used by
// reports and insights. Bundles are YAML files embedded at build time.
package i18n

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLanguage is used when a requested language has no bundle.
const DefaultLanguage = "en"

var bundles = map[string]map[string]string{}

func init() {
	for _, lang := range []string{"en", "ar"} {
		data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.yaml", lang))
		if err != nil {
			panic(fmt.Sprintf("i18n: missing embedded bundle %s: %v", lang, err))
		}
		bundle := map[string]string{}
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			panic(fmt.Sprintf("i18n: malformed bundle %s: %v", lang, err))
		}
		bundles[lang] = bundle
	}
}

// Languages lists the available bundle languages.
func Languages() []string {
	return []string{"en", "ar"}
}

// T translates key into the given language, falling back to English and then
// to the key itself so a missing label never blanks out a report.
func T(lang, key string) string {
	if bundle, ok := bundles[lang]; ok {
		if v, ok := bundle[key]; ok {
			return v
		}
	}
	if v, ok := bundles[DefaultLanguage][key]; ok {
		return v
	}
	return key
}
