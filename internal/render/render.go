// Package render formats disaster notifications from pre-translated
// templates. Each message kind carries one template per supported
// locale with {placeholder} slots; unknown locales fall back to
// English so a reader always gets something actionable.
package render

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Kind identifies a notification template family.
type Kind string

const (
	KindEarthquake       Kind = "earthquake"
	KindEarthquakeReport Kind = "earthquake_report"
	KindTsunamiWarning   Kind = "tsunami_warning"
	KindEvacuation       Kind = "evacuation"
	KindNoTsunami        Kind = "no_tsunami"
	KindTsunamiInfo      Kind = "tsunami_info"
	KindShelterInfo      Kind = "shelter_info"
)

const fallbackLocale = "en"

//go:embed data/templates.json
var templatesJSON []byte

var templates map[Kind]map[string]string

func init() {
	if err := json.Unmarshal(templatesJSON, &templates); err != nil {
		panic(fmt.Sprintf("render: bad embedded templates: %v", err))
	}
	for kind, byLocale := range templates {
		if _, ok := byLocale[fallbackLocale]; !ok {
			panic(fmt.Sprintf("render: kind %q has no %s template", kind, fallbackLocale))
		}
	}
}

// Kinds returns all template kinds in a stable order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(templates))
	for kind := range templates {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Template returns the raw template for a kind and locale, falling back
// to English for locales without one. It panics on an unknown kind,
// which is a programming error, not input.
func Template(kind Kind, localeCode string) string {
	byLocale, ok := templates[kind]
	if !ok {
		panic(fmt.Sprintf("render: unknown template kind %q", kind))
	}
	if tmpl, ok := byLocale[localeCode]; ok {
		return tmpl
	}
	return byLocale[fallbackLocale]
}

// Render fills a kind's template for the locale with the given fields.
// Placeholders without a matching field are left intact so a bad call
// site is visible in output rather than silently blanked.
func Render(kind Kind, localeCode string, fields map[string]string) string {
	out := Template(kind, localeCode)
	for name, value := range fields {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// noTsunamiSentinels are the upstream values meaning the quake poses no
// tsunami risk at all.
var noTsunamiSentinels = map[string]bool{
	"なし":   true,
	"None": true,
}

// EarthquakeReport builds the full localized earthquake message: the
// main report plus either the no-tsunami reassurance or the tsunami
// status line. The branch is decided on tsunamiSource, the untranslated
// feed value, so translating the status can never flip a no-risk quake
// onto the warning branch; tsunamiTranslated fills the {warning} slot
// and falls back to the source value when empty.
func EarthquakeReport(localeCode, location, magnitude, intensity, depth, tsunamiSource, tsunamiTranslated string) string {
	var tsunamiInfo string
	switch {
	case tsunamiSource == "" || noTsunamiSentinels[tsunamiSource]:
		tsunamiInfo = Template(KindNoTsunami, localeCode)
	default:
		if tsunamiTranslated == "" {
			tsunamiTranslated = tsunamiSource
		}
		tsunamiInfo = Render(KindTsunamiInfo, localeCode, map[string]string{"warning": tsunamiTranslated})
	}
	return Render(KindEarthquakeReport, localeCode, map[string]string{
		"location":     location,
		"magnitude":    magnitude,
		"intensity":    intensity,
		"depth":        depth,
		"tsunami_info": tsunamiInfo,
	})
}
