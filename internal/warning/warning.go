// Package warning classifies agency warning reports into localized
// disaster alerts. The code table is closed: every known warning code
// carries a severity and per-locale names, and codes outside the table
// are ignored rather than guessed at.
package warning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/jma"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
)

const (
	SeverityLow     = "low"
	SeverityMedium  = "medium"
	SeverityHigh    = "high"
	SeverityExtreme = "extreme"
)

const (
	TypeSpecialWarning = "special_warning"
	TypeWarning        = "warning"
	TypeAdvisory       = "advisory"
	TypeWatch          = "watch"
)

// issuedStatus marks a warning that is currently in force; other
// statuses (解除, 継続) are lifecycle noise for our purposes.
const issuedStatus = "発表"

// Alert is one localized warning or advisory.
type Alert struct {
	ID                    string `json:"id"`
	Type                  string `json:"type"`
	Title                 string `json:"title"`
	TitleTranslated       string `json:"title_translated,omitempty"`
	Description           string `json:"description"`
	DescriptionTranslated string `json:"description_translated,omitempty"`
	Area                  string `json:"area"`
	IssuedAt              string `json:"issued_at"`
	ExpiresAt             string `json:"expires_at,omitempty"`
	Severity              string `json:"severity"`
}

//go:embed data/codes.json
var codesJSON []byte

type codeEntry struct {
	Severity string            `json:"severity"`
	Names    map[string]string `json:"names"`
}

var codes map[string]codeEntry

func init() {
	if err := json.Unmarshal(codesJSON, &codes); err != nil {
		panic(fmt.Sprintf("warning: bad embedded code table: %v", err))
	}
}

// areaNames translates the forecast subdivision names that appear in
// warning feeds. Untranslated areas pass through in Japanese.
var areaNames = map[string]map[string]string{
	"東京地方": {
		"en": "Tokyo Area", "zh": "东京地区", "ko": "도쿄 지역",
		"vi": "Khu vực Tokyo", locale.EasyJapanese: "とうきょう",
	},
	"伊豆諸島北部": {
		"en": "Northern Izu Islands", "zh": "伊豆诸岛北部", "ko": "이즈 제도 북부",
		"vi": "Bắc quần đảo Izu", locale.EasyJapanese: "いずしょとう きたぶ",
	},
	"伊豆諸島南部": {
		"en": "Southern Izu Islands", "zh": "伊豆诸岛南部", "ko": "이즈 제도 남부",
		"vi": "Nam quần đảo Izu", locale.EasyJapanese: "いずしょとう みなみぶ",
	},
	"小笠原諸島": {
		"en": "Ogasawara Islands", "zh": "小笠原诸岛", "ko": "오가사와라 제도",
		"vi": "Quần đảo Ogasawara", locale.EasyJapanese: "おがさわらしょとう",
	},
}

var descriptionTemplates = map[string]string{
	"ja":                "{area}に{warning}が発表されています。",
	"en":                "{warning} has been issued for {area}.",
	"zh":                "{area}发布了{warning}。",
	"ko":                "{area}에 {warning}이(가) 발령되었습니다.",
	"vi":                "{warning} đã được ban hành cho {area}.",
	locale.EasyJapanese: "{area}に {warning}が でています。",
}

// Name returns the warning name for a code in the given locale, falling
// back to English and then Japanese. Unknown codes yield "".
func Name(code, lang string) string {
	entry, ok := codes[code]
	if !ok {
		return ""
	}
	for _, l := range []string{lang, "en", "ja"} {
		if name, ok := entry.Names[l]; ok {
			return name
		}
	}
	return ""
}

// Severity returns the severity for a known code.
func Severity(code string) (string, bool) {
	entry, ok := codes[code]
	return entry.Severity, ok
}

// AlertType maps a severity onto the alert type exposed to clients.
func AlertType(severity string) string {
	switch severity {
	case SeverityExtreme:
		return TypeSpecialWarning
	case SeverityHigh:
		return TypeWarning
	case SeverityMedium:
		return TypeAdvisory
	default:
		return TypeWatch
	}
}

func areaName(name, lang string) string {
	if lang == locale.Source {
		return name
	}
	if translated, ok := areaNames[name][lang]; ok {
		return translated
	}
	return name
}

func description(area, warning, lang string) string {
	template, ok := descriptionTemplates[lang]
	if !ok {
		template = descriptionTemplates["en"]
	}
	out := strings.ReplaceAll(template, "{area}", area)
	return strings.ReplaceAll(out, "{warning}", warning)
}

// Classifier turns warning reports into alerts. The clock is injected
// so alert IDs, which embed the observation minute, are testable.
type Classifier struct {
	clock clockwork.Clock
}

func NewClassifier(clock clockwork.Clock) *Classifier {
	return &Classifier{clock: clock}
}

// Classify extracts all in-force warnings from a report and localizes
// them. Alerts for the same area, code, and minute share an ID, which
// deduplicates repeat deliveries on the client side.
func (c *Classifier) Classify(report *jma.WarningReport, areaCode, lang string) []Alert {
	if report == nil {
		return nil
	}

	minute := c.clock.Now().Format("200601021504")
	var alerts []Alert

	for _, areaType := range report.AreaTypes {
		for _, area := range areaType.Areas {
			for _, w := range area.Warnings {
				if w.Status != issuedStatus {
					continue
				}
				entry, ok := codes[w.Code]
				if !ok {
					continue
				}

				titleJA := Name(w.Code, locale.Source)
				alert := Alert{
					ID:          fmt.Sprintf("%s_%s_%s", areaCode, w.Code, minute),
					Type:        AlertType(entry.Severity),
					Title:       titleJA,
					Description: description(area.Name, titleJA, locale.Source),
					Area:        areaName(area.Name, lang),
					IssuedAt:    report.ReportDatetime,
					Severity:    entry.Severity,
				}
				if lang != locale.Source {
					alert.TitleTranslated = Name(w.Code, lang)
					alert.DescriptionTranslated = description(areaName(area.Name, lang), alert.TitleTranslated, lang)
				}
				alerts = append(alerts, alert)
			}
		}
	}
	return alerts
}
