package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Source is the locale of all upstream agency feeds.
const Source = "ja"

// EasyJapanese is simplified Japanese (やさしい日本語) for residents who
// read kana but struggle with kanji. It has no BCP 47 representation, so
// it is handled alongside the tagged locales rather than through x/text.
const EasyJapanese = "easy_ja"

// names maps each supported locale code to its native display name.
var names = map[string]string{
	"ja":         "日本語",
	"en":         "English",
	"zh":         "简体中文",
	"zh-TW":      "繁體中文",
	"ko":         "한국어",
	"vi":         "Tiếng Việt",
	"th":         "ภาษาไทย",
	"id":         "Bahasa Indonesia",
	"ms":         "Bahasa Melayu",
	"tl":         "Filipino",
	"fr":         "Français",
	"de":         "Deutsch",
	"it":         "Italiano",
	"es":         "Español",
	"ne":         "नेपाली",
	EasyJapanese: "やさしい日本語",
}

// labels maps locale codes to the human-readable English names handed to
// the remote translation provider in its prompt.
var labels = map[string]string{
	"en":         "English",
	"zh":         "Simplified Chinese",
	"zh-TW":      "Traditional Chinese",
	"ko":         "Korean",
	"vi":         "Vietnamese",
	"th":         "Thai",
	"id":         "Indonesian",
	"ms":         "Malay",
	"tl":         "Filipino/Tagalog",
	"fr":         "French",
	"de":         "German",
	"it":         "Italian",
	"es":         "Spanish",
	"ne":         "Nepali",
	EasyJapanese: "Simple Japanese (やさしい日本語)",
}

// order is the stable listing order for the languages endpoint.
var order = []string{
	"ja", "en", "zh", "zh-TW", "ko", "vi", "th", "id",
	"ms", "tl", "fr", "de", "it", "es", "ne", EasyJapanese,
}

// Supported returns all locale codes in stable order.
func Supported() []string {
	ret := make([]string, len(order))
	copy(ret, order)
	return ret
}

// IsSupported reports whether code is one of the supported locales.
func IsSupported(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the native display name for a locale code, or the code
// itself when unknown.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// Label returns the English provider-facing name for a locale code, or
// the code itself when unknown. The source locale has no label because
// nothing is ever translated into it.
func Label(code string) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return code
}

// Names returns a copy of the code -> native name table.
func Names() map[string]string {
	ret := make(map[string]string, len(names))
	for code, name := range names {
		ret[code] = name
	}
	return ret
}

// Normalize maps an inbound lang parameter onto a supported locale code.
// Exact codes pass through; otherwise the value is parsed as a BCP 47 tag
// ("en-US" -> "en", "zh-Hant" -> "zh-TW"). Values that cannot be mapped
// are returned unchanged — the resolver and renderer treat unknown
// locales as "no mapping" and fall back, never as errors.
func Normalize(lang string) string {
	if lang == "" {
		return Source
	}
	if IsSupported(lang) {
		return lang
	}

	tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
	if err != nil {
		return lang
	}

	base, _ := tag.Base()
	script, _ := tag.Script()
	if base.String() == "zh" && script.String() == "Hant" {
		return "zh-TW"
	}
	if IsSupported(base.String()) {
		return base.String()
	}
	return lang
}
