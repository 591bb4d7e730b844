package translate

import (
	"strings"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/locale"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/render"
)

// keywords are the disaster terms the canned-phrase tier keys on.
var keywords = []string{"地震", "津波", "避難", "警報", "注意報"}

// patternKinds are the template kinds eligible for canned-phrase
// matching, most specific first. Only kinds whose templates carry no
// placeholders qualify: a matched input is answered with the template
// verbatim, so there is nothing to fill in.
var patternKinds = []render.Kind{
	render.KindTsunamiWarning,
	render.KindNoTsunami,
}

// matchPattern reports whether text is a variant of one of the canned
// phrases, and if so returns that phrase rendered in the target locale.
// A kind matches only when every keyword present in its Japanese
// template also appears in the input, so a bare term like "地震" never
// matches a full sentence template.
func matchPattern(text, localeCode string) (string, bool) {
	for _, kind := range patternKinds {
		source := render.Template(kind, locale.Source)
		matched := false
		for _, kw := range keywords {
			if !strings.Contains(source, kw) {
				continue
			}
			if !strings.Contains(text, kw) {
				matched = false
				break
			}
			matched = true
		}
		if matched {
			return render.Template(kind, localeCode), true
		}
	}
	return "", false
}
