// Package bible holds the static reference data: supported translations and
// the 66-book canon used to render verse references.
package bible

// Translations lists the supported translation codes in display order.
var Translations = []string{"KJV", "ASV", "WEB", "DRA"}

var translationLabels = map[string]string{
	"KJV": "King James Version",
	"ASV": "American Standard Version",
	"WEB": "World English Bible",
	"DRA": "Douay-Rheims",
}

// IsTranslation reports whether code is a supported translation.
func IsTranslation(code string) bool {
	_, ok := translationLabels[code]
	return ok
}

// TranslationLabel returns the full name of a translation, or the code itself if unknown.
func TranslationLabel(code string) string {
	if label, ok := translationLabels[code]; ok {
		return label
	}
	return code
}
