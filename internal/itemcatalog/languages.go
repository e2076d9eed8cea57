package itemcatalog

import (
	"fmt"
	"sort"
	"strings"
)

// Language pairs a display name with its short code.
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// languagesByName holds the languages the testing program covers.
var languagesByName = map[string]string{
	"English":   "en",
	"Hindi":     "hi",
	"Tamil":     "ta",
	"Telugu":    "te",
	"Kannada":   "kn",
	"Malayalam": "ml",
	"Bengali":   "bn",
	"Gujarati":  "gu",
	"Marathi":   "mr",
	"Punjabi":   "pa",
}

// SupportedLanguages returns the language list sorted by display name.
func SupportedLanguages() []Language {
	langs := make([]Language, 0, len(languagesByName))
	for name, code := range languagesByName {
		langs = append(langs, Language{Name: name, Code: code})
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Name < langs[j].Name })
	return langs
}

// NormalizeLanguage resolves a short code or a full language name,
// case-insensitively, to the canonical short code.
func NormalizeLanguage(input string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", fmt.Errorf("language is empty")
	}
	for name, code := range languagesByName {
		if needle == code || needle == strings.ToLower(name) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unsupported language: %s", input)
}
