package models

import "fmt"

// Language is a short language tag used to select localized lesson columns.
type Language string

// Supported language tags. The default language always has storage slots in
// the lessons schema; other languages' columns may not be rolled out yet.
const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguagePunjabi Language = "pa"
	LanguageTamil   Language = "ta"
)

// DefaultLanguage is the fallback for every localized field.
const DefaultLanguage = LanguageEnglish

// SupportedLanguages lists every language clients may request, in picker order.
var SupportedLanguages = []Language{
	LanguageEnglish,
	LanguageHindi,
	LanguagePunjabi,
	LanguageTamil,
}

// Valid reports whether the language is one of the supported tags.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguagePunjabi, LanguageTamil:
		return true
	}
	return false
}

// Column returns the localized column name for a base field, e.g. "title_hi".
// Column names are built only from the supported tag whitelist, never from raw
// request input, so callers must validate the language first.
func (l Language) Column(field string) string {
	return fmt.Sprintf("%s_%s", field, l)
}

// DisplayName returns the language's self-described name for pickers.
func (l Language) DisplayName() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageHindi:
		return "हिन्दी"
	case LanguagePunjabi:
		return "ਪੰਜਾਬੀ"
	case LanguageTamil:
		return "தமிழ்"
	}
	return string(l)
}

// LanguageInfo describes a supported language in the languages listing.
type LanguageInfo struct {
	Code      Language `json:"code"`
	Name      string   `json:"name"`
	IsDefault bool     `json:"isDefault"`
}
