// Package langmeta provides a shared language metadata registry
// (native names, English names, and emoji flags) used for prompt
// construction and CLI output.
package langmeta

import "strings"

// Meta describes language display metadata.
type Meta struct {
	// Name is the language's native name.
	Name string
	// English is the language name in English, used in provider
	// instructions.
	English string
	// Flag is an emoji flag for status output.
	Flag string
}

// Registry contains canonical language metadata. Locale variants are
// resolved in Resolve() via normalization and base fallback.
var Registry = map[string]Meta{
	"ar":    {Name: "العربية", English: "Arabic", Flag: "🇸🇦"},
	"cs":    {Name: "Čeština", English: "Czech", Flag: "🇨🇿"},
	"da":    {Name: "Dansk", English: "Danish", Flag: "🇩🇰"},
	"de":    {Name: "Deutsch", English: "German", Flag: "🇩🇪"},
	"el":    {Name: "Ελληνικά", English: "Greek", Flag: "🇬🇷"},
	"en":    {Name: "English", English: "English", Flag: "🇺🇸"},
	"es":    {Name: "Español", English: "Spanish", Flag: "🇪🇸"},
	"fi":    {Name: "Suomi", English: "Finnish", Flag: "🇫🇮"},
	"fr":    {Name: "Français", English: "French", Flag: "🇫🇷"},
	"he":    {Name: "עברית", English: "Hebrew", Flag: "🇮🇱"},
	"hi":    {Name: "हिन्दी", English: "Hindi", Flag: "🇮🇳"},
	"hu":    {Name: "Magyar", English: "Hungarian", Flag: "🇭🇺"},
	"id":    {Name: "Bahasa Indonesia", English: "Indonesian", Flag: "🇮🇩"},
	"it":    {Name: "Italiano", English: "Italian", Flag: "🇮🇹"},
	"ja":    {Name: "日本語", English: "Japanese", Flag: "🇯🇵"},
	"ko":    {Name: "한국어", English: "Korean", Flag: "🇰🇷"},
	"nl":    {Name: "Nederlands", English: "Dutch", Flag: "🇳🇱"},
	"no":    {Name: "Norsk", English: "Norwegian", Flag: "🇳🇴"},
	"pl":    {Name: "Polski", English: "Polish", Flag: "🇵🇱"},
	"pt":    {Name: "Português", English: "Portuguese", Flag: "🇵🇹"},
	"pt-BR": {Name: "Português (Brasil)", English: "Brazilian Portuguese", Flag: "🇧🇷"},
	"ro":    {Name: "Română", English: "Romanian", Flag: "🇷🇴"},
	"ru":    {Name: "Русский", English: "Russian", Flag: "🇷🇺"},
	"sv":    {Name: "Svenska", English: "Swedish", Flag: "🇸🇪"},
	"th":    {Name: "ไทย", English: "Thai", Flag: "🇹🇭"},
	"tr":    {Name: "Türkçe", English: "Turkish", Flag: "🇹🇷"},
	"uk":    {Name: "Українська", English: "Ukrainian", Flag: "🇺🇦"},
	"vi":    {Name: "Tiếng Việt", English: "Vietnamese", Flag: "🇻🇳"},
	"zh":    {Name: "中文", English: "Chinese", Flag: "🇨🇳"},
	"zh-TW": {Name: "繁體中文", English: "Traditional Chinese", Flag: "🇹🇼"},
}

// Resolve returns best-effort metadata for a language code, supporting
// variants like pt_BR, pt-br, and region fallbacks. Unknown codes get
// the code itself as both names and a neutral flag.
func Resolve(lang string) Meta {
	norm := strings.ReplaceAll(lang, "_", "-")

	if m, ok := Registry[norm]; ok {
		return m
	}

	if idx := strings.Index(norm, "-"); idx > 0 {
		// Case-normalised variant (pt-br → pt-BR).
		canon := strings.ToLower(norm[:idx]) + "-" + strings.ToUpper(norm[idx+1:])
		if m, ok := Registry[canon]; ok {
			return m
		}
		// Base language fallback.
		if m, ok := Registry[strings.ToLower(norm[:idx])]; ok {
			return m
		}
	}

	if m, ok := Registry[strings.ToLower(norm)]; ok {
		return m
	}

	return Meta{Name: lang, English: lang, Flag: "🏳️"}
}

// English returns the English name for a language code, falling back
// to the code itself.
func English(lang string) string {
	return Resolve(lang).English
}

// Native returns the native name for a language code.
func Native(lang string) string {
	return Resolve(lang).Name
}
