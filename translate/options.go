package translate

import (
	"github.com/minios-linux/loctree/classify"
	"github.com/minios-linux/loctree/glossary"
	"github.com/minios-linux/loctree/langmeta"
)

// DefaultMaxConcurrent is the default cap on in-flight provider calls.
const DefaultMaxConcurrent = 50

// Options controls one orchestrator run.
type Options struct {
	// SourceLang is the source language code (e.g. "en").
	SourceLang string
	// Language is the target language code (e.g. "ru", "de").
	Language string
	// LanguageName is the human-readable target language name; derived
	// from langmeta when empty.
	LanguageName string
	// MaxConcurrent caps in-flight provider calls for ordinary items.
	MaxConcurrent int
	// Rules are the classification patterns.
	Rules classify.Rules
	// Glossary holds protected terms; may be nil.
	Glossary *glossary.Glossary
	// Verbose enables detailed logging, including placeholder
	// verification of provider output.
	Verbose bool
	// OnProgress is called as items complete; counts only increase.
	OnProgress func(lang string, done, total int)
	// OnLog emits log messages during translation.
	OnLog func(format string, args ...any)
	// OnError emits error messages during translation.
	OnError func(format string, args ...any)
}

func (o *Options) log(format string, args ...any) {
	if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) logError(format string, args ...any) {
	if o.OnError != nil {
		o.OnError(format, args...)
	} else if o.OnLog != nil {
		o.OnLog(format, args...)
	}
}

func (o *Options) effectiveMaxConcurrent() int {
	if o.MaxConcurrent > 0 {
		return o.MaxConcurrent
	}
	return DefaultMaxConcurrent
}

func (o *Options) effectiveRules() classify.Rules {
	if len(o.Rules.PassThroughSuffixes) == 0 && len(o.Rules.JointPatterns) == 0 {
		return classify.DefaultRules()
	}
	return o.Rules
}

func (o *Options) targetName() string {
	if o.LanguageName != "" {
		return o.LanguageName
	}
	return langmeta.English(o.Language)
}

func (o *Options) sourceName() string {
	if o.SourceLang == "" {
		return "English"
	}
	return langmeta.English(o.SourceLang)
}
