// Package config — .loctree.yaml configuration file support.
//
// A .loctree.yaml file in the project root declares the translation
// tree layout, the target languages, provider selection, and the
// classification patterns:
//
//	source_lang: en
//	languages: [ru, de, fr]
//	tree_dir: locales
//	glossary: glossary.yaml
//	provider: google
//	model: gemini-2.0-flash
//	max_concurrent: 50
//	passthrough_keys: ["*.href", "*.url", "*.icon"]
//	joint_content:
//	  - description_suffix: description
//	    array_key: links
//	    text_field: text
//
// Every field has a sensible default; a missing file yields the full
// default configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/minios-linux/loctree/classify"
)

// FileName is the configuration file looked up in the project root.
const FileName = ".loctree.yaml"

// JointRule mirrors one joint-content classification pattern in YAML.
type JointRule struct {
	// DescriptionSuffix matches description leaf paths.
	DescriptionSuffix string `yaml:"description_suffix"`
	// ArrayKey is the sibling link array's key.
	ArrayKey string `yaml:"array_key"`
	// TextField is the translatable field in each array item.
	TextField string `yaml:"text_field"`
}

// File is the top-level .loctree.yaml structure.
type File struct {
	// SourceLang is the source language code (default "en").
	SourceLang string `yaml:"source_lang,omitempty"`
	// Languages are the target language codes.
	Languages []string `yaml:"languages"`
	// TreeDir is the directory holding {lang}.json trees, relative to
	// the project root (default "locales").
	TreeDir string `yaml:"tree_dir,omitempty"`
	// Glossary is the glossary file path relative to the project root.
	Glossary string `yaml:"glossary,omitempty"`
	// Provider is the AI provider ID (default "google").
	Provider string `yaml:"provider,omitempty"`
	// Model overrides the provider's default model.
	Model string `yaml:"model,omitempty"`
	// MaxConcurrent caps in-flight provider calls (default 50).
	MaxConcurrent int `yaml:"max_concurrent,omitempty"`
	// PassthroughKeys are suffix patterns for never-translated keys.
	PassthroughKeys []string `yaml:"passthrough_keys,omitempty"`
	// JointContent are the joint description+links patterns.
	JointContent []JointRule `yaml:"joint_content,omitempty"`

	root string
}

// Default returns the built-in configuration for a project root.
func Default(rootDir string) *File {
	f := &File{root: rootDir}
	f.applyDefaults()
	return f
}

// Load reads .loctree.yaml from rootDir. A missing file is not an
// error — the defaults apply.
func Load(rootDir string) (*File, error) {
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(rootDir), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	f.root = rootDir
	f.applyDefaults()

	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) applyDefaults() {
	if f.SourceLang == "" {
		f.SourceLang = "en"
	}
	if f.TreeDir == "" {
		f.TreeDir = "locales"
	}
	if f.Glossary == "" {
		f.Glossary = "glossary.yaml"
	}
	if f.Provider == "" {
		f.Provider = "google"
	}
	if len(f.PassthroughKeys) == 0 && len(f.JointContent) == 0 {
		rules := classify.DefaultRules()
		f.PassthroughKeys = rules.PassThroughSuffixes
		for _, jp := range rules.JointPatterns {
			f.JointContent = append(f.JointContent, JointRule{
				DescriptionSuffix: jp.DescriptionSuffix,
				ArrayKey:          jp.ArrayKey,
				TextField:         jp.TextField,
			})
		}
	}
}

func (f *File) validate() error {
	for _, jr := range f.JointContent {
		if jr.DescriptionSuffix == "" || jr.ArrayKey == "" || jr.TextField == "" {
			return fmt.Errorf("joint_content entries need description_suffix, array_key, and text_field")
		}
	}
	for _, lang := range f.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("languages must not contain empty entries")
		}
	}
	return nil
}

// Root returns the project root directory.
func (f *File) Root() string {
	return f.root
}

// TreePath returns the tree file path for a language code.
func (f *File) TreePath(lang string) string {
	return filepath.Join(f.root, f.TreeDir, lang+".json")
}

// SourceTreePath returns the source tree file path.
func (f *File) SourceTreePath() string {
	return f.TreePath(f.SourceLang)
}

// GlossaryPath returns the glossary file path.
func (f *File) GlossaryPath() string {
	return filepath.Join(f.root, f.Glossary)
}

// Rules converts the configured patterns to classification rules.
func (f *File) Rules() classify.Rules {
	rules := classify.Rules{PassThroughSuffixes: f.PassthroughKeys}
	for _, jr := range f.JointContent {
		rules.JointPatterns = append(rules.JointPatterns, classify.JointPattern{
			DescriptionSuffix: jr.DescriptionSuffix,
			ArrayKey:          jr.ArrayKey,
			TextField:         jr.TextField,
		})
	}
	return rules
}

// TargetLanguages returns the configured target languages; when the
// list is empty it is detected from existing {lang}.json files in the
// tree directory, excluding the source language.
func (f *File) TargetLanguages() []string {
	if len(f.Languages) > 0 {
		return f.Languages
	}

	entries, err := os.ReadDir(filepath.Join(f.root, f.TreeDir))
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")
		if lang != "" && lang != f.SourceLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	return langs
}

// WriteDefault writes a starter .loctree.yaml to rootDir. It refuses
// to overwrite an existing file.
func WriteDefault(rootDir string) (string, error) {
	path := filepath.Join(rootDir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("%s already exists", path)
	}

	content := `# loctree configuration
source_lang: en
languages: []          # e.g. [ru, de, fr]; empty = detect from tree_dir
tree_dir: locales
glossary: glossary.yaml
provider: google       # google, groq, ollama, custom-openai
# model: gemini-2.0-flash
# max_concurrent: 50
passthrough_keys: ["*.href", "*.url", "*.icon"]
joint_content:
  - description_suffix: description
    array_key: links
    text_field: text
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return path, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
