// loctree — translation tree manager: keeps hierarchical multilingual
// JSON trees in sync with a source tree, with AI translation for the
// gaps.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minios-linux/loctree/config"
	"github.com/minios-linux/loctree/diff"
	"github.com/minios-linux/loctree/glossary"
	"github.com/minios-linux/loctree/i18n"
	"github.com/minios-linux/loctree/langmeta"
	"github.com/minios-linux/loctree/settings"
	"github.com/minios-linux/loctree/translate"
	"github.com/minios-linux/loctree/tree"
	"github.com/minios-linux/loctree/treefile"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "loctree",
		Short: "Translation tree manager with AI translation",
		Long: `loctree — translation tree manager with AI translation.

Keeps a family of hierarchical JSON translation trees in sync with a
single source tree and fills the gaps in non-source trees through an
AI translation provider, preserving key order, array shapes, link
anchors, and glossary terms.

Commands:
  status      Show per-language translation statistics
  diff        Show structural discrepancies for one language
  translate   Translate missing keys and reconcile target trees
  init        Scaffold .loctree.yaml and a starter glossary
  auth        Manage provider API keys

AI Providers:
  google         Google AI (Gemini) — API key
  groq           Groq — API key required
  ollama         Ollama local server
  custom-openai  Custom OpenAI-compatible endpoint`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags — inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(
		newStatusCmd(),
		newDiffCmd(),
		newTranslateCmd(),
		newInitCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// notFound reports whether err wraps a missing-file error.
func notFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// ---------------------------------------------------------------------------
// status
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-language translation statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}

			source, err := treefile.ParseFile(cfg.SourceTreePath())
			if err != nil {
				return err
			}

			fmt.Printf(i18n.T("Source tree: %s (%d keys)")+"\n",
				cfg.SourceTreePath(), tree.CountLeaves(source))
			fmt.Println()

			langs := cfg.TargetLanguages()
			if len(langs) == 0 {
				logWarning("No target languages configured or detected in %s", cfg.TreeDir)
				return nil
			}

			allSynced := true
			for _, lang := range langs {
				meta := langmeta.Resolve(lang)
				target, err := treefile.ParseFile(cfg.TreePath(lang))
				if err != nil {
					if notFound(err) {
						fmt.Printf("  %s %-8s %-24s missing (%d keys to translate)\n",
							meta.Flag, lang, meta.Name, tree.CountLeaves(source))
						allSynced = false
						continue
					}
					logError("%s: %v", lang, err)
					allSynced = false
					continue
				}

				report := diff.Compare(source, target)
				translated := report.SourceLeaves - len(report.MissingInTarget)
				fmt.Printf("  %s %-8s %-24s %d/%d (%s)",
					meta.Flag, lang, meta.Name, translated, report.SourceLeaves,
					percent(translated, report.SourceLeaves))
				if len(report.ExtraInTarget) > 0 {
					fmt.Printf(", %d extra", len(report.ExtraInTarget))
				}
				if len(report.TypeMismatches) > 0 {
					fmt.Printf(", %d shape mismatches", len(report.TypeMismatches))
				}
				fmt.Println()
				if !report.InSync() {
					allSynced = false
				}
			}

			if allSynced {
				fmt.Println()
				logSuccess("%s", i18n.T("All trees are in sync"))
			}
			return nil
		},
	}
}

// percent formats a ratio as "NN.N%".
func percent(part, total int) string {
	if total == 0 {
		return "100.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

// ---------------------------------------------------------------------------
// diff
// ---------------------------------------------------------------------------

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <lang>",
		Short: "Show structural discrepancies for one language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang := args[0]
			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}

			source, err := treefile.ParseFile(cfg.SourceTreePath())
			if err != nil {
				return err
			}
			target, err := treefile.ParseFile(cfg.TreePath(lang))
			if err != nil {
				return err
			}

			report := diff.Compare(source, target)
			if report.InSync() {
				logSuccess("%s is in sync with %s", lang, cfg.SourceLang)
				return nil
			}

			if len(report.MissingInTarget) > 0 {
				fmt.Printf("Missing in %s (%d):\n", lang, len(report.MissingInTarget))
				for _, p := range report.MissingInTarget {
					fmt.Printf("  - %s\n", p)
				}
			}
			if len(report.ExtraInTarget) > 0 {
				fmt.Printf("Extra in %s (%d):\n", lang, len(report.ExtraInTarget))
				for _, p := range report.ExtraInTarget {
					fmt.Printf("  + %s\n", p)
				}
			}
			if len(report.TypeMismatches) > 0 {
				fmt.Printf("Shape mismatches (%d):\n", len(report.TypeMismatches))
				for _, m := range report.TypeMismatches {
					fmt.Printf("  ! %s: %s in %s, %s in %s\n",
						m.Path, m.SourceKind, cfg.SourceLang, m.TargetKind, lang)
				}
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var (
		apiKey        string
		model         string
		providerID    string
		maxConcurrent int
	)

	cmd := &cobra.Command{
		Use:   "translate [lang...]",
		Short: "Translate missing keys and reconcile target trees",
		Long: `Translate missing keys for the given languages (default: all
configured languages) and write reconciled trees matching the source
tree's key order and shapes.

API keys are resolved from --api-key, the LOCTREE_API_KEY environment
variable, a .env file in the project root, or the credential store
(see "loctree auth").`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// A .env in the project root may carry the API key.
			_ = godotenv.Load(filepath.Join(rootDir, ".env"))

			cfg, err := config.Load(rootDir)
			if err != nil {
				return err
			}
			if providerID != "" {
				cfg.Provider = providerID
			}
			if model != "" {
				cfg.Model = model
			}
			if maxConcurrent > 0 {
				cfg.MaxConcurrent = maxConcurrent
			}

			// Cannot diff against a missing or broken source.
			source, err := treefile.ParseFile(cfg.SourceTreePath())
			if err != nil {
				return err
			}

			langs := args
			if len(langs) == 0 {
				langs = cfg.TargetLanguages()
			}
			if len(langs) == 0 {
				logWarning("%s", i18n.T("Nothing to translate"))
				return nil
			}

			prov, err := resolveProvider(cfg, apiKey)
			if err != nil {
				return err
			}
			logInfo("Provider: %s (%s)", prov.Name, prov.Model)

			gloss, err := glossary.Load(cfg.GlossaryPath())
			if err != nil {
				return err
			}
			if !gloss.Empty() {
				logInfo("Glossary: %d protected terms", len(gloss.Terms))
			}

			// Load every target up front so each language's prompts can
			// reference the others' existing translations. A broken
			// file skips that language only.
			targets := make(map[string]*tree.Node)
			var runLangs []string
			for _, lang := range langs {
				target, err := treefile.ParseFile(cfg.TreePath(lang))
				if err != nil {
					if notFound(err) {
						targets[lang] = nil
						runLangs = append(runLangs, lang)
						continue
					}
					logError("%s: %v — skipping this language", lang, err)
					continue
				}
				targets[lang] = target
				runLangs = append(runLangs, lang)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			tr := translate.NewProviderTranslator(prov, verbose)
			var failed []string
			for _, lang := range runLangs {
				if err := runLanguage(ctx, tr, cfg, gloss, source, targets, lang); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					logError("Error translating %s: %v", lang, err)
					failed = append(failed, lang)
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("%d language(s) failed: %s", len(failed), strings.Join(failed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Provider API key (overrides env and stored credentials)")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier (overrides config)")
	cmd.Flags().StringVar(&providerID, "provider", "", "Provider ID (overrides config)")
	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "Max in-flight provider calls (default 50)")

	return cmd
}

// runLanguage syncs one language and writes the reconciled tree.
func runLanguage(ctx context.Context, tr translate.Translator, cfg *config.File, gloss *glossary.Glossary, source *tree.Node, targets map[string]*tree.Node, lang string) error {
	meta := langmeta.Resolve(lang)
	target := targets[lang]

	report := diff.Compare(source, target)
	if report.InSync() {
		logInfo("%s (%s): already in sync", lang, meta.Name)
		return nil
	}

	logInfo(i18n.T("Translating %s (%s) — %d missing keys..."),
		lang, meta.Name, len(report.MissingInTarget))

	others := make(map[string]*tree.Node)
	for l, t := range targets {
		if l != lang && t != nil {
			others[l] = t
		}
	}

	opts := translate.Options{
		SourceLang:    cfg.SourceLang,
		Language:      lang,
		LanguageName:  meta.English,
		MaxConcurrent: cfg.MaxConcurrent,
		Rules:         cfg.Rules(),
		Glossary:      gloss,
		Verbose:       verbose,
		OnProgress: func(l string, done, total int) {
			fmt.Fprintf(os.Stderr, "\r  [%s] %d/%d", l, done, total)
			if done == total {
				fmt.Fprintln(os.Stderr)
			}
		},
		OnLog:   logInfo,
		OnError: logWarning,
	}

	merged, sum, err := translate.SyncLanguage(ctx, tr, source, target, others, opts)
	if err != nil {
		return err
	}

	path := cfg.TreePath(lang)
	if err := treefile.WriteFile(path, merged); err != nil {
		return err
	}
	targets[lang] = merged

	logSuccess(i18n.T("Saved %s"), path)
	logInfo("  %d translated, %d passed through, %d fell back to source",
		sum.Translated, sum.PassedThrough, sum.FellBack)
	if sum.Extra > 0 || sum.Mismatched > 0 {
		logInfo("  dropped %d extra keys, fixed %d shape mismatches", sum.Extra, sum.Mismatched)
	}
	return nil
}

// resolveProvider builds the provider configuration from config,
// stored credentials, and the --api-key flag.
func resolveProvider(cfg *config.File, apiKeyFlag string) (translate.Provider, error) {
	providers := translate.DefaultProviders()
	prov, ok := providers[cfg.Provider]
	if !ok {
		return translate.Provider{}, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	store, err := settings.Load()
	if err != nil {
		return translate.Provider{}, err
	}

	if info, ok := store.Get(prov.ID); ok && info.BaseURL != "" {
		prov.BaseURL = info.BaseURL
	}
	prov.APIKey = store.APIKeyFor(prov.ID, apiKeyFlag)
	if cfg.Model != "" {
		prov.Model = cfg.Model
	}

	if prov.APIKey == "" && prov.ID != translate.ProviderOllama {
		return translate.Provider{}, fmt.Errorf(
			"no API key for provider %q: use --api-key, LOCTREE_API_KEY, or \"loctree auth set %s\"",
			prov.ID, prov.ID)
	}
	if prov.BaseURL == "" {
		return translate.Provider{}, fmt.Errorf(
			"provider %q needs a base URL: \"loctree auth set %s --base-url ...\"", prov.ID, prov.ID)
	}
	return prov, nil
}

// ---------------------------------------------------------------------------
// init
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold .loctree.yaml and a starter glossary",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(rootDir)
			if err != nil {
				return err
			}
			logSuccess("Created %s", path)

			glossPath := filepath.Join(rootDir, "glossary.yaml")
			if _, err := os.Stat(glossPath); os.IsNotExist(err) {
				starter := `# Protected terms: kept verbatim or translated via per-language overrides.
terms: []
#  - term: MiniOS
#  - term: edition
#    overrides:
#      ru: издание
`
				if err := os.WriteFile(glossPath, []byte(starter), 0644); err != nil {
					return fmt.Errorf("writing %s: %w", glossPath, err)
				}
				logSuccess("Created %s", glossPath)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// auth
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	auth := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys",
	}
	auth.AddCommand(newAuthSetCmd(), newAuthShowCmd(), newAuthRemoveCmd())
	return auth
}

func newAuthSetCmd() *cobra.Command {
	var (
		apiKey  string
		baseURL string
	)
	cmd := &cobra.Command{
		Use:   "set <provider>",
		Short: "Store an API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID := args[0]
			if _, ok := translate.DefaultProviders()[providerID]; !ok {
				return fmt.Errorf("unknown provider %q", providerID)
			}
			if apiKey == "" && baseURL == "" {
				return fmt.Errorf("nothing to store: pass --api-key and/or --base-url")
			}

			store, err := settings.Load()
			if err != nil {
				return err
			}
			info, _ := store.Get(providerID)
			if info == nil {
				info = &settings.Info{}
			}
			if apiKey != "" {
				info.Key = apiKey
			}
			if baseURL != "" {
				info.BaseURL = baseURL
			}
			store.Set(providerID, info)
			if err := store.Save(); err != nil {
				return err
			}
			logSuccess("Stored credentials for %s in %s", providerID, settings.FilePath())
			return nil
		},
	}
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key to store")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Custom endpoint base URL")
	return cmd
}

func newAuthShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List stored provider credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Load()
			if err != nil {
				return err
			}
			if len(store) == 0 {
				fmt.Println("No stored credentials.")
				return nil
			}
			for id, info := range store {
				line := id + ": key " + maskKey(info.Key)
				if info.BaseURL != "" {
					line += ", base URL " + info.BaseURL
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <provider>",
		Short: "Remove stored credentials for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settings.Load()
			if err != nil {
				return err
			}
			if !store.Remove(args[0]) {
				logWarning("No stored credentials for %s", args[0])
				return nil
			}
			if err := store.Save(); err != nil {
				return err
			}
			logSuccess("Removed credentials for %s", args[0])
			return nil
		},
	}
}

// maskKey shortens a secret for display.
func maskKey(key string) string {
	if key == "" {
		return "(none)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("loctree %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
