package translate

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/minios-linux/loctree/classify"
	"github.com/minios-linux/loctree/similarity"
	"github.com/minios-linux/loctree/tree"
)

// Result is the unit the orchestrator returns and the reconciler
// consumes.
type Result struct {
	// Path is the leaf key path.
	Path string
	// Original is the source value.
	Original string
	// Translated is the produced value. On a per-item failure this is
	// the original source value (safe fallback) and FellBack is set.
	Translated string
	// Lang is the target language code.
	Lang string
	// PassThrough marks keys copied verbatim, never sent to the
	// provider.
	PassThrough bool
	// FellBack marks items whose provider call failed.
	FellBack bool
}

// Job bundles the read-only inputs of one orchestrator run. The
// similarity index and the other-languages trees are built once per
// run and never written afterwards, so workers need no locking to read
// them.
type Job struct {
	// Source is the authoritative source tree.
	Source *tree.Node
	// Target is the current target-language tree (may be nil for a new
	// language).
	Target *tree.Node
	// Missing lists the leaf key paths to produce, in source traversal
	// order (from the diff engine).
	Missing []string
	// Others maps other target language codes to their existing trees,
	// used for cross-language context in prompts.
	Others map[string]*tree.Node
	// Index is the similarity index for the target language; may be
	// nil.
	Index *similarity.Index
}

// leafContext is the ephemeral per-leaf bundle built lazily for each
// leaf requiring translation and discarded after use.
type leafContext struct {
	path     string
	source   string
	section  string
	others   map[string]string
	examples []similarity.Entry
}

func buildLeafContext(job Job, path, source string) *leafContext {
	lc := &leafContext{
		path:    path,
		source:  source,
		section: tree.ParentPath(path),
	}
	for lang, other := range job.Others {
		if v, ok := tree.GetString(other, path); ok && v != "" {
			if lc.others == nil {
				lc.others = make(map[string]string)
			}
			lc.others[lang] = v
		}
	}
	if job.Index != nil {
		lc.examples = job.Index.Query(source, path)
	}
	return lc
}

// ---------------------------------------------------------------------------
// Run phases
// ---------------------------------------------------------------------------

type phase int

const (
	phaseIdle phase = iota
	phaseClassifying
	phaseDispatching
	phaseDraining
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseClassifying:
		return "classifying"
	case phaseDispatching:
		return "dispatching"
	case phaseDraining:
		return "draining"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// progressTracker serialises progress callbacks so counts only ever
// increase and no duplicate or out-of-order calls are possible.
type progressTracker struct {
	mu    sync.Mutex
	done  int
	total int
	lang  string
	cb    func(lang string, done, total int)
}

func (p *progressTracker) step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.cb != nil {
		p.cb(p.lang, p.done, p.total)
	}
}

// Run drives one translation run: classify the missing keys, resolve
// pass-through items, translate joint groups sequentially, translate
// ordinary items through the bounded pool, and aggregate results.
//
// Per-item provider failures never halt the run; the affected item
// falls back to its source value. Aggregate order is pass-through
// first, then joint-group results (description before its anchors, in
// source array order), then ordinary results in classifier order.
func Run(ctx context.Context, tr Translator, job Job, opts Options) []Result {
	st := phaseIdle
	runLog := func(next phase) {
		st = next
		if opts.Verbose {
			opts.log("  orchestrator: %s", st)
		}
	}

	runLog(phaseClassifying)
	part := classify.Classify(job.Missing, job.Source, opts.effectiveRules())

	jointItems := 0
	for _, g := range part.Joint {
		jointItems += 1 + len(g.TextPaths)
	}
	progress := &progressTracker{
		total: len(part.PassThrough) + jointItems + len(part.Ordinary),
		lang:  opts.Language,
		cb:    opts.OnProgress,
	}

	runLog(phaseDispatching)

	// Pass-through items resolve immediately, no external call.
	var passResults []Result
	for _, path := range part.PassThrough {
		value, _ := tree.GetString(job.Source, path)
		passResults = append(passResults, Result{
			Path:        path,
			Original:    value,
			Translated:  value,
			Lang:        opts.Language,
			PassThrough: true,
		})
		progress.step()
	}

	// Joint groups run strictly sequentially relative to each other.
	var jointResults []Result
	for _, group := range part.Joint {
		jointResults = append(jointResults, translateJointGroup(ctx, tr, job, group, &opts, progress)...)
	}

	// Ordinary items go through the bounded worker pool. Result slots
	// are fixed at dispatch time, so output order matches input order
	// regardless of completion order.
	ordinaryResults := make([]Result, len(part.Ordinary))
	runPool(ctx, len(part.Ordinary), opts.effectiveMaxConcurrent(), func(i int) {
		ordinaryResults[i] = translateOrdinary(ctx, tr, job, part.Ordinary[i], &opts)
		progress.step()
	})

	runLog(phaseDraining)
	results := make([]Result, 0, len(passResults)+len(jointResults)+len(ordinaryResults))
	results = append(results, passResults...)
	results = append(results, jointResults...)
	results = append(results, ordinaryResults...)

	runLog(phaseDone)
	return results
}

// runPool runs n items through a bounded pool of in-flight calls. As
// each call completes its slot is filled and the next item dispatches
// immediately.
func runPool(ctx context.Context, n, maxConcurrent int, fn func(i int)) {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	sem := make(chan struct{}, maxConcurrent)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		sem <- struct{}{}
		wg.Add(1)

		go func(i int) {
			defer func() {
				<-sem
				wg.Done()
			}()
			fn(i)
		}(i)
	}

	wg.Wait()
}

// translateOrdinary translates one independent leaf. A provider error
// is caught locally: the result falls back to the source value and the
// failure is reported without failing sibling items.
func translateOrdinary(ctx context.Context, tr Translator, job Job, path string, opts *Options) Result {
	source, _ := tree.GetString(job.Source, path)
	res := Result{
		Path:     path,
		Original: source,
		Lang:     opts.Language,
	}

	lc := buildLeafContext(job, path, source)
	translated, err := tr.Translate(ctx, buildOrdinaryInstructions(opts, lc), source)
	if err != nil {
		opts.logError("  %s: provider error, keeping source value: %v", path, err)
		res.Translated = source
		res.FellBack = true
		return res
	}

	res.Translated = postprocess(translated, source, path, opts)
	return res
}

// translateJointGroup translates a description and its link anchors as
// one structured call. If the response cannot be interpreted as
// {description, linkTexts} with the expected anchor count, the group
// degrades to an independent description-only translation; the anchors
// keep their last-known value by omission.
func translateJointGroup(ctx context.Context, tr Translator, job Job, group classify.Group, opts *Options, progress *progressTracker) []Result {
	description, _ := tree.GetString(job.Source, group.DescriptionPath)
	texts := make([]string, len(group.TextPaths))
	for i, tp := range group.TextPaths {
		texts[i], _ = tree.GetString(job.Source, tp)
	}

	input, err := json.Marshal(Structured{Description: description, LinkTexts: texts})
	if err == nil {
		structured, serr := tr.TranslateStructured(ctx, buildJointInstructions(opts), string(input))
		if serr == nil && len(structured.LinkTexts) == len(group.TextPaths) {
			results := make([]Result, 0, 1+len(group.TextPaths))
			results = append(results, Result{
				Path:       group.DescriptionPath,
				Original:   description,
				Translated: postprocess(structured.Description, description, group.DescriptionPath, opts),
				Lang:       opts.Language,
			})
			for i, tp := range group.TextPaths {
				results = append(results, Result{
					Path:       tp,
					Original:   texts[i],
					Translated: postprocess(structured.LinkTexts[i], texts[i], tp, opts),
					Lang:       opts.Language,
				})
				progress.step()
			}
			progress.step()
			return results
		}
		if serr != nil {
			opts.logError("  %s: structured response failed, falling back to description only: %v", group.DescriptionPath, serr)
		} else {
			opts.logError("  %s: structured response returned %d link texts, want %d; falling back to description only",
				group.DescriptionPath, len(structured.LinkTexts), len(group.TextPaths))
		}
	}

	// Known degradation: translate only the description; anchor leaves
	// are omitted from the results so they keep their last-known value.
	res := translateOrdinary(ctx, tr, job, group.DescriptionPath, opts)
	progress.step()
	for range group.TextPaths {
		progress.step()
	}
	return []Result{res}
}

// postprocess strips cosmetic wrapping from provider output and, in
// verbose mode, checks that every placeholder token from the source
// survived — logging, not failing, on mismatch.
func postprocess(translated, source, path string, opts *Options) string {
	out := stripWrapping(translated, source)
	if opts.Verbose {
		if missing := missingPlaceholders(source, out); len(missing) > 0 {
			opts.logError("  %s: translation lost placeholder(s) %v", path, missing)
		}
	}
	return out
}
