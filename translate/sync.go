package translate

import (
	"context"

	"github.com/minios-linux/loctree/diff"
	"github.com/minios-linux/loctree/reconcile"
	"github.com/minios-linux/loctree/similarity"
	"github.com/minios-linux/loctree/tree"
)

// Summary reports the outcome of one language sync.
type Summary struct {
	// Missing is how many leaf paths the diff found absent.
	Missing int
	// Extra and Mismatched count target-only paths and shape
	// disagreements found by the diff.
	Extra      int
	Mismatched int
	// Translated counts items produced by the provider, PassedThrough
	// counts verbatim copies, FellBack counts per-item failures that
	// kept the source value.
	Translated    int
	PassedThrough int
	FellBack      int
}

// SyncLanguage brings one target language tree in sync with the source
// tree: diff, classify, translate, and reconcile into source order.
//
// The target tree is never mutated; the merged result is a new tree.
// Reconciliation runs once, after every translation result is
// available, so no interleaved writes can occur.
func SyncLanguage(ctx context.Context, tr Translator, source, target *tree.Node, others map[string]*tree.Node, opts Options) (*tree.Node, *Summary, error) {
	report := diff.Compare(source, target)
	sum := &Summary{
		Missing:    len(report.MissingInTarget),
		Extra:      len(report.ExtraInTarget),
		Mismatched: len(report.TypeMismatches),
	}

	work := tree.Clone(target)
	if work == nil {
		work = tree.NewObject()
	}

	if len(report.MissingInTarget) > 0 {
		job := Job{
			Source:  source,
			Target:  target,
			Missing: report.MissingInTarget,
			Others:  others,
			Index:   similarity.Build(source, target),
		}

		results := Run(ctx, tr, job, opts)
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		for _, r := range results {
			tree.Set(work, r.Path, r.Translated, source)
			switch {
			case r.PassThrough:
				sum.PassedThrough++
			case r.FellBack:
				sum.FellBack++
			default:
				sum.Translated++
			}
		}
	}

	return reconcile.Reorder(source, work), sum, nil
}
