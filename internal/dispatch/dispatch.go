package dispatch

import (
	"context"
	"log"
	"time"

	"joblists/internal/domain"

	"golang.org/x/sync/errgroup"
)

// Producer is one portal crawler. Produce returns up to maxPages worth
// of listings or an error. Implementations must be safe to run
// concurrently with other producers and must not share mutable state.
type Producer interface {
	Name() string
	Produce(ctx context.Context, maxPages int) ([]*domain.Record, error)
}

type Task struct {
	Producer Producer
	Label    string
	MaxPages int
}

// Result is what one task settled with. Records is empty when the
// producer failed or timed out; the error never leaves the dispatcher.
type Result struct {
	Label   string
	Records []*domain.Record
}

// All runs every task concurrently, one worker per task, and blocks
// until all of them settle. A producer error (or deadline expiry when
// timeout > 0) is logged and degraded to an empty Result; it never
// cancels sibling tasks. Results come back in completion order, which
// carries no meaning downstream. Each record is stamped with its task
// label as the source field.
func All(ctx context.Context, tasks []Task, timeout time.Duration) []Result {
	var g errgroup.Group

	results := make(chan Result, len(tasks))

	for _, t := range tasks {
		t := t

		g.Go(func() error {
			tctx := ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				tctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			results <- runOne(tctx, t)
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	out := make([]Result, 0, len(tasks))
	for res := range results {
		out = append(out, res)
	}
	return out
}

type produced struct {
	recs []*domain.Record
	err  error
}

func runOne(ctx context.Context, t Task) Result {
	log.Printf("[%s] starting (max_pages=%d)", t.Label, t.MaxPages)

	// Buffered so an abandoned producer goroutine can still send and exit.
	done := make(chan produced, 1)
	go func() {
		recs, err := t.Producer.Produce(ctx, t.MaxPages)
		done <- produced{recs: recs, err: err}
	}()

	var p produced
	select {
	case <-ctx.Done():
		log.Printf("[%s] timed out: %v", t.Label, ctx.Err())
		return Result{Label: t.Label}
	case p = <-done:
	}

	recs, err := p.recs, p.err
	if err != nil {
		// best-effort: don't fail the run because one portal is down
		log.Printf("[%s] error: %v", t.Label, err)
		return Result{Label: t.Label}
	}

	// Stamp the label onto clones; the producer's records stay untouched.
	out := make([]*domain.Record, 0, len(recs))
	for _, r := range recs {
		c := r.Clone()
		c.Set(domain.SourceField, t.Label)
		out = append(out, c)
	}

	log.Printf("[%s] done, collected %d", t.Label, len(out))
	return Result{Label: t.Label, Records: out}
}
