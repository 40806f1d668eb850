// Package prefetch warms the speech cache for a batch of words so that
// playback during a conversation does not wait on synthesis.
package prefetch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/charla/internal/speech"
)

// DefaultConcurrency bounds parallel synthesis requests.
const DefaultConcurrency = 3

// Result summarizes a warm-up run.
type Result struct {
	Warmed  int // newly synthesized words
	Skipped int // already cached or being generated elsewhere
	Failed  []string
}

// Warm synthesizes audio for all words, at most concurrency requests in
// flight at a time. Words already cached or pending are skipped. A failed
// word does not abort the run; failures are reported in the result.
func Warm(ctx context.Context, cache *speech.Cache, words []string, concurrency int) (Result, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	type outcome struct {
		word string
		err  error
	}
	outcomes := make([]outcome, len(words))

	skipped := 0
	for i, word := range words {
		if word == "" {
			continue
		}
		if cache.Cached(word) {
			skipped++
			continue
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := cache.Synthesize(ctx, word)
			outcomes[i] = outcome{word: word, err: err}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, fmt.Errorf("warm-up aborted: %w", err)
	}

	result := Result{Skipped: skipped}
	for _, o := range outcomes {
		switch {
		case o.word == "":
		case o.err == nil:
			result.Warmed++
		case errors.Is(o.err, speech.ErrBusy):
			result.Skipped++
		default:
			result.Failed = append(result.Failed, o.word)
		}
	}

	return result, nil
}
