package assembler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mjelstad/clinichunk/pkg/types"
)

// Document is one note queued for corpus assembly
type Document struct {
	ID   string
	Text string
	Meta NoteMeta
}

// Result holds the outcome of chunking one document
type Result struct {
	ID     string
	Chunks []*types.ClinicalChunk
	Err    error
}

// Statistics summarizes a corpus assembly run
type Statistics struct {
	DocumentsChunked int
	DocumentsFailed  int
	ChunksCreated    int
	Duration         time.Duration
	ErrorMessages    []string
}

// AssembleCorpus chunks many independent documents concurrently. Each
// document is a self-contained, side-effect-free computation, so the fan-out
// needs no locking. Results are returned in input order; a failing document
// records its error in its Result without stopping the others.
func (a *Assembler) AssembleCorpus(ctx context.Context, docs []Document, workers int) ([]Result, *Statistics, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	startTime := time.Now()
	results := make([]Result, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc := docs[i]
			chunks, err := a.Assemble(doc.Text, doc.Meta)
			results[i] = Result{ID: doc.ID, Chunks: chunks, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("corpus assembly canceled: %w", err)
	}

	stats := &Statistics{Duration: time.Since(startTime)}
	for _, r := range results {
		if r.Err != nil {
			stats.DocumentsFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", r.ID, r.Err))
			continue
		}
		stats.DocumentsChunked++
		stats.ChunksCreated += len(r.Chunks)
	}

	return results, stats, nil
}
