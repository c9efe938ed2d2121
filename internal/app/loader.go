package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"eatery_catalog/internal/adapters/observability"
	"eatery_catalog/internal/domain"
)

const defaultWorkers = 8

// Drop reasons, also used as metric labels.
const (
	ReasonRead      = "read"
	ReasonMalformed = "malformed"
)

type DroppedBlob struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// LoadReport describes what a load kept and what it dropped.
type LoadReport struct {
	Source       string        `json:"source"`
	Seen         int           `json:"seen"`
	Loaded       int           `json:"loaded"`
	Dropped      []DroppedBlob `json:"dropped"`
	DuplicateIDs []uint64      `json:"duplicate_ids"`
	Version      string        `json:"version"`
	Duration     time.Duration `json:"duration_ns"`
}

type Loader struct {
	src     domain.BlobSource
	workers int
	log     zerolog.Logger
}

func NewLoader(src domain.BlobSource, workers int, log zerolog.Logger) *Loader {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Loader{src: src, workers: workers, log: log}
}

type blobResult struct {
	eatery  domain.Eatery
	dropped *DroppedBlob
}

// Load builds the catalog from every blob in the source. Only a failure to
// enumerate the source (or ctx ending) is returned as an error; bad blobs are
// dropped and listed in the report.
func (l *Loader) Load(ctx context.Context) (*domain.Catalog, LoadReport, error) {
	start := time.Now()
	report := LoadReport{Source: l.src.String(), Dropped: []DroppedBlob{}, DuplicateIDs: []uint64{}}

	names, err := l.src.List(ctx)
	if err != nil {
		return nil, report, fmt.Errorf("%w: %s: %v", domain.ErrSourceUnavailable, l.src, err)
	}
	report.Seen = len(names)

	// one slot per blob keeps the pre-sort order equal to enumeration order
	results := make([]blobResult, len(names))
	sem := semaphore.NewWeighted(int64(l.workers))
	var wg sync.WaitGroup

	for i, name := range names {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, report, err
		}

		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = l.loadOne(ctx, name)
		}(i, name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, report, err
	}

	eateries := make([]domain.Eatery, 0, len(results))
	for _, r := range results {
		if r.dropped != nil {
			report.Dropped = append(report.Dropped, *r.dropped)
			observability.ObserveDropped(r.dropped.Reason)
			l.log.Warn().
				Str("source", report.Source).
				Str("blob", r.dropped.Name).
				Str("reason", r.dropped.Reason).
				Str("error", r.dropped.Error).
				Msg("blob dropped")
			continue
		}
		eateries = append(eateries, r.eatery)
	}

	cat := domain.NewCatalog(eateries)
	report.Loaded = cat.Len()
	report.Version = cat.Version()
	report.DuplicateIDs = append(report.DuplicateIDs, cat.DuplicateIDs()...)
	report.Duration = time.Since(start)

	for _, id := range report.DuplicateIDs {
		l.log.Warn().Uint64("id", id).Msg("duplicate eatery id; lookups return the first enumerated")
	}
	observability.SetCatalogRecords(cat.Len())

	l.log.Info().
		Str("source", report.Source).
		Int("seen", report.Seen).
		Int("loaded", report.Loaded).
		Int("dropped", len(report.Dropped)).
		Str("version", report.Version).
		Dur("duration", report.Duration).
		Msg("catalog loaded")

	return cat, report, nil
}

func (l *Loader) loadOne(ctx context.Context, name string) blobResult {
	b, err := l.src.Read(ctx, name)
	if err != nil {
		return blobResult{dropped: &DroppedBlob{Name: name, Reason: ReasonRead, Error: err.Error()}}
	}
	e, err := ParseEatery(b)
	if err != nil {
		return blobResult{dropped: &DroppedBlob{Name: name, Reason: ReasonMalformed, Error: err.Error()}}
	}
	return blobResult{eatery: e}
}
