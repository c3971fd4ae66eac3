package aggregator

import (
	"context"
	"errors"
	"log"
	"sort"

	"certhub/models/certificate"
	"certhub/utils"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidNationalID rejects lookups whose input does not normalize to an
// 11-digit national ID.
var ErrInvalidNationalID = errors.New("national id must contain 11 digits")

// Source is one backing certificate store. Implementations receive the
// digits-only national ID and are responsible for whatever display format
// their own schema expects.
type Source interface {
	Name() string
	FetchByNationalID(ctx context.Context, nationalID string) ([]certificate.CanonicalCertificate, error)
}

// SearchResult is one page of the merged certificate set. Degraded is set
// when at least one source lookup failed and contributed nothing; the
// search still answers from the sources that did respond.
type SearchResult struct {
	Records  []certificate.CanonicalCertificate `json:"records"`
	HasMore  bool                               `json:"has_more"`
	Degraded bool                               `json:"degraded"`
}

// Aggregator answers public certificate lookups by fanning a national-ID
// query out to every backing store, reconciling the results into the
// canonical shape and paginating the merged set.
type Aggregator struct {
	sources []Source
	cache   *ResultCache // optional; nil disables caching
}

func New(sources []Source, cache *ResultCache) *Aggregator {
	return &Aggregator{sources: sources, cache: cache}
}

// Search returns one page of certificates for the given national ID.
// Pagination is idempotent: the same offset over an unchanged data set
// returns the identical records.
func (a *Aggregator) Search(ctx context.Context, rawID string, offset, limit int) (*SearchResult, error) {
	nationalID := utils.NormalizeNationalID(rawID)
	if len(nationalID) != utils.NationalIDLength {
		return nil, ErrInvalidNationalID
	}

	merged, degraded := a.fetchMerged(ctx, nationalID)

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 10
	}

	total := len(merged)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	page := merged[start:end]
	return &SearchResult{
		Records:  page,
		HasMore:  offset+len(page) < total,
		Degraded: degraded,
	}, nil
}

// fetchMerged runs the three-way fan-out and joins before merging. All
// sources are always awaited; there is no early return on first result. A
// failed source is treated as empty, logged, and flagged, never fatal: a
// certificate holder with records elsewhere still gets an answer.
func (a *Aggregator) fetchMerged(ctx context.Context, nationalID string) ([]certificate.CanonicalCertificate, bool) {
	if a.cache != nil {
		if cached, ok := a.cache.Get(nationalID); ok {
			return cached, false
		}
	}

	type sourceResult struct {
		records []certificate.CanonicalCertificate
		err     error
	}

	results := make([]sourceResult, len(a.sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			records, err := src.FetchByNationalID(ctx, nationalID)
			results[i] = sourceResult{records: records, err: err}
			return nil // per-source failures degrade, they never cancel siblings
		})
	}
	g.Wait()

	degraded := false
	var merged []certificate.CanonicalCertificate
	for i, res := range results {
		if res.err != nil {
			log.Printf("[SEARCH] source %s unavailable: %v", a.sources[i].Name(), res.err)
			degraded = true
			continue
		}
		merged = append(merged, res.records...)
	}

	sortByCompletionDate(merged)

	if a.cache != nil && !degraded {
		a.cache.Set(nationalID, merged)
	}
	return merged, degraded
}

// sortByCompletionDate orders newest first with nil dates last. The sort is
// stable so records tied on date keep their source-relative order across
// calls, which pagination depends on.
func sortByCompletionDate(records []certificate.CanonicalCertificate) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].CompletionDate, records[j].CompletionDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
