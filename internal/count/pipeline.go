// Package count implements the counting pipeline: tokenize the corpus,
// accumulate token frequencies, optionally derive character n-gram
// frequencies, then filter and order both tables.
package count

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	go_iterators "github.com/lezhnev74/go-iterators"
	"go.uber.org/zap"
	"golang.org/x/exp/mmap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"corpus-count/internal/common"
	"corpus-count/internal/freq"
	"corpus-count/internal/ngram"
	"corpus-count/internal/tokenizer"
)

// ctxCheckEvery limits how often the hot counting loops poll for
// cancellation.
const ctxCheckEvery = 1 << 16

// Options configures a counting run.
type Options struct {
	// n-gram lengths in characters
	MinN, MaxN int
	// wrap tokens in "<" and ">" before n-gram extraction
	Bracket bool
	// drop tokens occurring fewer than TokenMin times (zero disables)
	TokenMin uint64
	// drop n-grams occurring fewer than NgramMin times (zero disables)
	NgramMin uint64
	// derive n-grams only from tokens that survived TokenMin,
	// instead of from the unfiltered token table
	FilterFirst bool
	// derive and count n-grams at all
	Ngrams bool
	// number of concurrent counting workers
	Concurrency int
}

// Result carries the ordered inventories of one counting run.
type Result struct {
	// Tokens is ordered by count descending, ties by token ascending.
	Tokens []freq.Entry
	// Ngrams is ordered the same way. It is nil when n-gram counting
	// was not requested.
	Ngrams []freq.Entry
	// TotalTokens is the number of token occurrences in the corpus
	// before any filtering.
	TotalTokens uint64
}

// Pipeline counts token and n-gram frequencies of corpora.
// The same pipeline can run over many corpora, it keeps no per-run state.
type Pipeline struct {
	opts      Options
	extractor ngram.Extractor
	logger    *zap.Logger
}

func NewPipeline(opts Options, logger *zap.Logger) *Pipeline {
	if opts.Concurrency <= 0 {
		panic(fmt.Sprintf("invalid workers count: %d", opts.Concurrency))
	}

	p := &Pipeline{opts: opts, logger: logger}
	if opts.Ngrams {
		p.extractor = ngram.New(opts.MinN, opts.MaxN, opts.Bracket)
	}
	return p
}

// CountReader counts the tokens of a byte stream sequentially.
// This is the stdin path; for file corpora prefer CountFile which reads
// in parallel.
func (p *Pipeline) CountReader(ctx context.Context, r io.Reader) (Result, error) {
	p.logger.Debug("counting launched", zap.String("corpus", "stream"))
	started := time.Now()

	tokens := freq.NewTable()
	it := tokenizer.NewStreamIterator(r)
	defer func() { _ = it.Close() }()

	n := 0
	for {
		token, err := it.Next()
		if err == go_iterators.EmptyIterator {
			break
		}
		if err != nil {
			return Result{}, xerrors.Errorf("read corpus: %w", err)
		}
		tokens.Inc(token)

		if n++; n%ctxCheckEvery == 0 && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}

	p.logger.Debug("tokens counted",
		zap.Int("distinct", tokens.Len()),
		zap.Uint64("total", tokens.Total()),
		zap.Duration("took", time.Since(started)),
	)
	return p.finish(ctx, tokens)
}

// CountFile counts the tokens of a file corpus. The file is mapped into
// memory and split into whitespace-aligned segments that are counted in
// parallel. The result is identical to CountReader over the same bytes for
// any concurrency, as the final ordering does not depend on how counts
// were accumulated.
func (p *Pipeline) CountFile(ctx context.Context, path string) (Result, error) {
	p.logger.Debug("counting launched", zap.String("corpus", path))
	started := time.Now()

	r, err := mmap.Open(path)
	if err != nil {
		return Result{}, xerrors.Errorf("open corpus %s: %w", path, err)
	}
	defer func() { _ = r.Close() }()

	segments := splitAligned(r, r.Len(), p.opts.Concurrency)

	// each segment accumulates into its own table, merged below,
	// so the workers share no state
	tables := make([]*freq.Table, len(segments))
	wg := errgroup.Group{}
	wg.SetLimit(p.opts.Concurrency)
	for i, segment := range segments {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			buf := make([]byte, segment.Len())
			if _, rerr := r.ReadAt(buf, int64(segment.From)); rerr != nil {
				return xerrors.Errorf("read corpus %s: %w", path, rerr)
			}

			t := freq.NewTable()
			for token := range tokenizer.Tokens(buf) {
				t.Inc(token)
			}
			tables[i] = t
			return nil
		})
	}
	if err = wg.Wait(); err != nil {
		return Result{}, err
	}

	tokens := freq.NewTable()
	for _, t := range tables {
		tokens.Merge(t)
	}

	p.logger.Debug("tokens counted",
		zap.Int("distinct", tokens.Len()),
		zap.Uint64("total", tokens.Total()),
		zap.Int("segments", len(segments)),
		zap.Duration("took", time.Since(started)),
	)
	return p.finish(ctx, tokens)
}

// finish runs the filtering and n-gram phases over the accumulated token
// table and renders both inventories.
func (p *Pipeline) finish(ctx context.Context, tokens *freq.Table) (Result, error) {
	res := Result{TotalTokens: tokens.Total()}

	// 1. filter the token table
	survivors := tokens.Filter(p.opts.TokenMin)

	// 2. derive n-grams from the requested table
	if p.opts.Ngrams {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		source := tokens
		if p.opts.FilterFirst {
			source = survivors
		}

		started := time.Now()
		ngrams := p.ngramTable(source)
		p.logger.Debug("ngrams counted",
			zap.Int("distinct", ngrams.Len()),
			zap.Duration("took", time.Since(started)),
		)

		res.Ngrams = ngrams.Filter(p.opts.NgramMin).Sorted()
	}

	// 3. order the surviving tokens
	res.Tokens = survivors.Sorted()

	if rss, err := common.ResidentMemory(); err == nil {
		p.logger.Debug("memory", zap.Uint64("rss_mb", rss/1024/1024))
	}
	return res, nil
}

// ngramTable derives n-gram counts from the distinct tokens of source.
// Extracting from a distinct token once and weighing by its count is the
// same as extracting from every corpus occurrence.
func (p *Pipeline) ngramTable(source *freq.Table) *freq.Table {
	chunks := common.ChunksN(source.Entries(), p.opts.Concurrency)

	// extraction is cpu intensive, so run in parallel
	tables := make([]*freq.Table, len(chunks))
	wg := sync.WaitGroup{}
	wg.Add(len(chunks))
	for i, chunk := range chunks {
		go func() {
			defer wg.Done()
			t := freq.NewTable()
			for _, e := range chunk {
				for g := range p.extractor.Extract(e.Item) {
					t.Add(g, e.Count)
				}
			}
			tables[i] = t
		}()
	}
	wg.Wait()

	ngrams := freq.NewTable()
	for _, t := range tables {
		ngrams.Merge(t)
	}
	return ngrams
}
