package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"corpus-count/internal/count"
	"corpus-count/internal/freq"
)

// App runs one counting job: it owns the endpoints (the corpus on one
// side, the count inventories on the other) and hands the bytes in
// between to the counting pipeline.
type App struct {
	cfg    Config
	logger *zap.Logger
}

func NewApp(cfg Config, logger *zap.Logger) *App {
	return &App{cfg: cfg, logger: logger}
}

func (a *App) Run(ctx context.Context) error {
	pipeline := count.NewPipeline(count.Options{
		MinN:        a.cfg.MinN,
		MaxN:        a.cfg.MaxN,
		Bracket:     !a.cfg.NoBracket,
		TokenMin:    uint64(a.cfg.TokenMin),
		NgramMin:    uint64(a.cfg.NgramMin),
		FilterFirst: a.cfg.FilterFirst,
		Ngrams:      a.cfg.NgramCounts != "",
		Concurrency: a.cfg.Concurrency,
	}, a.logger)

	var (
		res count.Result
		err error
	)
	if isStdio(a.cfg.Corpus) {
		res, err = pipeline.CountReader(ctx, os.Stdin)
	} else {
		res, err = pipeline.CountFile(ctx, a.cfg.Corpus)
	}
	if err != nil {
		return err
	}

	if err = writeCounts(a.cfg.TokenCounts, res.Tokens); err != nil {
		return xerrors.Errorf("token counts: %w", err)
	}
	if a.cfg.NgramCounts != "" {
		if err = writeCounts(a.cfg.NgramCounts, res.Ngrams); err != nil {
			return xerrors.Errorf("ngram counts: %w", err)
		}
	}
	return nil
}

// isStdio reports whether path selects a standard stream rather than a file.
func isStdio(path string) bool { return path == "" || path == "-" }

// writeCounts emits one "item<TAB>count" line per entry, in the order given.
// Stdout is flushed but never closed, files are created (or truncated) and
// closed.
func writeCounts(dst string, entries []freq.Entry) (err error) {
	name := "stdout"
	var out io.Writer = os.Stdout

	if !isStdio(dst) {
		name = dst
		f, ferr := os.Create(dst)
		if ferr != nil {
			return xerrors.Errorf("create %s: %w", dst, ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = xerrors.Errorf("close %s: %w", dst, cerr)
			}
		}()
		out = f
	}

	w := bufio.NewWriter(out)
	for _, e := range entries {
		if _, werr := fmt.Fprintf(w, "%s\t%d\n", e.Item, e.Count); werr != nil {
			return xerrors.Errorf("write %s: %w", name, werr)
		}
	}
	if werr := w.Flush(); werr != nil {
		return xerrors.Errorf("write %s: %w", name, werr)
	}
	return nil
}
