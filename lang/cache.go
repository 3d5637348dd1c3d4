package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by source hash. Parsed trees are
// never mutated after construction, so cached programs are shared freely.
var globalCache sync.Map

// state tracks the parse of one source text.
type state struct {
	once sync.Once
	prog *Program
	err  error
}

// ParseReader parses a program from an io.Reader. The result for a given
// source text is cached after the first parse.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	// Wrap reader with async read-ahead for concurrent I/O.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	o.logger.TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return parseCached(ctx, string(data), o, opts...)
}

// ParseString parses a program from a string, sharing the cache used by
// [ParseReader].
func ParseString(ctx context.Context, src string, opts ...Option) (*Program, error) {
	return parseCached(ctx, src, makeOptions(opts...), opts...)
}

func parseCached(
	ctx context.Context,
	source string,
	o options,
	opts ...Option,
) (*Program, error) {
	sourceHash := xxh3.HashString(source)
	sourceKey := strconv.FormatUint(sourceHash, 36)

	value, cacheHit := globalCache.LoadOrStore(sourceKey, new(state))

	entry, ok := value.(*state)
	if !ok {
		return nil, ErrReadInput.
			With(slog.String("issue", "invalid entry type in cache"))
	}

	o.logger.TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	entry.once.Do(func() {
		entry.prog, entry.err = ParseProgram(ctx, source, opts...)
		if entry.err != nil {
			entry.err = WrapError(entry.err).With(
				slog.Int("source_length", len(source)),
			)
		}
	})

	return entry.prog, entry.err
}

// ClearCache removes all cached programs.
// This is primarily useful for testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
