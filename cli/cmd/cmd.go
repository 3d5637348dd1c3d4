package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or "" if there is none.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

type streamsKey struct{}

// Streams are the standard streams used by a command. Programs read input
// statements from In and write output statements to Out. Errors are reported
// to Err.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStreams returns a new context.Context whose commands use s in place of
// the process's standard streams. Nil members keep their default.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

func streamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

// source is the text of one program file.
type source struct {
	name string
	text string
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// loadSources reads the named program files in order. Names are resolved
// against the search path. A file named more than once, whether through a
// symlink or a different relative path, is read only the first time. All
// occurrences of "-" collapse into a single read of stdin, placed last.
func loadSources(
	ctx context.Context,
	names []string,
	search []string,
) ([]source, error) {
	srcs := make([]source, 0, len(names))
	seen := make(map[fileKey]struct{})
	hasStdin := false

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path, err := locate(name, search)
		if err != nil {
			return nil, err
		}

		text, ok, err := readUniqueFile(path, seen)
		if err != nil {
			return nil, ErrReadSource.
				With(slog.String("file", name)).
				Wrap(err)
		}

		if !ok {
			continue
		}

		srcs = append(srcs, source{name: path, text: text})
	}

	if hasStdin {
		data, err := io.ReadAll(streamsFrom(ctx).In)
		if err != nil {
			return nil, ErrReadSource.
				With(slog.String("file", stdinSource)).
				Wrap(err)
		}

		srcs = append(srcs, source{name: "<stdin>", text: string(data)})
	}

	return srcs, nil
}

// readUniqueFile reads the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates.
// It reports false without error if the file is a duplicate.
func readUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (string, bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return "", false, nil
		}

		seen[key] = struct{}{}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", false, err
	}

	return string(data), true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
