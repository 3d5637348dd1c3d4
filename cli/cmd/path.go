package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardnew/mung"

	"github.com/mattmikolay/rapture/pkg"
)

// searchPath returns the directories searched for program files: the include
// directories in order, followed by those listed in the RAPTURE_PATH
// environment variable. Directories that do not exist are dropped, as are
// repeated entries.
func searchPath(include []string) []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(pkg.PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(include...),
		mung.WithFilter(isDir),
	).String()

	var dirs []string

	for dir := range strings.SplitSeq(list, string(os.PathListSeparator)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

// locate resolves a program name to a file path. A name that names an
// existing file is used as is. Otherwise a relative name is tried in each
// search directory, with and without the ".rap" extension.
func locate(name string, search []string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = append(candidates, name+pkg.Extension)
	}

	for _, c := range candidates {
		if isFile(c) {
			return c, nil
		}
	}

	if !filepath.IsAbs(name) {
		for _, dir := range search {
			for _, c := range candidates {
				if path := filepath.Join(dir, c); isFile(path) {
					return path, nil
				}
			}
		}
	}

	return "", ErrSourceNotFound.With(
		slog.String("file", name),
		slog.Any("search", search),
	)
}
