//go:build pprof

package profile

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestModes(t *testing.T) {
	t.Parallel()

	got := Modes()
	if !slices.IsSorted(got) || !slices.Contains(got, "cpu") || slices.Contains(got, "quiet") {
		t.Errorf("Modes = %v", got)
	}
}

func TestStart_CPU(t *testing.T) {
	dir := t.TempDir()

	s := Start(Settings{Mode: "cpu", Dir: dir, Quiet: true})
	s.Stop()

	if _, err := os.Stat(filepath.Join(dir, "cpu.pprof")); err != nil {
		t.Errorf("profile not written: %v", err)
	}
}
