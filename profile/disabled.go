//go:build !pprof

package profile

// Modes is empty without the pprof build tag.
func Modes() []string { return nil }

func start(Settings) Session { return nop{} }
