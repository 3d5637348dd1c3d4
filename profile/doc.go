// Package profile provides optional runtime profiling for the rapture
// interpreter.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only when the
// "pprof" build tag is set:
//
//	go build -tags pprof .
//
// Without the tag, [Start] returns a [Session] whose Stop method does
// nothing, and [Modes] reports no modes.
//
// # Modes
//
// A build with the tag supports the modes allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace. Profile data is written to
// the configured directory using the mode as file name, such as cpu.pprof.
//
//	rapture --pprof-mode cpu --pprof-dir ./profiles run fib.rap
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The tagged build also imports [net/http/pprof], so an embedding program that
// serves HTTP exposes the usual /debug/pprof/ endpoints.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
