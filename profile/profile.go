package profile

// Session is a running profile. Stop flushes the profile data and is safe to
// call on a Session that never started.
type Session interface{ Stop() }

// Settings select the profile to record.
type Settings struct {
	// Mode is one of [Modes]. An empty or unknown mode records nothing.
	Mode string
	// Dir receives the profile file. Empty means the working directory.
	Dir string
	// Quiet suppresses the profiler's own start and stop messages.
	Quiet bool
}

// Start begins recording the profile described by s.
func Start(s Settings) Session {
	if s.Mode == "" {
		return nop{}
	}

	return start(s)
}

type nop struct{}

func (nop) Stop() {}
