package concolic

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Session is the explicit, threadable form of the engine's process-wide
// state: the label registry (C1), the variable registry, the shutdown
// gate, and a shared monotonic timestamp counter for Constraint ordering.
// Design Notes §9 directs that this state be encapsulated in an explicit
// Session rather than left as bare package globals, with a process-wide
// Default() Session offered only as a thin façade for hosts that cannot
// thread state through every comparison site.
type Session struct {
	Labels *LabelRegistry
	Vars   *VariableRegistry

	opts Options
	log  *logrus.Entry

	shuttingDown atomic.Bool
	tsCounter    atomic.Int64

	// threads holds a RecorderContext per opaque thread token, for hosts
	// that call Default() and cannot plumb a context.Context through their
	// instrumentation sites.
	threads sync.Map // string -> *RecorderContext
}

// NewSession constructs a Session with the given options, after validating
// them. An invalid Options value returns a nil Session and an
// InvalidConfigError.
func NewSession(opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		Labels: NewLabelRegistry(),
		Vars:   NewVariableRegistry(),
		opts:   opts,
		log:    newLogger(opts.Debug),
	}, nil
}

// Options returns the session's configuration.
func (s *Session) Options() Options { return s.opts }

// nextTimestamp returns the next value of the session-wide monotonic
// counter used to order Constraint records for diagnostics.
func (s *Session) nextTimestamp() int64 {
	return s.tsCounter.Add(1)
}

// Shutdown flips the process-wide shutting_down flag. Once set, every
// Recorder entry point degrades to the concrete computation with no
// recording (spec.md §5). It is intended to be installed as the host's
// shutdown hook.
func (s *Session) Shutdown() {
	s.shuttingDown.Store(true)
}

// IsShuttingDown reports whether Shutdown has been called.
func (s *Session) IsShuttingDown() bool {
	return s.shuttingDown.Load()
}

// Reset clears session state: registered labels and declared variables.
// Per-thread PC buffers are owned by the caller's RecorderContext and are
// unaffected; call RecorderContext.Reset on each live one if a full reset
// is needed.
func (s *Session) Reset() {
	s.Labels.Clear()
	s.Vars.Clear()
	s.threads.Range(func(key, _ interface{}) bool {
		s.threads.Delete(key)
		return true
	})
}

// AddLabel registers label as symbolic (Symbolicator interface, spec.md §6).
func (s *Session) AddLabel(label string) { s.Labels.Add(label) }

// ClearLabels removes every registered label.
func (s *Session) ClearLabels() { s.Labels.Clear() }

// MakeSymbolicInt declares an integer symbolic variable seeded at seed and
// returns a Tag carrying its name as a label.
func (s *Session) MakeSymbolicInt(name string, seed int64) (Tag, error) {
	return s.makeSymbolic(name, SortInt, seed)
}

// MakeSymbolicReal declares a real symbolic variable.
func (s *Session) MakeSymbolicReal(name string, seed float64) (Tag, error) {
	return s.makeSymbolic(name, SortReal, seed)
}

// MakeSymbolicString declares a string symbolic variable.
func (s *Session) MakeSymbolicString(name string, seed string) (Tag, error) {
	return s.makeSymbolic(name, SortString, seed)
}

func (s *Session) makeSymbolic(name string, sort Sort, seed interface{}) (Tag, error) {
	if err := s.Vars.Declare(name, sort, seed); err != nil {
		return Tag{}, err
	}
	s.AddLabel(name)
	return NewTag().WithLabel(name), nil
}

// NewRecorderContext allocates a fresh per-thread recording context bound
// to this session, with an empty PC buffer and zero reentrancy depth.
func (s *Session) NewRecorderContext() *RecorderContext {
	return &RecorderContext{session: s, pc: NewPathCondition()}
}

// ForThread returns the RecorderContext registered under token, creating
// one if none exists yet. This is the façade path for hosts that cannot
// thread a context.Context through their instrumentation: they obtain a
// token once (e.g. a goroutine-scoped identifier they mint themselves) and
// pass it to every Recorder call instead.
func (s *Session) ForThread(token string) *RecorderContext {
	if rc, ok := s.threads.Load(token); ok {
		return rc.(*RecorderContext)
	}
	rc := s.NewRecorderContext()
	actual, _ := s.threads.LoadOrStore(token, rc)
	return actual.(*RecorderContext)
}

// recorderCtxKey is the context.Context key used by WithRecorder /
// RecorderFromContext.
type recorderCtxKey struct{}

// WithRecorder returns a copy of ctx carrying rc, so that instrumentation
// threaded through context.Context (the idiomatic Go substitute for a true
// OS thread-local) can recover its PC buffer and reentrancy counter without
// a global lookup.
func WithRecorder(ctx context.Context, rc *RecorderContext) context.Context {
	return context.WithValue(ctx, recorderCtxKey{}, rc)
}

// RecorderFromContext recovers the RecorderContext previously attached by
// WithRecorder.
func RecorderFromContext(ctx context.Context) (*RecorderContext, bool) {
	rc, ok := ctx.Value(recorderCtxKey{}).(*RecorderContext)
	return rc, ok
}

var (
	defaultSessionOnce sync.Once
	defaultSession     *Session
)

// Default returns the process-wide default Session, constructed lazily
// with DefaultOptions on first use. It exists purely as the "thin façade"
// Design Notes §9 calls for; new code that can thread a *Session or a
// context.Context explicitly should prefer doing so.
func Default() *Session {
	defaultSessionOnce.Do(func() {
		// DefaultOptions always validates cleanly.
		defaultSession, _ = NewSession(DefaultOptions())
	})
	return defaultSession
}
