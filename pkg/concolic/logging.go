package concolic

import "github.com/sirupsen/logrus"

// newLogger returns a logrus logger scoped to the "concolic" component,
// silenced down to warnings unless debug is requested — the same
// debug-gated verbosity the spec's "debug" option describes for per-event
// diagnostics.
func newLogger(debug bool) *logrus.Entry {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l.WithField("component", "concolic")
}
