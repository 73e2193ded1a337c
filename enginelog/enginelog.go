// Package enginelog is the shared structured-logging entry point for the
// battle engine's internal packages (battle, manager, events), wrapping
// logrus the way opd-ai-goldbox-rpg wires its own engine-internal logger
// instead of bare log.Printf calls.
package enginelog

import "github.com/sirupsen/logrus"

// New builds a logrus.Logger with the engine's default JSON formatter and
// the given level. Callers that already hold a configured *logrus.Logger
// (e.g. an embedding application's own logger) should pass that in directly
// to battle.NewContext/events.New instead of calling this.
func New(level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

// Default builds a logger at Info level, used wherever a caller passes nil
// for an optional *logrus.Logger parameter.
func Default() *logrus.Logger {
	return New(logrus.InfoLevel)
}

// Fields is a shorthand alias for the field map every engine log line is
// built from: unit/action/battle ids, never free-form interpolated strings.
type Fields = logrus.Fields
