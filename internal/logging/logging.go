// Package logging wraps a package-level logrus logger shared by the
// orchestrator and solvers to report the seed, each division's strategy
// choice, strategy fallbacks, and per-division failures. See
// sirupsen/logrus usage in
// pmurley/go-fantrax's database and auth_client packages, the one
// structured-logging dependency present in the retrieval pack.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Log returns the shared logger.
func Log() *logrus.Logger {
	return log
}

// SetLevel adjusts the shared logger's verbosity, e.g. from a CLI -v flag.
func SetLevel(level logrus.Level) {
	log.SetLevel(level)
}
