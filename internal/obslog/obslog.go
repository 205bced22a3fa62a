// Package obslog provides the pipeline's optional diagnostic logging. Grounded
// on the teacher's use of github.com/sirupsen/logrus (main/config.go sets
// log.SetLevel/log.SetFormatter on a package logger); here the default logger is
// silenced so the core never writes to stdout/stderr on its own (spec §7), and a
// host may opt in with WithLogger to receive structured diagnostics on its own
// sink.
package obslog

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Discarded returns a *logrus.Logger configured to drop everything, used as the
// zero-value default for Decoder/Encoder builders.
func Discarded() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// StageFields builds the structured fields this package logs with: stage name
// and, where relevant, non-secret metadata. Never include key material, raw
// payload bytes, or plaintext.
func StageFields(stage string) logrus.Fields {
	return logrus.Fields{"stage": stage}
}
