// Package logging builds the logrus logger used for diagnostics on stderr.
// Level and format come from flags, falling back to LOG_LEVEL and LOG_FORMAT.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultLevel = logrus.WarnLevel

type Options struct {
	Level  string // empty: LOG_LEVEL, then warn
	Format string // text | json; empty: LOG_FORMAT, then text
	Out    io.Writer
	Quiet  bool // only errors, regardless of Level

	Getenv func(string) string // nil: os.Getenv
}

// New returns a configured logger. An explicit but unparseable Level or Format
// is an error; a bad environment value falls back to the default.
func New(o Options) (*logrus.Logger, error) {
	getenv := o.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	log := logrus.New()
	if o.Out != nil {
		log.SetOutput(o.Out)
	} else {
		log.SetOutput(os.Stderr)
	}

	level := DefaultLevel
	if o.Level != "" {
		l, err := logrus.ParseLevel(o.Level)
		if err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		level = l
	} else if env := getenv("LOG_LEVEL"); env != "" {
		if l, err := logrus.ParseLevel(env); err == nil {
			level = l
		}
	}
	if o.Quiet {
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)

	format := strings.ToLower(o.Format)
	if format == "" {
		format = strings.ToLower(getenv("LOG_FORMAT"))
	}
	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	default:
		if o.Format != "" {
			return nil, fmt.Errorf("--log-format: unknown format %q (want text or json)", o.Format)
		}
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
	return log, nil
}
