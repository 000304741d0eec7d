package organism

import "errors"

// ErrNoSource: neither a genome nor a feature list was supplied.
var ErrNoSource = errors.New("no gene or features specified")

// ConfigurationError is returned by New for unusable options. It is never
// produced for individual codons; those are dropped and recorded instead.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Reason != "" && e.Err != nil:
		return "organism: " + e.Reason + ": " + e.Err.Error()
	case e.Err != nil:
		return "organism: " + e.Err.Error()
	default:
		return "organism: " + e.Reason
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
