package bellhop

import "errors"

// The three failure kinds are distinct types so callers can tell a bad
// environment apart from a bad file or a failed engine run with errors.As.

// ConfigError reports an invalid environment setting: an unknown key, an
// out-of-range value or an option tag outside its codebook family.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string { return e.Msg }

// FormatError reports a file that does not follow its wire grammar.
type FormatError struct {
	File string
	Msg  string
}

func (e *FormatError) Error() string {
	if e.File == "" {
		return e.Msg
	}
	return e.File + ": " + e.Msg
}

// EngineError carries the fatal-error text captured from a .prt log.
type EngineError struct {
	Base string // working file-name base
	Msg  string
}

func (e *EngineError) Error() string { return e.Msg }

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoEngine     = errors.New("no suitable propagation engine available")
)
