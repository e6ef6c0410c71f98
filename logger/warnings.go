package logger

import (
	"strings"
	"sync"

	"github.com/dennwc/genbind/errors"
)

// Warning is a category of optional generator warnings selected with -W.
type Warning uint

const (
	// WarnUnimplemented reports WebIDL constructs the map does not model,
	// such as anonymous special operations.
	WarnUnimplemented Warning = 1 << iota
	// WarnDuplicated reports names declared more than once where that is
	// tolerated, such as repeated includes statements.
	WarnDuplicated

	WarnNone Warning = 0
	WarnAll          = WarnUnimplemented | WarnDuplicated
)

var warningNames = map[string]Warning{
	"unimplemented": WarnUnimplemented,
	"duplicated":    WarnDuplicated,
	"all":           WarnAll,
	"none":          WarnNone,
}

// ParseWarnings parses a comma separated list of warning category names.
func ParseWarnings(s string) (Warning, error) {
	var w Warning
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		v, ok := warningNames[name]
		if !ok {
			return WarnNone, errors.WithHint(
				errors.Newf("unknown warning category %q", name),
				"valid categories are: unimplemented, duplicated, all, none",
			)
		}
		w |= v
	}
	return w, nil
}

var (
	enabledMu sync.RWMutex
	enabled   Warning
)

// EnableWarnings sets the warning categories that WarnIf reports.
func EnableWarnings(w Warning) {
	enabledMu.Lock()
	enabled = w
	enabledMu.Unlock()
}

// WarningEnabled reports whether the category is enabled.
func WarningEnabled(w Warning) bool {
	enabledMu.RLock()
	defer enabledMu.RUnlock()
	return enabled&w != 0
}

// WarnIf logs a warning only when the category is enabled; otherwise the
// message goes to debug level.
func WarnIf(w Warning, msg string, keysAndValues ...interface{}) {
	if WarningEnabled(w) {
		Warnw(msg, keysAndValues...)
		return
	}
	Debugw(msg, keysAndValues...)
}
