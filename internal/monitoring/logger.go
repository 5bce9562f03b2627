package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf emits verbose per-trial diagnostics. It is a no-op unless enabled
// with SetDebug; batch runs over hundreds of trials are noisy otherwise.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug routes Debugf through the current Logf when on, or mutes it.
func SetDebug(on bool) {
	if on {
		Debugf = func(format string, v ...interface{}) { Logf(format, v...) }
		return
	}
	Debugf = func(string, ...interface{}) {}
}
