// Package monitoring holds the process-wide log sinks.
package monitoring

import "log"

// Logf is the diagnostic logger used by the planner adapters and the
// HTTP server. It defaults to log.Printf; tests redirect or mute it with
// SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// Opsf receives operator-facing lines such as the listen address or the
// files a command wrote. It defaults to log.Printf as well.
var Opsf func(format string, v ...interface{}) = log.Printf

func noop(string, ...interface{}) {}

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = noop
		return
	}
	Logf = f
}

// SetOpsLogger replaces Opsf. Passing nil installs a no-op logger.
func SetOpsLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Opsf = noop
		return
	}
	Opsf = f
}
