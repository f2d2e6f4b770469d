// Package debug provides global debug print flags
package debug

import "fmt"

// Enabled controls whether debug logging is active
var Enabled bool

// Hearing controls whether per-capture microphone logs are shown (every
// utterance, empty captures, wake misses). Far too chatty for normal
// debug runs; enable with --debug-hearing.
var Hearing bool

// Log prints a message only if debug mode is enabled
func Log(format string, args ...interface{}) {
	if Enabled {
		fmt.Printf(format, args...)
	}
}

// HearLog prints a message only if hearing debug mode is enabled
func HearLog(format string, args ...interface{}) {
	if Hearing {
		fmt.Printf(format, args...)
	}
}
