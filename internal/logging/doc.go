// Package logging provides implementations of the ardmeta.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: prefixed lines on stderr, with a warning counter
//   - NullLogger: discards all messages
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
