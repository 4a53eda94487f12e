// Package logger provides the process-wide structured logger.
package logger

// Logger defines the logging interface.
//
// A call of the form Info("message", "key", value, ...) is logged as a message
// with key/value attributes. Any other argument list is joined into one message.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
