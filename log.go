package ppapi

import (
	"fmt"
	"os"
	"sync"
)

// LogLevel represents host console log levels.
type LogLevel int32

const (
	LogLevelTip     LogLevel = 0 // Informational hint
	LogLevelLog     LogLevel = 1 // Normal log message
	LogLevelWarning LogLevel = 2 // Something unexpected but recoverable
	LogLevelError   LogLevel = 3 // Something went wrong
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelTip:
		return "tip"
	case LogLevelLog:
		return "log"
	case LogLevelWarning:
		return "warning"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// LogCallback receives each console message.
// level is the log level, message the formatted message.
type LogCallback func(level LogLevel, message string)

var (
	logCallbackMu sync.Mutex
	logCallback   LogCallback
)

// SetLogCallback sets a custom handler for console messages.
// Pass nil to restore the default behavior of writing to stderr.
func SetLogCallback(cb LogCallback) {
	logCallbackMu.Lock()
	defer logCallbackMu.Unlock()
	logCallback = cb
}

// Logf formats a message and delivers it to the console sink.
func Logf(level LogLevel, format string, args ...any) {
	logCallbackMu.Lock()
	cb := logCallback
	logCallbackMu.Unlock()

	msg := fmt.Sprintf(format, args...)
	if cb != nil {
		cb(level, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "ppapi [%s] %s\n", level, msg)
}
