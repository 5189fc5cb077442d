package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitual/internal/logger"
)

// exit is replaced in tests
var exit = os.Exit

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	fatalTo(os.Stderr, err)
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	fatalTo(os.Stderr, fmt.Errorf(format, args...))
}

func fatalTo(w io.Writer, err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(w, Format(err))
	exit(1)
}
