package logme

import (
	"fmt"
	"io"
	"os"
)

var isDebugMode bool = os.Getenv("DEBUG") == "1"

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetDebug turns debug output on or off regardless of the DEBUG env var.
func SetDebug(enabled bool) {
	isDebugMode = enabled
}

func DebugF(msg string, args ...interface{}) {
	// check if ENV DEBUG is 1
	if isDebugMode {
		fmt.Fprint(stderr, "[DEBUG] ")
		fmt.Fprintf(stderr, msg, args...)
	}
}

func DebugFln(msg string, args ...interface{}) {
	DebugF(msg+"\n", args...)
}

func Debugln(args ...interface{}) {
	// check if ENV DEBUG is 1
	if isDebugMode {
		fmt.Fprint(stderr, "[DEBUG] ")
		fmt.Fprintln(stderr, args...)
	}
}

func InfoF(msg string, args ...interface{}) {
	fmt.Fprintf(stdout, msg, args...)
}

func Infoln(arg ...interface{}) {
	fmt.Fprintln(stdout, arg...)
}

func ErrorF(msg string, args ...interface{}) {
	fmt.Fprintf(stderr, msg, args...)
}

func Errorln(arg ...interface{}) {
	fmt.Fprintln(stderr, arg...)
}
