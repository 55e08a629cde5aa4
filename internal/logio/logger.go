package logio

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Logger implements a leveled logging facility around an output stream.
// Both cmd/smlt and cmd/simpletron construct one over os.Stderr and
// defer a call of os.Exit(log.ExitCode()) so a single Errorf call
// anywhere in a run sets the process exit status.
type Logger struct {
	sync.Mutex
	output   io.WriteCloser
	buf      bytes.Buffer
	exitCode int
}

// SetOutput sets the logger's output stream, closing any prior one.
func (log *Logger) SetOutput(out io.WriteCloser) {
	log.Lock()
	defer log.Unlock()
	if log.output != nil {
		log.output.Close()
	}
	log.output = out
}

// ExitCode returns a code to pass to os.Exit, facilitating "exit non-zero if
// any error log" semantics.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error at "ERROR" level and sets the exit code
// to 2.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Lock()
		defer log.Unlock()
		log.reportError(err)
	}
}

// Errorf is like Printf("ERROR", ...) but additionally retains state so
// that ExitCode() will return non-zero.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	log.printf("ERROR", mess, args...)
	log.exitCode = 1
}

// Printf prints a line to the output stream like "level: message...\n".
// Reports any io error as an "ERROR" level log, and retains similar state for ExitCode().
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.reportError(err)
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) > 0 && b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}

func (log *Logger) reportError(err error) {
	log.printf("ERROR", "%+v", err)
	log.exitCode = 2
}
