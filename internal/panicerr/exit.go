package panicerr

import (
	"errors"
	"fmt"
)

func recoverExitError(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// the happy path already sent a (maybe nil) result; don't block
	}
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}
