package panicerr

// Recover runs f on its own goroutine and turns any abnormal exit —
// a panic, or a bare runtime.Goexit — into a non-nil error return
// instead of taking down the caller. name identifies the call site in
// the resulting error, since a recovered panic value alone rarely says
// where it came from.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1) // buffered: the deferred sends must never block
	go func() {
		defer close(errch)
		defer recoverExitError(name, errch)
		defer recoverPanicError(name, errch)
		errch <- f()
	}()
	return <-errch
}
