package bulk

// ServerLink is the capability the loader needs from the Redis connection:
// send one command synchronously and decode the reply into rcv. The batch
// payload arguments are raw bytes, so implementations must be 8-bit clean.
//
// Server-side failures are returned untransformed; the session aborts on the
// first one.
type ServerLink interface {
	Send(rcv interface{}, cmd, key string, args ...interface{}) error
}
