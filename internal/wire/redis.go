// Package wire provides the Redis connection behind the loader's ServerLink
// capability. A single synchronous connection is used for the whole session;
// the bulk command's payload arguments are raw bytes and pass through
// radix's flattening untouched.
package wire

import (
	"fmt"
	"time"

	"github.com/mediocregopher/radix/v3"
)

// Conn wraps one Redis connection.
type Conn struct {
	conn radix.Conn
}

// Dial connects to host:port, authenticating when password is non-empty.
func Dial(host string, port int, password string) (*Conn, error) {
	opts := []radix.DialOpt{
		// Bulk payload tokens can take a while to transfer and apply.
		radix.DialReadTimeout(5 * time.Minute),
	}
	if password != "" {
		opts = append(opts, radix.DialAuthPass(password))
	}
	conn, err := radix.Dial("tcp", fmt.Sprintf("%s:%d", host, port), opts...)
	if err != nil {
		return nil, fmt.Errorf("wire: dial %s:%d: %w", host, port, err)
	}
	return &Conn{conn: conn}, nil
}

// Send issues one command and decodes the reply into rcv. Arguments other
// than strings and []byte are flattened by radix into their string forms.
func (c *Conn) Send(rcv interface{}, cmd, key string, args ...interface{}) error {
	if len(args) == 0 {
		return c.conn.Do(radix.Cmd(rcv, cmd, key))
	}
	return c.conn.Do(radix.FlatCmd(rcv, cmd, key, args...))
}

// Close releases the connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}
