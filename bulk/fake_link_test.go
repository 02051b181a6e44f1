package bulk

import (
	"encoding/binary"
	"errors"
	"testing"
)

// fakeLink records every command instead of talking to a server.
type fakeLink struct {
	existing map[string]bool
	batches  [][]interface{} // args of each GRAPH.BULK call, key excluded
	queries  []string        // GRAPH.QUERY query strings
	failOn   string          // command name that returns an error
}

func (f *fakeLink) Send(rcv interface{}, cmd, key string, args ...interface{}) error {
	if f.failOn != "" && f.failOn == cmd {
		return errors.New("server refused " + cmd)
	}
	switch cmd {
	case "EXISTS":
		if p, ok := rcv.(*int); ok {
			if f.existing[key] {
				*p = 1
			} else {
				*p = 0
			}
		}
	case "GRAPH.BULK":
		f.batches = append(f.batches, append([]interface{}(nil), args...))
		if p, ok := rcv.(*string); ok {
			*p = "OK"
		}
	case "GRAPH.QUERY":
		f.queries = append(f.queries, args[0].(string))
	}
	return nil
}

// batchMeta unpacks the fixed leading arguments of a recorded batch.
func batchMeta(t *testing.T, args []interface{}) (nodes, relations, labels, types int, phase string) {
	t.Helper()
	if len(args) < 5 {
		t.Fatalf("batch has %d args, want at least 5", len(args))
	}
	return args[0].(int), args[1].(int), args[2].(int), args[3].(int), args[4].(string)
}

// splitToken separates a payload token into its header fields and the raw
// record bytes.
func splitToken(t *testing.T, token []byte) (name string, props []string, records []byte) {
	t.Helper()
	i := indexNUL(t, token, 0)
	name = string(token[:i])
	pos := i + 1
	count := int(binary.LittleEndian.Uint32(token[pos : pos+4]))
	pos += 4
	for n := 0; n < count; n++ {
		j := indexNUL(t, token, pos)
		props = append(props, string(token[pos:j]))
		pos = j + 1
	}
	return name, props, token[pos:]
}

func indexNUL(t *testing.T, b []byte, from int) int {
	t.Helper()
	for i := from; i < len(b); i++ {
		if b[i] == 0 {
			return i
		}
	}
	t.Fatal("no NUL terminator found")
	return -1
}

// mergeRecords concatenates the record bytes of every token named name
// across all recorded batches, in send order.
func mergeRecords(t *testing.T, batches [][]interface{}, name string) []byte {
	t.Helper()
	var out []byte
	for _, args := range batches {
		for _, a := range args[5:] {
			tok, ok := a.([]byte)
			if !ok {
				t.Fatalf("payload arg is %T, want []byte", a)
			}
			n, _, records := splitToken(t, tok)
			if n == name {
				out = append(out, records...)
			}
		}
	}
	return out
}
