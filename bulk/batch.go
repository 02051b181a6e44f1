package bulk

import (
	"bytes"
	"fmt"

	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/format"
	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/logger"
)

// Phase tokens tell the server where a batch sits in the session. The final
// flush always carries PhaseEnd; the first of several batches carries
// PhaseBegin.
const (
	PhaseBegin = "BEGIN"
	PhaseMid   = "MID"
	PhaseEnd   = "END"
)

type groupKind int

const (
	labelGroup groupKind = iota
	typeGroup
)

// group accumulates the encoded records of one label or relationship type
// within the open batch. The header is re-sent with every batch the group
// appears in, so a partial emission stays self-describing.
type group struct {
	name   string
	header []byte
	buf    []byte
}

func (g *group) token() []byte {
	tok := make([]byte, 0, len(g.header)+len(g.buf))
	tok = append(tok, g.header...)
	return append(tok, g.buf...)
}

// BatchBuilder packs encoded records into server commands. It flushes before
// an append once the open batch has reached the configured token ceiling, or
// when the append would push a token past the per-token byte cap, and is
// reset after every flush; identifier state lives outside it and is
// untouched by flushing.
type BatchBuilder struct {
	link  ServerLink
	graph string

	maxTokens int
	byteCap   int

	labels []*group
	types  []*group
	byName [2]map[string]*group

	nodesInBatch     int
	relationsInBatch int

	sent int
}

// NewBatchBuilder returns a builder targeting graph over link. maxTokens
// bounds the payload arguments per command.
func NewBatchBuilder(link ServerLink, graph string, maxTokens int) *BatchBuilder {
	b := &BatchBuilder{
		link:      link,
		graph:     graph,
		maxTokens: maxTokens,
		byteCap:   maxTokenBytes,
	}
	b.reset()
	return b
}

func (b *BatchBuilder) reset() {
	b.labels = nil
	b.types = nil
	b.byName[labelGroup] = make(map[string]*group)
	b.byName[typeGroup] = make(map[string]*group)
	b.nodesInBatch = 0
	b.relationsInBatch = 0
}

func (b *BatchBuilder) tokens() int {
	return len(b.labels) + len(b.types)
}

func (b *BatchBuilder) empty() bool {
	return b.tokens() == 0
}

// AppendNode adds one encoded node record under label.
func (b *BatchBuilder) AppendNode(label string, props []string, record []byte) error {
	if err := b.append(labelGroup, label, props, record); err != nil {
		return err
	}
	b.nodesInBatch++
	return nil
}

// AppendRelation adds one encoded relationship record under typeName.
func (b *BatchBuilder) AppendRelation(typeName string, props []string, record []byte) error {
	if err := b.append(typeGroup, typeName, props, record); err != nil {
		return err
	}
	b.relationsInBatch++
	return nil
}

func (b *BatchBuilder) append(kind groupKind, name string, props []string, record []byte) error {
	// The ceiling counts payload tokens per command. Once the open batch
	// carries that many, it goes out before anything else is added; a
	// ceiling of 1 therefore degenerates to one record per command.
	if !b.empty() && b.tokens() >= b.maxTokens {
		if err := b.Flush(false); err != nil {
			return err
		}
	}

	g, err := b.group(kind, name, props)
	if err != nil {
		return err
	}
	if len(g.header)+len(g.buf)+len(record) > b.byteCap {
		if err := b.Flush(false); err != nil {
			return err
		}
		if g, err = b.group(kind, name, props); err != nil {
			return err
		}
		if len(g.header)+len(record) > b.byteCap {
			return fmt.Errorf("encoded record for '%s' (%d bytes) exceeds the %d-byte batch payload limit",
				name, len(record), b.byteCap)
		}
	}
	g.buf = append(g.buf, record...)
	return nil
}

// group returns the open batch's group for name, creating it (header
// included) on first use. A header change for an existing name (two files
// feeding the same label with different property sets) seals the batch
// first so every token stays internally consistent.
func (b *BatchBuilder) group(kind groupKind, name string, props []string) (*group, error) {
	if g, ok := b.byName[kind][name]; ok {
		header, err := format.GroupHeader(name, props)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(g.header, header) {
			return g, nil
		}
		if err := b.Flush(false); err != nil {
			return nil, err
		}
	}

	header, err := format.GroupHeader(name, props)
	if err != nil {
		return nil, err
	}
	g := &group{name: name, header: header}
	b.byName[kind][name] = g
	if kind == labelGroup {
		b.labels = append(b.labels, g)
	} else {
		b.types = append(b.types, g)
	}
	return g, nil
}

// Flush sends the open batch and resets the builder. The session forces the
// final flush with final=true, which is always sent, even empty, so the
// server sees the terminal marker (and creates the graph on an input-less
// run). Non-final flushes of an empty batch are no-ops.
func (b *BatchBuilder) Flush(final bool) error {
	if b.empty() && !final {
		return nil
	}

	phase := PhaseMid
	switch {
	case final:
		phase = PhaseEnd
	case b.sent == 0:
		phase = PhaseBegin
	}

	args := make([]interface{}, 0, 5+b.tokens())
	args = append(args,
		b.nodesInBatch,
		b.relationsInBatch,
		len(b.labels),
		len(b.types),
		phase,
	)
	for _, g := range b.labels {
		args = append(args, g.token())
	}
	for _, g := range b.types {
		args = append(args, g.token())
	}

	var reply string
	if err := b.link.Send(&reply, "GRAPH.BULK", b.graph, args...); err != nil {
		return err
	}
	logger.L.Debug("batch sent",
		"graph", b.graph,
		"phase", phase,
		"nodes", b.nodesInBatch,
		"relations", b.relationsInBatch,
		"tokens", b.tokens(),
		"reply", reply)

	b.sent++
	b.reset()
	return nil
}
