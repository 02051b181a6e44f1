package bulk

import (
	"fmt"
	"io"

	"github.com/ostapenkovs/redisgraph-bulk-loader/internal/logger"
)

// NameCount pairs a label or relationship type with its ingested row count.
type NameCount struct {
	Name  string
	Count int
}

// Result is the session summary: totals, per-label and per-type breakdowns,
// and the number of indices created.
type Result struct {
	Nodes     int
	Relations int
	Labels    []NameCount
	Types     []NameCount
	Indices   int
}

// Write prints the report in the order the work happened: per-label lines,
// per-type lines, totals, indices.
func (r *Result) Write(w io.Writer) {
	for _, l := range r.Labels {
		fmt.Fprintf(w, "%d nodes created with label '%s'\n", l.Count, l.Name)
	}
	for _, t := range r.Types {
		fmt.Fprintf(w, "%d relations created for type '%s'\n", t.Count, t.Name)
	}
	fmt.Fprintf(w, "%d nodes created\n", r.Nodes)
	fmt.Fprintf(w, "%d relations created\n", r.Relations)
	if r.Indices > 0 {
		fmt.Fprintf(w, "Indices created: %d\n", r.Indices)
	}
}

// Session owns one bulk load end to end: the identifier map, the batch
// builder, and the strict ordering: all node files, then all relationship
// files, final flush, then index creation.
type Session struct {
	cfg     *Config
	link    ServerLink
	ids     *IDMap
	builder *BatchBuilder
}

// Run executes a whole load session against link and returns the summary.
// Any error aborts immediately; batches already acknowledged by the server
// are not rolled back.
func Run(link ServerLink, cfg *Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:     cfg,
		link:    link,
		builder: NewBatchBuilder(link, cfg.Graph, cfg.MaxTokenCount),
	}
	// Identifiers are only tracked when something will resolve them.
	// Without relationship files, node identifier columns are left
	// unchecked, matching the interactive loader's behavior.
	if len(cfg.Relations) > 0 {
		s.ids = NewIDMap()
	}
	return s.run()
}

func (s *Session) run() (*Result, error) {
	if err := s.refuseExisting(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, spec := range s.cfg.Nodes {
		ef := newNodeFile(spec, s.cfg, s.ids)
		if err := ef.Run(s.builder); err != nil {
			return nil, err
		}
		res.Nodes += ef.Count()
		res.Labels = append(res.Labels, NameCount{Name: spec.Label(), Count: ef.Count()})
	}
	for _, spec := range s.cfg.Relations {
		ef := newRelationFile(spec, s.cfg, s.ids)
		if err := ef.Run(s.builder); err != nil {
			return nil, err
		}
		res.Relations += ef.Count()
		res.Types = append(res.Types, NameCount{Name: spec.Label(), Count: ef.Count()})
	}

	if err := s.builder.Flush(true); err != nil {
		return nil, err
	}

	n, err := s.createIndices()
	if err != nil {
		return nil, err
	}
	res.Indices = n

	logger.L.Info("bulk load complete",
		"graph", s.cfg.Graph,
		"nodes", res.Nodes,
		"relations", res.Relations,
		"indices", res.Indices)
	return res, nil
}

// refuseExisting aborts when the target key already holds a graph. The bulk
// command only populates empty graphs.
func (s *Session) refuseExisting() error {
	var n int
	if err := s.link.Send(&n, "EXISTS", s.cfg.Graph); err != nil {
		return err
	}
	if n != 0 {
		return fmt.Errorf("graph '%s' already exists", s.cfg.Graph)
	}
	return nil
}

// createIndices emits one server round trip per distinct requested index,
// after the data is fully loaded. Repeated LABEL:PROPERTY pairs collapse to
// a single index.
func (s *Session) createIndices() (int, error) {
	seen := make(map[IndexSpec]bool)
	created := 0

	for _, idx := range s.cfg.Indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		q := fmt.Sprintf("CREATE INDEX ON :%s(%s)", idx.Label, idx.Property)
		if err := s.query(q); err != nil {
			return created, err
		}
		created++
	}
	for _, idx := range s.cfg.FullTextIndices {
		key := IndexSpec{Label: idx.Label + ":fulltext", Property: idx.Property}
		if seen[key] {
			continue
		}
		seen[key] = true
		q := fmt.Sprintf("CALL db.idx.fulltext.createNodeIndex('%s', '%s')", idx.Label, idx.Property)
		if err := s.query(q); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Session) query(q string) error {
	var reply interface{}
	logger.L.Debug("index query", "graph", s.cfg.Graph, "query", q)
	return s.link.Send(&reply, "GRAPH.QUERY", s.cfg.Graph, q)
}
