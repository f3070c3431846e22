package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/ontograph/pkg/ontology"
)

// Snapshot maps collection names to their records.
//
//	value_chains:
//	  - code: VC1
//	    name: Order to Cash
//	relationships:
//	  - from_code: M1
//	    to_code: VC1
//	    relationship_type: belongs_to
type Snapshot map[string][]Record

// ReadSnapshot decodes a snapshot. format is "json" or "yaml".
func ReadSnapshot(r io.Reader, format string) (Snapshot, error) {
	var snap Snapshot
	switch format {
	case "json":
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// FileSource serves collections from a snapshot loaded into memory.
type FileSource struct {
	name string
	snap Snapshot
}

// OpenFile reads a snapshot file. The format is chosen by extension:
// .json is JSON, anything else is YAML.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	snap, err := ReadSnapshot(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewSnapshotSource(snap), nil
}

// NewSnapshotSource serves an in-memory snapshot.
func NewSnapshotSource(snap Snapshot) *FileSource {
	return &FileSource{name: "file", snap: snap}
}

// Name returns "file".
func (s *FileSource) Name() string { return s.name }

// Nodes returns the snapshot's records for kind. A collection absent from
// the snapshot is [ErrNotFound].
func (s *FileSource) Nodes(ctx context.Context, kind ontology.Kind, limit int) ([]ontology.Node, error) {
	recs, err := s.records(ctx, Collection(kind), limit)
	if err != nil {
		return nil, err
	}
	return decodeNodes(kind, recs), nil
}

// Relationships returns the snapshot's relationship records.
func (s *FileSource) Relationships(ctx context.Context, limit int) ([]ontology.Edge, error) {
	recs, err := s.records(ctx, Relationships, limit)
	if err != nil {
		return nil, err
	}
	return decodeEdges(recs), nil
}

func (s *FileSource) records(ctx context.Context, collection string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, ok := s.snap[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, collection)
	}
	return truncate(recs, limit), nil
}
