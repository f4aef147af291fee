package diagram

import "encoding/json"

// Shape type tags drawn by the whiteboard tool palette. The extractor only
// cares about the tag; rendering behavior lives in the editor frontend.
const (
	ShapeDatabase     = "database"
	ShapeServer       = "server"
	ShapeLoadBalancer = "loadBalancer"
	ShapeClient       = "client"
	ShapeCache        = "cache"
	ShapeArrow        = "arrow"
)

// Record discriminants inside a snapshot store.
const (
	recordShape   = "shape"
	recordBinding = "binding"
)

// Record is a single entry in a snapshot's flat record store. Shape records
// carry a shape-type tag and a property mapping; binding records relate an
// arrow (FromID) to a target record (ToID) with a terminal role in Props.
type Record struct {
	ID       string         `json:"id"`
	TypeName string         `json:"typeName"`
	Type     string         `json:"type,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	FromID   string         `json:"fromId,omitempty"`
	ToID     string         `json:"toId,omitempty"`
}

// Snapshot is a point-in-time serialization of a whiteboard document:
// a flat mapping from record id to record.
type Snapshot struct {
	Store map[string]Record `json:"store,omitempty"`
}

// ParseSnapshot decodes a raw snapshot document. Malformed input is not an
// error: the extractor treats it the same as an empty board, so a zero
// Snapshot is returned instead.
func ParseSnapshot(data json.RawMessage) Snapshot {
	var snap Snapshot
	if len(data) == 0 {
		return snap
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}
	}
	return snap
}
