// Package diagram projects whiteboard snapshots onto logical graphs.
// The projection keeps only semantic information: shapes become nodes,
// arrow bindings become directed edges, and visual-only properties are
// stripped so downstream consumers reason about architecture, not layout.
package diagram

// Node is a non-arrow shape reduced to its semantic content.
type Node struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

// Edge is a resolved arrow: From is the shape bound at the arrow's start
// terminal, To the shape bound at its end terminal.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the semantic node/edge projection of a snapshot.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// visualProps lists property keys that only affect rendering and carry no
// architectural meaning. Adding a new visual property is a one-line change.
var visualProps = map[string]struct{}{
	"w":             {},
	"h":             {},
	"color":         {},
	"fill":          {},
	"dash":          {},
	"size":          {},
	"font":          {},
	"align":         {},
	"verticalAlign": {},
	"growY":         {},
	"url":           {},
	"opacity":       {},
}

type arrowTerminals struct {
	start string
	end   string
}

// Extract converts a snapshot into a logical graph. It is total: malformed
// or empty input yields an empty graph, never an error. Node and edge order
// follows store iteration order; no ordering is guaranteed.
func Extract(snapshot Snapshot) Graph {
	graph := Graph{
		Nodes: []Node{},
		Edges: []Edge{},
	}
	if len(snapshot.Store) == 0 {
		return graph
	}

	// Arrows resolve to edges through their bindings: one binding per
	// terminal, keyed by the owning arrow id.
	arrows := make(map[string]arrowTerminals)

	for _, record := range snapshot.Store {
		switch record.TypeName {
		case recordShape:
			if record.Type == ShapeArrow {
				continue
			}
			shapeType := record.Type
			if shapeType == "" {
				shapeType = "unknown"
			}
			graph.Nodes = append(graph.Nodes, Node{
				ID:    record.ID,
				Type:  shapeType,
				Props: semanticProps(record.Props),
			})
		case recordBinding:
			if record.FromID == "" || record.ToID == "" {
				continue
			}
			terminals := arrows[record.FromID]
			switch terminal(record.Props) {
			case "start":
				terminals.start = record.ToID
			case "end":
				terminals.end = record.ToID
			}
			arrows[record.FromID] = terminals
		}
	}

	// An edge exists only when both terminals resolved. A single resolved
	// terminal is a legitimate in-progress drawing state, not an error.
	// Endpoints pointing at ids outside the node set are passed through.
	for _, terminals := range arrows {
		if terminals.start == "" || terminals.end == "" {
			continue
		}
		graph.Edges = append(graph.Edges, Edge{
			From: terminals.start,
			To:   terminals.end,
		})
	}

	return graph
}

// NodeTypes returns the distinct shape types present, in first-seen order.
func (g Graph) NodeTypes() []string {
	seen := make(map[string]struct{}, len(g.Nodes))
	types := make([]string, 0, len(g.Nodes))
	for _, node := range g.Nodes {
		if _, ok := seen[node.Type]; ok {
			continue
		}
		seen[node.Type] = struct{}{}
		types = append(types, node.Type)
	}
	return types
}

func semanticProps(props map[string]any) map[string]any {
	semantic := make(map[string]any)
	for key, value := range props {
		if _, visual := visualProps[key]; visual {
			continue
		}
		semantic[key] = value
	}
	return semantic
}

func terminal(props map[string]any) string {
	if props == nil {
		return ""
	}
	value, ok := props["terminal"].(string)
	if !ok {
		return ""
	}
	return value
}
