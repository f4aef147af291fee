package diagram

import (
	"encoding/json"
	"reflect"
	"sort"
	"testing"
)

func nodeByID(t *testing.T, graph Graph, id string) Node {
	t.Helper()
	for _, node := range graph.Nodes {
		if node.ID == id {
			return node
		}
	}
	t.Fatalf("node %q not found in graph", id)
	return Node{}
}

func TestExtract_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"zero snapshot", Snapshot{}},
		{"nil store", Snapshot{Store: nil}},
		{"empty store", Snapshot{Store: map[string]Record{}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			graph := Extract(tc.snap)
			if graph.Nodes == nil || graph.Edges == nil {
				t.Fatalf("Extract() must return non-nil slices, got %+v", graph)
			}
			if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
				t.Fatalf("Extract() = %+v, want empty graph", graph)
			}
		})
	}
}

func TestExtract_ShapesBecomeNodes(t *testing.T) {
	snap := Snapshot{Store: map[string]Record{
		"s1": {ID: "s1", TypeName: "shape", Type: ShapeDatabase, Props: map[string]any{
			"dbType": "postgres",
			"label":  "users db",
			"w":      float64(120),
			"h":      float64(80),
			"color":  "blue",
		}},
		"s2": {ID: "s2", TypeName: "shape", Type: ShapeServer},
		"s3": {ID: "s3", TypeName: "shape"},
		"a1": {ID: "a1", TypeName: "shape", Type: ShapeArrow},
		"p1": {ID: "p1", TypeName: "page"},
	}}

	graph := Extract(snap)

	if len(graph.Nodes) != 3 {
		t.Fatalf("Extract() emitted %d nodes, want 3 (arrows and pages excluded)", len(graph.Nodes))
	}

	db := nodeByID(t, graph, "s1")
	if db.Type != ShapeDatabase {
		t.Fatalf("node s1 type = %q, want %q", db.Type, ShapeDatabase)
	}
	want := map[string]any{"dbType": "postgres", "label": "users db"}
	if !reflect.DeepEqual(db.Props, want) {
		t.Fatalf("node s1 props = %v, want %v (visual keys stripped)", db.Props, want)
	}

	if typ := nodeByID(t, graph, "s3").Type; typ != "unknown" {
		t.Fatalf("untyped shape got type %q, want %q", typ, "unknown")
	}
}

func TestExtract_VisualDenylist(t *testing.T) {
	props := map[string]any{}
	for key := range visualProps {
		props[key] = "x"
	}
	props["label"] = "kept"
	props["nested"] = map[string]any{"depth": float64(2)}

	graph := Extract(Snapshot{Store: map[string]Record{
		"s1": {ID: "s1", TypeName: "shape", Type: ShapeCache, Props: props},
	}})

	got := nodeByID(t, graph, "s1").Props
	for key := range visualProps {
		if _, ok := got[key]; ok {
			t.Fatalf("visual key %q leaked into props %v", key, got)
		}
	}
	if got["label"] != "kept" {
		t.Fatalf("semantic key dropped, props = %v", got)
	}
	if !reflect.DeepEqual(got["nested"], map[string]any{"depth": float64(2)}) {
		t.Fatalf("nested value not retained verbatim, props = %v", got)
	}
}

func TestExtract_Edges(t *testing.T) {
	binding := func(id, arrow, target, terminal string) Record {
		return Record{
			ID: id, TypeName: "binding", FromID: arrow, ToID: target,
			Props: map[string]any{"terminal": terminal},
		}
	}

	tests := []struct {
		name    string
		records []Record
		want    []Edge
	}{
		{
			name: "both terminals resolve",
			records: []Record{
				binding("b1", "a1", "s1", "start"),
				binding("b2", "a1", "s2", "end"),
			},
			want: []Edge{{From: "s1", To: "s2"}},
		},
		{
			name: "direction preserved not symmetrized",
			records: []Record{
				binding("b1", "a1", "s2", "end"),
				binding("b2", "a1", "s1", "start"),
			},
			want: []Edge{{From: "s1", To: "s2"}},
		},
		{
			name: "start only is dropped",
			records: []Record{
				binding("b1", "a1", "s1", "start"),
			},
			want: []Edge{},
		},
		{
			name: "end only is dropped",
			records: []Record{
				binding("b1", "a1", "s2", "end"),
			},
			want: []Edge{},
		},
		{
			name: "two arrows resolve independently",
			records: []Record{
				binding("b1", "a1", "s1", "start"),
				binding("b2", "a1", "s2", "end"),
				binding("b3", "a2", "s2", "start"),
				binding("b4", "a2", "s3", "end"),
			},
			want: []Edge{{From: "s1", To: "s2"}, {From: "s2", To: "s3"}},
		},
		{
			name: "dangling target passes through unfiltered",
			records: []Record{
				binding("b1", "a1", "s1", "start"),
				binding("b2", "a1", "deleted", "end"),
			},
			want: []Edge{{From: "s1", To: "deleted"}},
		},
		{
			name: "missing ids are skipped",
			records: []Record{
				binding("b1", "", "s1", "start"),
				binding("b2", "a1", "", "end"),
			},
			want: []Edge{},
		},
		{
			name: "unknown terminal is ignored",
			records: []Record{
				binding("b1", "a1", "s1", "middle"),
				binding("b2", "a1", "s2", "end"),
			},
			want: []Edge{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := map[string]Record{}
			for _, r := range tc.records {
				store[r.ID] = r
			}
			graph := Extract(Snapshot{Store: store})

			got := append([]Edge{}, graph.Edges...)
			sort.Slice(got, func(i, j int) bool { return got[i].From < got[j].From })
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract() edges = %v, want %v", got, tc.want)
			}
		})
	}
}

// Mirrors the drawing flow: one client, one database, one arrow between them.
func TestExtract_EndToEnd(t *testing.T) {
	store := map[string]Record{
		"s1": {ID: "s1", TypeName: "shape", Type: ShapeClient, Props: map[string]any{"clientType": "web"}},
		"s2": {ID: "s2", TypeName: "shape", Type: ShapeDatabase, Props: map[string]any{"dbType": "postgres"}},
		"a1": {ID: "a1", TypeName: "shape", Type: ShapeArrow},
		"b1": {ID: "b1", TypeName: "binding", FromID: "a1", ToID: "s1", Props: map[string]any{"terminal": "start"}},
		"b2": {ID: "b2", TypeName: "binding", FromID: "a1", ToID: "s2", Props: map[string]any{"terminal": "end"}},
	}

	graph := Extract(Snapshot{Store: store})

	if len(graph.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(graph.Nodes))
	}
	if nodeByID(t, graph, "s1").Type != ShapeClient || nodeByID(t, graph, "s2").Type != ShapeDatabase {
		t.Fatalf("node types wrong: %+v", graph.Nodes)
	}
	if len(graph.Edges) != 1 || graph.Edges[0] != (Edge{From: "s1", To: "s2"}) {
		t.Fatalf("got edges %v, want [{s1 s2}]", graph.Edges)
	}

	// Same board with the end terminal still being dragged: nodes stay,
	// the half-bound arrow produces no edge.
	delete(store, "b2")
	graph = Extract(Snapshot{Store: store})
	if len(graph.Nodes) != 2 || len(graph.Edges) != 0 {
		t.Fatalf("incomplete arrow: got %d nodes %d edges, want 2 nodes 0 edges", len(graph.Nodes), len(graph.Edges))
	}
}

func TestExtract_Idempotent(t *testing.T) {
	snap := Snapshot{Store: map[string]Record{
		"s1": {ID: "s1", TypeName: "shape", Type: ShapeServer, Props: map[string]any{"label": "api"}},
		"s2": {ID: "s2", TypeName: "shape", Type: ShapeCache},
		"b1": {ID: "b1", TypeName: "binding", FromID: "a1", ToID: "s1", Props: map[string]any{"terminal": "start"}},
		"b2": {ID: "b2", TypeName: "binding", FromID: "a1", ToID: "s2", Props: map[string]any{"terminal": "end"}},
	}}

	first := Extract(snap)
	second := Extract(snap)

	normalize := func(g Graph) Graph {
		sort.Slice(g.Nodes, func(i, j int) bool { return g.Nodes[i].ID < g.Nodes[j].ID })
		sort.Slice(g.Edges, func(i, j int) bool { return g.Edges[i].From < g.Edges[j].From })
		return g
	}
	if !reflect.DeepEqual(normalize(first), normalize(second)) {
		t.Fatalf("Extract() not idempotent: %+v vs %+v", first, second)
	}
}

func TestParseSnapshot(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantEmpty bool
	}{
		{"valid", `{"store":{"s1":{"id":"s1","typeName":"shape","type":"server"}}}`, false},
		{"empty input", ``, true},
		{"malformed json", `{"store":`, true},
		{"wrong shape", `{"store": 42}`, true},
		{"null", `null`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := ParseSnapshot(json.RawMessage(tc.input))
			graph := Extract(snap)
			if tc.wantEmpty && (len(graph.Nodes) != 0 || len(graph.Edges) != 0) {
				t.Fatalf("ParseSnapshot(%q) should degrade to empty graph, got %+v", tc.input, graph)
			}
			if !tc.wantEmpty && len(graph.Nodes) == 0 {
				t.Fatalf("ParseSnapshot(%q) lost records", tc.input)
			}
		})
	}
}

func TestNodeTypes(t *testing.T) {
	graph := Graph{Nodes: []Node{
		{ID: "1", Type: ShapeServer},
		{ID: "2", Type: ShapeDatabase},
		{ID: "3", Type: ShapeServer},
	}}

	got := graph.NodeTypes()
	if !reflect.DeepEqual(got, []string{ShapeServer, ShapeDatabase}) {
		t.Fatalf("NodeTypes() = %v, want unique types in first-seen order", got)
	}
}
