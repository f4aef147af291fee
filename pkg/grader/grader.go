// Package grader orchestrates one grading request: admission control,
// snapshot-to-graph extraction, and a schema-validated call to the reasoning
// model. Recoverable conditions (quota exhausted, empty board) become typed
// results, never errors; only the model call can genuinely fail, and its
// cause stays server-side.
package grader

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/johnkimo5/architect-design-ai/pkg/ai"
	"github.com/johnkimo5/architect-design-ai/pkg/diagram"
	"github.com/johnkimo5/architect-design-ai/pkg/logger"
	"github.com/johnkimo5/architect-design-ai/pkg/ratelimit"
)

// User-facing error messages. Oracle failures are intentionally generic:
// no internal error detail crosses the API boundary. Exported so the HTTP
// layer can map each failure to a status code.
const (
	MsgQuotaExceeded = "Rate limit exceeded. You've used all your grades for this hour."
	MsgEmptyBoard    = "No components found on the board. Add some system design shapes first."
	MsgGradingFailed = "Grading failed. Please try again."
)

// AdmissionChecker is the quota gate consulted before any work is done.
// *ratelimit.Limiter satisfies it.
type AdmissionChecker interface {
	Limit(ctx context.Context, key string) ratelimit.Result
}

// Service grades snapshots. It exists as an interface so HTTP handlers can
// be tested against a stub.
type Service interface {
	Grade(ctx context.Context, userID string, snapshot diagram.Snapshot, problemStatement string) Result
}

// Grader is the production Service implementation.
type Grader struct {
	aiClient ai.GradeAIClient
	limiter  AdmissionChecker
	model    string
}

// NewGraderParams configures a Grader. Model may be empty to use the AI
// client's default.
type NewGraderParams struct {
	AiClient ai.GradeAIClient
	Limiter  AdmissionChecker
	Model    string
}

func NewGrader(params NewGraderParams) *Grader {
	return &Grader{
		aiClient: params.AiClient,
		limiter:  params.Limiter,
		model:    params.Model,
	}
}

// Grade runs the full pipeline for one request. The quota is charged by the
// admission check before extraction, so an empty board still consumes one
// unit; likewise a request cancelled after the check stays charged. The
// model is never invoked for a rejected or empty request.
func (g *Grader) Grade(
	ctx context.Context,
	userID string,
	snapshot diagram.Snapshot,
	problemStatement string,
) Result {
	admission := g.limiter.Limit(ctx, userID)
	if !admission.Allowed {
		return Result{
			Success: false,
			Error:   MsgQuotaExceeded,
			ResetAt: admission.ResetAt.UnixMilli(),
		}
	}

	graph := diagram.Extract(snapshot)
	if len(graph.Nodes) == 0 {
		return Result{
			Success: false,
			Error:   MsgEmptyBoard,
		}
	}

	prompt, err := BuildPrompt(problemStatement, graph)
	if err != nil {
		logger.Error("[Grade] Failed to serialize graph", "err", err)
		return Result{Success: false, Error: MsgGradingFailed}
	}

	opts := []ai.GenerateOption{ai.WithTemperature(0.2)}
	if g.model != "" {
		opts = append(opts, ai.WithModel(g.model))
	}

	var verdict Verdict
	err = g.aiClient.GenerateCompletionWithFormat(
		ctx,
		"grade_verdict",
		"Structured review of a system design diagram against a problem statement",
		prompt,
		&verdict,
		opts...,
	)
	if err != nil {
		logger.Error("[Grade] Oracle call failed", "user", userID, "err", err)
		return Result{Success: false, Error: MsgGradingFailed}
	}
	if err := verdict.Validate(); err != nil {
		logger.Error("[Grade] Oracle returned invalid verdict", "user", userID, "err", err)
		return Result{Success: false, Error: MsgGradingFailed}
	}

	metrics := g.aiClient.GetMetrics()
	logger.Debug("[Grade] Verdict received",
		"user", userID,
		"score", verdict.Score,
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
		"total_tokens", metrics.TotalTokens,
	)

	return Result{
		Success:   true,
		Result:    &verdict,
		Remaining: admission.Remaining,
	}
}

// BuildPrompt renders the grading prompt for a graph. Nodes and edges are
// sorted before serialization so the same snapshot always yields the same
// prompt text.
func BuildPrompt(problemStatement string, graph diagram.Graph) (string, error) {
	nodes := make([]diagram.Node, len(graph.Nodes))
	copy(nodes, graph.Nodes)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	edges := make([]diagram.Edge, len(graph.Edges))
	copy(edges, graph.Edges)
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	sorted := diagram.Graph{Nodes: nodes, Edges: edges}
	serialized, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		GradePrompt,
		problemStatement,
		string(serialized),
		strings.Join(sorted.NodeTypes(), ", "),
		len(nodes),
		len(edges),
	), nil
}
