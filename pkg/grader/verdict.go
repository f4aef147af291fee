package grader

import (
	"encoding/json"
	"fmt"
)

// Verdict is the structured grade produced by the reasoning model. The
// jsonschema tags drive the strict response format sent to the model; the
// JSON field names are part of the API contract with the frontend.
type Verdict struct {
	Score             int      `json:"score" jsonschema:"minimum=1,maximum=10"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	MissingComponents []string `json:"missingComponents"`
	SecurityRisks     []string `json:"securityRisks"`
}

// Validate rejects verdicts that slipped past the schema with an
// out-of-bounds score.
func (v *Verdict) Validate() error {
	if v.Score < 1 || v.Score > 10 {
		return fmt.Errorf("score %d out of bounds [1,10]", v.Score)
	}
	return nil
}

// Result is the outcome of one grading request. Success discriminates the
// two arms: a verdict with the remaining quota, or a user-facing error with
// an optional quota reset timestamp (epoch milliseconds).
type Result struct {
	Success   bool     `json:"success"`
	Result    *Verdict `json:"result"`
	Remaining int      `json:"remaining"`
	Error     string   `json:"error"`
	ResetAt   int64    `json:"resetAt"`
}

// MarshalJSON serializes each arm explicitly. The success arm always
// carries remaining, 0 included: a client reading the last admitted call
// of the window must see an integer, not an absent field. The failure arm
// omits the verdict fields entirely.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success   bool     `json:"success"`
			Result    *Verdict `json:"result"`
			Remaining int      `json:"remaining"`
		}{r.Success, r.Result, r.Remaining})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		ResetAt int64  `json:"resetAt,omitempty"`
	}{r.Success, r.Error, r.ResetAt})
}
