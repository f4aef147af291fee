package ai

import (
	"encoding/json"
	"strings"
	"testing"
)

type verdictPayload struct {
	Score    int    `json:"score" jsonschema:"minimum=1,maximum=10"`
	Feedback string `json:"feedback"`
}

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  verdictPayload
	}{
		{
			name:  "valid json object",
			input: `{"score":7,"feedback":"solid"}`,
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
		{
			name:  "unquoted keys and single quotes",
			input: `{score: 7, feedback: 'solid'}`,
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
		{
			name:  "trailing comma",
			input: `{"score":7,"feedback":"solid",}`,
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
		{
			name:  "missing endbracket",
			input: `{"score":7,"feedback":"solid`,
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
		{
			name:  "stringified object",
			input: `"{ \"score\": 7, \"feedback\": \"solid\" }"`,
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"score\": 7,\n  \"feedback\": \"solid\"\n}\n",
			want:  verdictPayload{Score: 7, Feedback: "solid"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got verdictPayload
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Arrays(t *testing.T) {
	input := `{score: 6, feedback: 'ok', strengths: ['cache tier', 'replicated db',]}`
	var got struct {
		verdictPayload
		Strengths []string `json:"strengths"`
	}
	if err := UnmarshalFlexible(input, &got); err != nil {
		t.Fatalf("UnmarshalFlexible() error = %v", err)
	}
	if len(got.Strengths) != 2 || got.Strengths[0] != "cache tier" {
		t.Fatalf("UnmarshalFlexible() strengths = %v", got.Strengths)
	}
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	var got verdictPayload
	if err := UnmarshalFlexible("the design looks fine to me", &got); err == nil {
		t.Fatal("UnmarshalFlexible() expected error for unrecoverable input")
	}
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema(verdictPayload{})

	data, err := json.Marshal(schema)
	if err != nil {
		t.Fatalf("schema not serializable: %v", err)
	}
	serialized := string(data)

	for _, want := range []string{
		`"score"`,
		`"feedback"`,
		`"minimum":1`,
		`"maximum":10`,
		`"additionalProperties":false`,
	} {
		if !strings.Contains(serialized, want) {
			t.Fatalf("schema missing %s:\n%s", want, serialized)
		}
	}
	if strings.Contains(serialized, `"$ref"`) {
		t.Fatalf("schema must be inlined, found $ref:\n%s", serialized)
	}

	// Pointer input reflects the element type.
	ptrData, err := json.Marshal(GenerateSchema(&verdictPayload{}))
	if err != nil {
		t.Fatal(err)
	}
	if string(ptrData) != serialized {
		t.Fatal("GenerateSchema differs between value and pointer input")
	}
}
