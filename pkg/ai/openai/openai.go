package openai

import (
	"errors"
	"sync"

	"github.com/johnkimo5/architect-design-ai/pkg/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient implements ai.GradeAIClient against any OpenAI-compatible
// chat completion API.
//
// An OpenAIClient should be created using NewOpenAIClient.
type OpenAIClient struct {
	gradeModel string

	metricsLock sync.Mutex
	metrics     ai.ModelMetrics

	ChatClient *openai.Client
}

// NewOpenAIClientParams defines the configuration for creating an OpenAIClient.
//
// GradeModel specifies the model used for grading completions.
// ChatURL and ChatKey configure the chat/completion API endpoint; an empty
// ChatURL targets the official OpenAI API.
type NewOpenAIClientParams struct {
	GradeModel string

	ChatURL string
	ChatKey string
}

// NewOpenAIClient creates a new client configured with the provided
// parameters. A missing ChatKey is a configuration error surfaced at
// construction time, not on the first request.
//
// Example:
//
//	client, err := openai.NewOpenAIClient(openai.NewOpenAIClientParams{
//		GradeModel: "gpt-4o-mini",
//		ChatURL:    "https://api.openai.com/v1",
//		ChatKey:    os.Getenv("OPENAI_API_KEY"),
//	})
func NewOpenAIClient(params NewOpenAIClientParams) (*OpenAIClient, error) {
	if params.ChatKey == "" {
		return nil, errors.New("chat API key is required")
	}

	return &OpenAIClient{
		gradeModel: params.GradeModel,

		metricsLock: sync.Mutex{},
		metrics:     ai.ModelMetrics{},

		ChatClient: newOpenaiClient(params.ChatURL, params.ChatKey),
	}, nil
}

func newOpenaiClient(
	baseURL string,
	apiKey string,
) *openai.Client {
	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(options...)

	return &client
}
