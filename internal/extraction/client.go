package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Task is a single extracted action item. An empty assignee means the
// task is unassigned
type Task struct {
	Text     string `json:"text"`
	Assignee string `json:"assignee"`
}

// MeetingData is the structured record the model extracts from an
// image of handwritten notes
type MeetingData struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Attendees []string `json:"attendees"`
	Summary   string   `json:"summary"`
	Notes     []string `json:"notes"`
	Tasks     []Task   `json:"tasks"`
}

// Client converts an image into structured meeting data
type Client interface {
	Extract(ctx context.Context, imageDataURL string) (*MeetingData, error)
}

// GatewayClient delegates extraction to an OpenAI-compatible AI
// gateway using a single forced function call
type GatewayClient struct {
	client  *openai.Client
	options Options
}

// NewClient creates a gateway client from the given options
func NewClient(options Options) *GatewayClient {
	config := openai.DefaultConfig(options.APIKey)
	config.BaseURL = options.BaseURL

	return &GatewayClient{
		client:  openai.NewClientWithConfig(config),
		options: options,
	}
}

// Extract sends the image to the gateway and parses the forced
// extract_meeting_data call out of the reply. Failures are returned as
// classified *Error values
func (g *GatewayClient) Extract(ctx context.Context, imageDataURL string) (*MeetingData, error) {
	if imageDataURL == "" {
		return nil, newError(KindInvalidInput, "no image provided", nil)
	}
	if g.options.APIKey == "" {
		return nil, newError(KindMisconfigured, "AI_GATEWAY_API_KEY is not configured", nil)
	}

	req := openai.ChatCompletionRequest{
		Model: g.options.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: g.options.SystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: g.options.Instruction,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL},
					},
				},
			},
		},
		Tools: []openai.Tool{
			{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        TOOL_NAME,
					Description: "Extract structured meeting notes and tasks from handwritten notes image",
					Parameters:  toolSchema,
				},
			},
		},
		// Force the model to answer through the tool so the reply is
		// always schema-shaped
		ToolChoice: openai.ToolChoice{
			Type:     openai.ToolTypeFunction,
			Function: openai.ToolFunction{Name: TOOL_NAME},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	// Locate the first function call in the reply
	var call *openai.ToolCall
	for i := range resp.Choices {
		if len(resp.Choices[i].Message.ToolCalls) > 0 {
			call = &resp.Choices[i].Message.ToolCalls[0]
			break
		}
	}
	if call == nil {
		return nil, newError(KindMalformedModelOutput, "AI did not return structured data", nil)
	}

	var data MeetingData
	if err := json.Unmarshal([]byte(call.Function.Arguments), &data); err != nil {
		return nil, newError(KindMalformedModelOutput, "AI did not return structured data", err)
	}

	// Never hand back nil sequences
	if data.Attendees == nil {
		data.Attendees = []string{}
	}
	if data.Notes == nil {
		data.Notes = []string{}
	}
	if data.Tasks == nil {
		data.Tasks = []Task{}
	}

	return &data, nil
}

// classifyTransportError maps gateway call failures onto the
// extraction error taxonomy by upstream HTTP status
func classifyTransportError(err error) *Error {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	} else if errors.As(err, &reqErr) {
		status = reqErr.HTTPStatusCode
	}

	switch status {
	case 429:
		return newError(KindRateLimited, "gateway rate limit exceeded", err)
	case 402:
		return newError(KindQuotaExhausted, "gateway credits exhausted", err)
	default:
		return newError(KindUpstreamFailure, fmt.Sprintf("gateway call failed (status %d)", status), err)
	}
}
