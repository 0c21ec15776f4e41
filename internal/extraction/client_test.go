package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,AAAA"

// newStubGateway returns a client pointed at a stub gateway along with
// a counter of upstream calls received
func newStubGateway(t *testing.T, handler http.HandlerFunc) (*GatewayClient, *int) {
	t.Helper()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := NewClient(Options{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		Model:        DEFAULT_MODEL,
		SystemPrompt: DEFAULT_SYSTEM_PROMPT,
		Instruction:  DEFAULT_INSTRUCTION,
	})

	return client, &calls
}

// toolCallResponse builds a chat completion body whose first choice
// invokes extract_meeting_data with the given arguments
func toolCallResponse(arguments string) string {
	body := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role": "assistant",
					"tool_calls": []map[string]any{
						{
							"id":   "call_1",
							"type": "function",
							"function": map[string]any{
								"name":      TOOL_NAME,
								"arguments": arguments,
							},
						},
					},
				},
				"finish_reason": "tool_calls",
			},
		},
	}

	data, _ := json.Marshal(body)
	return string(data)
}

func TestExtractSuccess(t *testing.T) {
	arguments := `{"title":"Standup","date":"","attendees":[],"summary":"Quick sync.","notes":["Discussed blockers"],"tasks":[{"text":"Fix bug","assignee":"Sam"}]}`

	var captured map[string]any
	client, calls := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, toolCallResponse(arguments))
	})

	data, err := client.Extract(context.Background(), testImage)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)

	// Result matches the stubbed arguments exactly
	assert.Equal(t, "Standup", data.Title)
	assert.Equal(t, "", data.Date)
	assert.Equal(t, []string{}, data.Attendees)
	assert.Equal(t, "Quick sync.", data.Summary)
	assert.Equal(t, []string{"Discussed blockers"}, data.Notes)
	assert.Equal(t, []Task{{Text: "Fix bug", Assignee: "Sam"}}, data.Tasks)

	// Request carried the model, forced tool choice, and the image
	assert.Equal(t, DEFAULT_MODEL, captured["model"])

	toolChoice, ok := captured["tool_choice"].(map[string]any)
	require.True(t, ok, "tool_choice should be a forced function object")
	function := toolChoice["function"].(map[string]any)
	assert.Equal(t, TOOL_NAME, function["name"])

	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	userParts := messages[1].(map[string]any)["content"].([]any)
	require.Len(t, userParts, 2)
	imagePart := userParts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	assert.Equal(t, testImage, imagePart["image_url"].(map[string]any)["url"])
}

func TestExtractNormalizesNilSequences(t *testing.T) {
	client, _ := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, toolCallResponse(`{"title":"Sync","date":"","attendees":null,"summary":"","notes":null,"tasks":null}`))
	})

	data, err := client.Extract(context.Background(), testImage)
	require.NoError(t, err)

	assert.NotNil(t, data.Attendees)
	assert.NotNil(t, data.Notes)
	assert.NotNil(t, data.Tasks)
	assert.Empty(t, data.Attendees)
	assert.Empty(t, data.Tasks)
}

func TestExtractInvalidInput(t *testing.T) {
	client, calls := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected")
	})

	_, err := client.Extract(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
	assert.Equal(t, 0, *calls, "empty input must short-circuit before any upstream call")
}

func TestExtractMisconfigured(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://localhost:1", Model: DEFAULT_MODEL})

	_, err := client.Extract(context.Background(), testImage)
	require.Error(t, err)
	assert.Equal(t, KindMisconfigured, KindOf(err))
}

func TestExtractStatusClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		kind   ErrorKind
	}{
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"quota exhausted", http.StatusPaymentRequired, KindQuotaExhausted},
		{"server error", http.StatusInternalServerError, KindUpstreamFailure},
		{"bad gateway", http.StatusBadGateway, KindUpstreamFailure},
		{"unauthorized", http.StatusUnauthorized, KindUpstreamFailure},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				fmt.Fprintf(w, `{"error":{"message":"upstream says no","type":"test_error"}}`)
			})

			_, err := client.Extract(context.Background(), testImage)
			require.Error(t, err)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}
}

func TestExtractMalformedModelOutput(t *testing.T) {
	t.Run("no tool call", func(t *testing.T) {
		client, _ := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"id":"chatcmpl-test","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"I cannot read this image."},"finish_reason":"stop"}]}`)
		})

		_, err := client.Extract(context.Background(), testImage)
		require.Error(t, err)
		assert.Equal(t, KindMalformedModelOutput, KindOf(err))
	})

	t.Run("unparseable arguments", func(t *testing.T) {
		client, _ := newStubGateway(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, toolCallResponse(`{"title": unterminated`))
		})

		_, err := client.Extract(context.Background(), testImage)
		require.Error(t, err)
		assert.Equal(t, KindMalformedModelOutput, KindOf(err))
	})
}
