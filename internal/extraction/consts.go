package extraction

// Defaults for the AI gateway. The model and prompts can be overridden
// with an options file (see LoadOptions).
const (
	DEFAULT_BASE_URL = "https://ai.gateway.lovable.dev/v1"
	DEFAULT_MODEL    = "google/gemini-3-flash-preview"

	TOOL_NAME = "extract_meeting_data"
)

// DEFAULT_SYSTEM_PROMPT tells the model how to treat the incoming image
const DEFAULT_SYSTEM_PROMPT = `You are a meeting notes organizer. You will receive an image of handwritten meeting notes. Your job is to:
1. Transcribe the handwritten text accurately
2. Organize it into formal meeting notes with sections like Date, Attendees, Discussion Points
3. Extract all action items/tasks

You MUST respond using the extract_meeting_data tool.`

// DEFAULT_INSTRUCTION is the user turn sent alongside the image
const DEFAULT_INSTRUCTION = "Please transcribe and organize these handwritten meeting notes. Extract all tasks and action items."

// toolSchema is the parameter schema for the extract_meeting_data
// function. Every top-level field is required so the model always
// returns a fully-shaped object
var toolSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "Meeting title or topic",
		},
		"date": map[string]any{
			"type":        "string",
			"description": "Meeting date if mentioned, otherwise empty string",
		},
		"attendees": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "List of attendees if mentioned",
		},
		"summary": map[string]any{
			"type":        "string",
			"description": "Brief summary of the meeting in 1-2 sentences",
		},
		"notes": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Key discussion points as bullet points",
		},
		"tasks": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "The task description",
					},
					"assignee": map[string]any{
						"type":        "string",
						"description": "Person assigned if mentioned, otherwise empty",
					},
				},
				"required":             []string{"text", "assignee"},
				"additionalProperties": false,
			},
			"description": "Extracted action items and tasks",
		},
	},
	"required":             []string{"title", "date", "attendees", "summary", "notes", "tasks"},
	"additionalProperties": false,
}
