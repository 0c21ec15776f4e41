package extraction

import (
	"fmt"
	"os"

	"github.com/notesnap/notesnap/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Options configures the gateway client
type Options struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Instruction  string
}

// fileOptions are the overridable fields of the options file
type fileOptions struct {
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`
	Instruction  string `yaml:"instruction"`
}

// LoadOptions builds gateway options from the environment, applying an
// optional YAML options file on top of the defaults.
// A missing API key is not an error here; Extract reports it per call
func LoadOptions(cfg *utils.Config) (Options, error) {
	opts := Options{
		BaseURL:      cfg.GetWithDefault("AI_GATEWAY_URL", DEFAULT_BASE_URL),
		APIKey:       cfg.Get("AI_GATEWAY_API_KEY"),
		Model:        DEFAULT_MODEL,
		SystemPrompt: DEFAULT_SYSTEM_PROMPT,
		Instruction:  DEFAULT_INSTRUCTION,
	}

	// Apply the options file if one is configured
	path := cfg.Get("EXTRACTION_CONFIG_PATH")
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read extraction config file: %w", err)
	}

	var fo fileOptions
	if err := yaml.Unmarshal(data, &fo); err != nil {
		return opts, fmt.Errorf("failed to parse extraction config file: %w", err)
	}

	if fo.Model != "" {
		opts.Model = fo.Model
	}
	if fo.SystemPrompt != "" {
		opts.SystemPrompt = fo.SystemPrompt
	}
	if fo.Instruction != "" {
		opts.Instruction = fo.Instruction
	}

	return opts, nil
}
