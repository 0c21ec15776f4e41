package extraction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notesnap/notesnap/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsDefaults(t *testing.T) {
	cfg := utils.NewConfig(map[string]string{
		"AI_GATEWAY_API_KEY": "secret",
	})

	opts, err := LoadOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, DEFAULT_BASE_URL, opts.BaseURL)
	assert.Equal(t, "secret", opts.APIKey)
	assert.Equal(t, DEFAULT_MODEL, opts.Model)
	assert.Equal(t, DEFAULT_SYSTEM_PROMPT, opts.SystemPrompt)
	assert.Equal(t, DEFAULT_INSTRUCTION, opts.Instruction)
}

func TestLoadOptionsMissingKey(t *testing.T) {
	// A missing credential is reported per extraction call, not at load
	opts, err := LoadOptions(utils.NewConfig(nil))
	require.NoError(t, err)
	assert.Empty(t, opts.APIKey)
}

func TestLoadOptionsFileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extraction.yaml")
	content := "model: custom/model\nsystem_prompt: Custom system prompt.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := utils.NewConfig(map[string]string{
		"AI_GATEWAY_URL":         "http://gateway.local/v1",
		"EXTRACTION_CONFIG_PATH": path,
	})

	opts, err := LoadOptions(cfg)
	require.NoError(t, err)

	assert.Equal(t, "http://gateway.local/v1", opts.BaseURL)
	assert.Equal(t, "custom/model", opts.Model)
	assert.Equal(t, "Custom system prompt.", opts.SystemPrompt)

	// Fields absent from the file keep their defaults
	assert.Equal(t, DEFAULT_INSTRUCTION, opts.Instruction)
}

func TestLoadOptionsBadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg := utils.NewConfig(map[string]string{
			"EXTRACTION_CONFIG_PATH": filepath.Join(t.TempDir(), "nope.yaml"),
		})

		_, err := LoadOptions(cfg)
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extraction.yaml")
		require.NoError(t, os.WriteFile(path, []byte("model: [unterminated"), 0644))

		cfg := utils.NewConfig(map[string]string{
			"EXTRACTION_CONFIG_PATH": path,
		})

		_, err := LoadOptions(cfg)
		assert.Error(t, err)
	})
}
