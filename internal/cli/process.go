package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notesnap/notesnap/internal/output"
	"github.com/notesnap/notesnap/internal/render"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "process <image>",
		Short: "Extract organized notes from a photo of handwritten notes",
		Long:  "Upload a photo of handwritten meeting notes and have it organized into a structured record.\nThe result is saved to your account unless --no-save is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			dataURL, err := encodeImage(args[0])
			if err != nil {
				return err
			}

			formatter.Processing()
			data, err := deps.Client.Extract(cmd.Context(), dataURL)
			if err != nil {
				return err
			}

			formatter.Markdown(render.Notes(data))
			if len(data.Tasks) > 0 {
				formatter.TasksHeader(len(data.Tasks))
				formatter.Markdown(render.Tasks(data.Tasks, nil))
			}

			if noSave {
				return nil
			}

			id, err := deps.Client.SaveNote(cmd.Context(), data)
			if err != nil {
				return err
			}

			formatter.Saved(id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Show the result without saving it")

	return cmd
}

// encodeImage reads an image file and packs it into a base64 data URL
func encodeImage(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (detected %s)", path, mime)
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(raw)), nil
}
