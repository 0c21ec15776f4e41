package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notesnap/notesnap/internal/output"
	"github.com/notesnap/notesnap/internal/render"
	"github.com/notesnap/notesnap/pkg/sdk"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your saved notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			notes, err := deps.Client.ListNotes(cmd.Context())
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				formatter.Info("No saved notes yet")
				return nil
			}

			formatter.NoteListHeader()
			for _, n := range notes {
				formatter.NoteListItem(n.ID, n.Title, n.Date, n.CreatedAt)
			}
			return nil
		},
	}
}

func NewShowCmd(deps *Dependencies) *cobra.Command {
	var doneList string
	var tasksOnly bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved note",
		Long:  "Show a saved note as markdown.\nUse --done to tick off tasks by position, e.g. --done 1,3.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			done, err := parseDone(doneList)
			if err != nil {
				return err
			}

			n, err := deps.Client.GetNote(cmd.Context(), args[0])
			if err != nil {
				if sdk.IsNotFound(err) {
					return fmt.Errorf("note %s not found", args[0])
				}
				return err
			}

			renderNote(formatter, n, done, tasksOnly)
			return nil
		},
	}

	cmd.Flags().StringVar(&doneList, "done", "", "Comma-separated task positions to mark as done")
	cmd.Flags().BoolVar(&tasksOnly, "tasks", false, "Show only the task checklist")

	return cmd
}

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if err := deps.Client.DeleteNote(cmd.Context(), args[0]); err != nil {
				if sdk.IsNotFound(err) {
					return fmt.Errorf("note %s not found", args[0])
				}
				return err
			}

			formatter.Success("Note deleted")
			return nil
		},
	}
}

// renderNote prints a saved note. Tasks-only mode emits the bare
// clipboard-format checklist, always unchecked
func renderNote(formatter *output.Formatter, n *sdk.Note, done map[int]bool, tasksOnly bool) {
	if tasksOnly {
		formatter.Markdown(render.Tasks(n.Tasks, nil))
		return
	}

	data := &sdk.MeetingData{
		Title:     n.Title,
		Date:      n.Date,
		Attendees: n.Attendees,
		Summary:   n.Summary,
		Notes:     n.Notes,
		Tasks:     n.Tasks,
	}

	formatter.Markdown(render.Notes(data))
	if len(n.Tasks) > 0 {
		formatter.TasksHeader(render.Remaining(n.Tasks, done))
		formatter.Markdown(render.Tasks(n.Tasks, done))
	}
}

// parseDone turns "1,3" into the set of checked task positions
func parseDone(list string) (map[int]bool, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	done := make(map[int]bool)
	for _, part := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid task position %q", strings.TrimSpace(part))
		}
		done[n] = true
	}
	return done, nil
}
