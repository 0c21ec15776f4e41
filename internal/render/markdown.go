// Package render turns meeting records into copy-ready markdown
package render

import (
	"fmt"
	"strings"

	"github.com/notesnap/notesnap/pkg/sdk"
)

// Notes renders the organized notes section of a meeting record
func Notes(data *sdk.MeetingData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", data.Title)
	if data.Date != "" {
		fmt.Fprintf(&b, "**Date:** %s\n", data.Date)
	}
	if len(data.Attendees) > 0 {
		fmt.Fprintf(&b, "**Attendees:** %s\n", strings.Join(data.Attendees, ", "))
	}

	fmt.Fprintf(&b, "\n%s\n\n## Discussion Points\n", data.Summary)
	for _, n := range data.Notes {
		fmt.Fprintf(&b, "- %s\n", n)
	}

	return b.String()
}

// Tasks renders the action items as a markdown checklist. Indexes in
// done are 1-based positions to render as checked
func Tasks(tasks []sdk.Task, done map[int]bool) string {
	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		box := "[ ]"
		if done[i+1] {
			box = "[x]"
		}

		line := fmt.Sprintf("- %s %s", box, t.Text)
		if t.Assignee != "" {
			line += fmt.Sprintf(" (@%s)", t.Assignee)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// Remaining counts the tasks not marked done
func Remaining(tasks []sdk.Task, done map[int]bool) int {
	n := len(tasks)
	for i := range tasks {
		if done[i+1] {
			n--
		}
	}
	return n
}
