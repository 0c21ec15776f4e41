package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Processing() {
	fmt.Fprintf(f.w, "🤖 Processing notes image...\n")
}

func (f *Formatter) Saved(id string) {
	fmt.Fprintf(f.w, "✅ Note saved: %s\n", id)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

// Markdown prints a rendered block verbatim
func (f *Formatter) Markdown(text string) {
	fmt.Fprint(f.w, text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		fmt.Fprintln(f.w)
	}
}

func (f *Formatter) TasksHeader(remaining int) {
	fmt.Fprintf(f.w, "\n## Tasks (%d remaining)\n", remaining)
}

func (f *Formatter) NoteListHeader() {
	fmt.Fprintf(f.w, "📁 Saved notes:\n\n")
}

func (f *Formatter) NoteListItem(id, title, date string, createdAt time.Time) {
	when := date
	if when == "" {
		when = createdAt.Format("2006-01-02")
	}
	fmt.Fprintf(f.w, "  %s  %s  %s\n", id, when, title)
}
