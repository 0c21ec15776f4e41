package notes_module

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	auth_module "github.com/notesnap/notesnap/internal/api/modules/auth"
	"github.com/notesnap/notesnap/internal/stores/note"
	"github.com/notesnap/notesnap/pkg/sdk"
)

// SaveNote handles POST requests to persist extracted meeting data for
// the authenticated user
func SaveNote(c *gin.Context) {
	identity, ok := auth_module.IdentityFromContext(c)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	// Parse request body
	var req sdk.MeetingData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Could not parse request body", err).AsGinResponse())
		return
	}

	// The extraction contract guarantees a title; reject records without one
	if req.Title == "" {
		c.JSON(sdk.NewErrorResponse(http.StatusBadRequest, "Title is required", nil).AsGinResponse())
		return
	}

	n := toStoreNote(&req, identity.ID)
	if err := noteStore.Insert(c.Request.Context(), n); err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to save note", err).AsGinResponse())
		return
	}

	resp := sdk.SaveNoteResponse{ID: n.ID.String()}
	c.JSON(sdk.NewSuccessResponse("Note saved successfully", resp).AsGinResponse())
}

// ListNotes handles GET requests for the authenticated user's note
// summaries, newest first
func ListNotes(c *gin.Context) {
	identity, ok := auth_module.IdentityFromContext(c)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	summaries, err := noteStore.ListByOwner(c.Request.Context(), identity.ID)
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to load notes", err).AsGinResponse())
		return
	}

	resp := make([]sdk.NoteSummary, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, sdk.NoteSummary{
			ID:        s.ID.String(),
			Title:     s.Title,
			Date:      s.Date,
			Summary:   s.Summary,
			CreatedAt: s.CreatedAt,
		})
	}

	c.JSON(sdk.NewSuccessResponse("Notes retrieved successfully", resp).AsGinResponse())
}

// GetNote handles GET requests for a single note by id
func GetNote(c *gin.Context) {
	identity, ok := auth_module.IdentityFromContext(c)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Note not found", nil).AsGinResponse())
		return
	}

	n, err := noteStore.GetByOwner(c.Request.Context(), id, identity.ID)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Note not found", nil).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to load note", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Note retrieved successfully", toSDKNote(n)).AsGinResponse())
}

// DeleteNote handles DELETE requests to remove a note by id
func DeleteNote(c *gin.Context) {
	identity, ok := auth_module.IdentityFromContext(c)
	if !ok {
		c.JSON(sdk.NewErrorResponse(http.StatusUnauthorized, "Invalid session", nil).AsGinResponse())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Note not found", nil).AsGinResponse())
		return
	}

	if err := noteStore.DeleteByOwner(c.Request.Context(), id, identity.ID); err != nil {
		if errors.Is(err, note.ErrNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Note not found", nil).AsGinResponse())
			return
		}
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to delete note", err).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccess("Note deleted successfully").AsGinResponse())
}

// Helper method to convert a save request to the store model
func toStoreNote(data *sdk.MeetingData, userID string) *note.Note {
	tasks := make(note.TaskList, 0, len(data.Tasks))
	for _, t := range data.Tasks {
		tasks = append(tasks, note.Task{Text: t.Text, Assignee: t.Assignee})
	}

	return &note.Note{
		UserID:    userID,
		Title:     data.Title,
		Date:      data.Date,
		Summary:   data.Summary,
		Attendees: note.StringList(data.Attendees),
		Notes:     note.StringList(data.Notes),
		Tasks:     tasks,
	}
}

// Helper method to convert a store note to its SDK shape
func toSDKNote(n *note.Note) sdk.Note {
	tasks := make([]sdk.Task, 0, len(n.Tasks))
	for _, t := range n.Tasks {
		tasks = append(tasks, sdk.Task{Text: t.Text, Assignee: t.Assignee})
	}

	attendees := n.Attendees
	if attendees == nil {
		attendees = note.StringList{}
	}
	points := n.Notes
	if points == nil {
		points = note.StringList{}
	}

	return sdk.Note{
		ID:        n.ID.String(),
		Title:     n.Title,
		Date:      n.Date,
		Attendees: attendees,
		Summary:   n.Summary,
		Notes:     points,
		Tasks:     tasks,
		CreatedAt: n.CreatedAt,
	}
}
