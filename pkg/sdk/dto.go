package sdk

import "time"

// Task is a single action item extracted from the notes
type Task struct {
	Text     string `json:"text"`
	Assignee string `json:"assignee"`
}

// MeetingData is the structured result of processing a notes image.
// It doubles as the save-note request body
type MeetingData struct {
	Title     string   `json:"title"`
	Date      string   `json:"date"`
	Attendees []string `json:"attendees"`
	Summary   string   `json:"summary"`
	Notes     []string `json:"notes"`
	Tasks     []Task   `json:"tasks"`
}

// ExtractRequest is the body of the extraction endpoint
type ExtractRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// MinPasswordLength must match the `min=6` binding on SignUpRequest
const MinPasswordLength = 6

// SignUpRequest registers a new account
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignInRequest authenticates an existing account
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ConfirmRequest redeems an email confirmation token
type ConfirmRequest struct {
	Token string `json:"token" binding:"required"`
}

// Identity is the authenticated user visible to clients
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionResponse is returned on successful sign-in
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      Identity  `json:"user"`
}

// SaveNoteResponse carries the id of a newly persisted note
type SaveNoteResponse struct {
	ID string `json:"id"`
}

// NoteSummary is the list projection of a saved note
type NoteSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// Note is a full saved note
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Attendees []string  `json:"attendees"`
	Summary   string    `json:"summary"`
	Notes     []string  `json:"notes"`
	Tasks     []Task    `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}
