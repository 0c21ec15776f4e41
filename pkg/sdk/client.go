package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIError is a failed API call with its transport status and the
// server's user-facing message
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether an error is an APIError with status 404
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Client wraps calls to the NoteSnap backend
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates an API client. token may be empty for
// unauthenticated calls
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// SetToken replaces the bearer token used for authenticated calls
func (c *Client) SetToken(token string) {
	c.token = token
}

/** ---- AUTH ---- **/

// SignUp registers a new account; returns the server's message
// (account requires email confirmation before first sign-in)
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	var out ApiResponse[Identity]
	req := SignUpRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Confirm redeems an email confirmation token
func (c *Client) Confirm(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/confirm", ConfirmRequest{Token: token}, nil)
}

// SignIn authenticates and returns a session token
func (c *Client) SignIn(ctx context.Context, email, password string) (*SessionResponse, error) {
	var out ApiResponse[SessionResponse]
	req := SignInRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signin", req, &out); err != nil {
		return nil, err
	}

	c.token = out.Data.Token
	return &out.Data, nil
}

// SignOut revokes the current session token
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// CurrentUser returns the identity behind the current token
func (c *Client) CurrentUser(ctx context.Context) (*Identity, error) {
	var out ApiResponse[Identity]
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

/** ---- EXTRACTION ---- **/

// Extract sends an image data URL through the extraction endpoint.
// This endpoint uses the raw browser-facing wire contract, not the
// envelope
func (c *Client) Extract(ctx context.Context, imageDataURL string) (*MeetingData, error) {
	body, err := json.Marshal(ExtractRequest{ImageBase64: imageDataURL})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/extract", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: e.Error}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "extraction failed"}
	}

	var data MeetingData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

/** ---- NOTES ---- **/

// SaveNote persists extracted meeting data and returns the new id
func (c *Client) SaveNote(ctx context.Context, data *MeetingData) (string, error) {
	var out ApiResponse[SaveNoteResponse]
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes", data, &out); err != nil {
		return "", err
	}
	return out.Data.ID, nil
}

// ListNotes returns the caller's note summaries, newest first
func (c *Client) ListNotes(ctx context.Context) ([]NoteSummary, error) {
	var out ApiResponse[[]NoteSummary]
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetNote returns a full note by id
func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var out ApiResponse[Note]
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteNote deletes a note by id
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%s", id), nil, nil)
}

// doJSON is a helper to perform JSON requests against envelope endpoints
func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	// Create request body if input is provided
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	// Perform the request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the envelope message when the server provided one
		var envelope ApiResponse[any]
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("%s %s failed", method, path)}
	}

	// If no output expected, return early
	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}
