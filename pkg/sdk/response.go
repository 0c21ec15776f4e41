package sdk

import "net/http"

// StatusType labels an API response envelope
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusFail    StatusType = "fail"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status label
	Code    int        `json:"code"`            // HTTP status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional error detail for failed responses
}

// AsGinResponse converts the ApiResponse to a (code, body) pair for gin
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// NewSuccess creates a success envelope with no data
func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
	}
}

// NewSuccessResponse creates a success envelope carrying data
func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates a failure envelope. Client faults (4xx) are
// labeled fail, server faults error
func NewErrorResponse(code int, message string, err error) ApiResponse[any] {
	status := StatusError
	if code >= 400 && code < 500 {
		status = StatusFail
	}

	resp := ApiResponse[any]{
		Status:  status,
		Code:    code,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	return resp
}
