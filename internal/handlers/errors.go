package handlers

import (
	"encoding/json"
	"net/http"

	"movie-catalog-api/pkg/lambda"
)

// Fixed response messages
const (
	MessageMissingMovieID = "Missing movie Id"
	MessageInvalidMovieID = "Invalid movie Id"
	MessageInternalError  = "Internal Server Error"
)

// MessageResponse is the body of a 404 response
type MessageResponse struct {
	Message string `json:"Message"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse wraps a successful lookup
type DataResponse struct {
	Data interface{} `json:"data"`
}

// newErrorResponse describes err, falling back to a generic message
func newErrorResponse(err error) ErrorResponse {
	if err == nil || err.Error() == "" {
		return ErrorResponse{Error: MessageInternalError}
	}
	return ErrorResponse{Error: err.Error()}
}

// jsonResponse serializes body into a response envelope. A body that cannot
// be serialized produces a 500 response describing the failure.
func jsonResponse(status int, body interface{}) *lambda.Response {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(newErrorResponse(err))
	}

	return &lambda.Response{
		StatusCode: status,
		Headers:    map[string]string{lambda.ContentTypeHeader: lambda.ContentTypeJSON},
		Body:       data,
	}
}
