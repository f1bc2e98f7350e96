package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/barnframe/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	Details   []string    `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	if code.Validation() {
		return http.StatusBadRequest
	}
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// toResponse converts err to a response body. Errors without a code are
// reported as internal without exposing their text.
func toResponse(err error) ErrorResponse {
	if code := errors.GetCode(err); code != "" {
		resp := ErrorResponse{Code: code, Message: errors.UserMessage(err)}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				resp.Details = append(resp.Details, errors.UserMessage(e))
			}
		}
		return resp
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return ErrorResponse{Code: errors.ErrCodeTimeout, Message: "request timed out"}
	case stderrors.Is(err, context.Canceled):
		return ErrorResponse{Code: errors.ErrCodeTimeout, Message: "request canceled"}
	}
	return ErrorResponse{Code: errors.ErrCodeInternal, Message: "internal error"}
}

// fail writes err as an error response. Uncoded errors are logged since
// their text is not returned to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.failStatus(w, r, 0, err)
}

// failStatus is fail with an explicit status; zero derives it from the code.
func (s *Server) failStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	resp := toResponse(err)
	resp.RequestID = requestID(r)
	if resp.Code == errors.ErrCodeInternal {
		s.logger.Error("request failed", "error", err, "request_id", resp.RequestID)
	}
	if status == 0 {
		status = statusFor(resp.Code)
	}
	writeJSON(w, status, resp)
}

func errNotFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func errMethodNotAllowed(r *http.Request) error {
	return errors.New(errors.ErrCodeUnsupported, "method %s not allowed on %s", r.Method, r.URL.Path)
}
