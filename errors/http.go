package errors

import (
	"encoding/json"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
)

const statusClientClosedRequest = 499

// timestampLayout matches the local date-time the API has always emitted.
const timestampLayout = "2006-01-02T15:04:05.000000"

var now = time.Now

func HTTPStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Canceled:
		return statusClientClosedRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Internal:
		return http.StatusInternalServerError
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Body is the wire form of an error response.
type Body struct {
	Timestamp string          `json:"timestamp"`
	Status    int             `json:"status"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Errors    json.RawMessage `json:"errors,omitempty"`
}

func (e ErrorResponse) Body() Body {
	return Body{
		Timestamp: now().Format(timestampLayout),
		Status:    HTTPStatus(e.Code),
		Error:     e.Title,
		Message:   e.Message,
		Errors:    FieldMessages(e.Violations),
	}
}

func (e ErrorResponse) ToHTTP(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(HTTPStatus(e.Code))
	_ = json.NewEncoder(w).Encode(e.Body())
}
