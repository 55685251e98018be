// Package errors is the backend error model: a transport-agnostic
// ErrorResponse with a gRPC-style code, rendered to HTTP in the body shape
// the contact API clients expect.
package errors

import (
	"bytes"
	"encoding/json"

	"google.golang.org/grpc/codes"
)

// Reason is a stable machine-readable code.
type Reason string

type FieldViolation struct {
	Field       string `json:"field"`
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
}

type ErrorResponse struct {
	Code       codes.Code       `json:"code"`
	Reason     Reason           `json:"reason,omitempty"`
	Title      string           `json:"error"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations,omitempty"`
}

func New(title, message string, code codes.Code) ErrorResponse {
	return ErrorResponse{Code: code, Title: title, Message: message}
}

func (e ErrorResponse) WithReason(r string) ErrorResponse  { e.Reason = Reason(r); return e }
func (e ErrorResponse) WithMessage(m string) ErrorResponse { e.Message = m; return e }

func (e ErrorResponse) WithViolations(v []FieldViolation) ErrorResponse {
	if len(v) == 0 {
		return e
	}
	e.Violations = append([]FieldViolation(nil), v...)
	return e
}

func (e ErrorResponse) ToString() string {
	type out struct {
		Code       string           `json:"code"`
		Reason     Reason           `json:"reason,omitempty"`
		Message    string           `json:"message"`
		Violations []FieldViolation `json:"violations,omitempty"`
	}
	b, _ := json.Marshal(out{
		Code:       e.Code.String(),
		Reason:     e.Reason,
		Message:    e.Message,
		Violations: e.Violations,
	})
	return string(b)
}

func (e ErrorResponse) Error() string { return e.ToString() }

// FieldMessages renders violations as a JSON object field -> description,
// keeping violation order. The first violation of a field wins.
func FieldMessages(vs []FieldViolation) json.RawMessage {
	if len(vs) == 0 {
		return nil
	}
	var buf bytes.Buffer
	seen := make(map[string]struct{}, len(vs))
	buf.WriteByte('{')
	for _, v := range vs {
		if _, dup := seen[v.Field]; dup {
			continue
		}
		seen[v.Field] = struct{}{}
		if len(seen) > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(v.Field)
		d, _ := json.Marshal(v.Description)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(d)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}
