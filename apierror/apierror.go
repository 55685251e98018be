// Package apierror turns failed backend responses into the single message
// shown to the user.
//
// A response is first decoded into one of a closed set of payload shapes
// (Decode) and then resolved with a fixed precedence (Resolve):
//
//	message field -> plain string body -> field map -> status code -> fallback
package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Default messages shown to the user. They are fixed Portuguese literals.
const (
	MsgBadRequest = "Dados inválidos. Verifique os campos preenchidos."
	MsgNotFound   = "Contato não encontrado."
	MsgInternal   = "Erro interno do servidor. Tente novamente mais tarde."
	MsgUnexpected = "Erro inesperado. Tente novamente."
)

// FieldSeparator joins the messages of a field map.
const FieldSeparator = "; "

// Payload is the shape of an error body. The set of implementations is closed.
type Payload interface {
	payload()
}

// MessagePayload is a body carrying a "message" string.
type MessagePayload struct {
	Message string
}

// TextPayload is a body that is itself a string.
type TextPayload struct {
	Text string
}

// FieldsPayload is a body carrying a field -> message mapping, in the order
// the backend sent it.
type FieldsPayload struct {
	Fields []FieldMessage
}

// NoPayload is a body with nothing usable in it.
type NoPayload struct{}

func (MessagePayload) payload() {}
func (TextPayload) payload()    {}
func (FieldsPayload) payload()  {}
func (NoPayload) payload()      {}

type FieldMessage struct {
	Field   string
	Message string
}

// Joined returns the field messages joined with FieldSeparator.
func (p FieldsPayload) Joined() string {
	msgs := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, FieldSeparator)
}

// Error is a failed backend call. Status is 0 when no response was received.
type Error struct {
	Status  int
	Payload Payload
	// Err is the transport failure, if any.
	Err error
}

// New builds an Error with the given status and payload. A nil payload
// becomes NoPayload.
func New(status int, p Payload) *Error {
	if p == nil {
		p = NoPayload{}
	}
	return &Error{Status: status, Payload: p}
}

// Transport wraps a failure that happened before any response was read.
func Transport(err error) *Error {
	return &Error{Payload: NoPayload{}, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "api error"
	}
	if e.Err != nil {
		return fmt.Sprintf("api error: %v", e.Err)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, Resolve(e))
}

func (e *Error) Unwrap() error { return e.Err }

// Resolve returns the user-facing message for e. It never returns "".
func Resolve(e *Error) string {
	if e == nil {
		return MsgUnexpected
	}

	switch p := e.Payload.(type) {
	case MessagePayload:
		if p.Message != "" {
			return p.Message
		}
	case TextPayload:
		if p.Text != "" {
			return p.Text
		}
	case FieldsPayload:
		if len(p.Fields) > 0 {
			return p.Joined()
		}
	case NoPayload, nil:
	}

	switch e.Status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgInternal
	default:
		return MsgUnexpected
	}
}

// Message resolves any error. Errors that do not wrap an *Error, including
// nil, get the generic fallback.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return Resolve(e)
	}
	return MsgUnexpected
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Status
	}
	return 0
}
