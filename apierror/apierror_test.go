package apierror

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Precedence(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message wins over status",
			err:  New(400, MessagePayload{Message: "Campo obrigatório: Nome"}),
			want: "Campo obrigatório: Nome",
		},
		{
			name: "message wins over 500",
			err:  New(500, MessagePayload{Message: "Já existe um contato cadastrado com este celular"}),
			want: "Já existe um contato cadastrado com este celular",
		},
		{
			name: "plain string body",
			err:  New(400, TextPayload{Text: "Erro ao alterar favorito"}),
			want: "Erro ao alterar favorito",
		},
		{
			name: "field map joined in order",
			err: New(400, FieldsPayload{Fields: []FieldMessage{
				{Field: "nome", Message: "Nome é obrigatório"},
				{Field: "celular", Message: "Celular é obrigatório"},
			}}),
			want: "Nome é obrigatório; Celular é obrigatório",
		},
		{name: "400 without payload", err: New(400, NoPayload{}), want: MsgBadRequest},
		{name: "404 without payload", err: New(404, nil), want: MsgNotFound},
		{name: "500 without payload", err: New(500, NoPayload{}), want: "Erro interno do servidor. Tente novamente mais tarde."},
		{name: "empty message falls through to status", err: New(404, MessagePayload{}), want: MsgNotFound},
		{name: "empty text falls through to status", err: New(500, TextPayload{}), want: MsgInternal},
		{name: "empty field map falls through to status", err: New(400, FieldsPayload{}), want: MsgBadRequest},
		{name: "unknown status", err: New(409, NoPayload{}), want: MsgUnexpected},
		{name: "no response", err: Transport(errors.New("connection refused")), want: MsgUnexpected},
		{name: "nil error", err: nil, want: MsgUnexpected},
		{name: "nil payload interface", err: &Error{Status: 404}, want: MsgNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.err))
		})
	}
}

func TestMessage_UnwrapsChains(t *testing.T) {
	base := New(404, MessagePayload{Message: "Contato não encontrado"})
	wrapped := fmt.Errorf("get contact 7: %w", base)

	assert.Equal(t, "Contato não encontrado", Message(wrapped))
	assert.Equal(t, 404, StatusOf(wrapped))
}

func TestMessage_NonAPIErrors(t *testing.T) {
	assert.Equal(t, MsgUnexpected, Message(nil))
	assert.Equal(t, MsgUnexpected, Message(errors.New("boom")))
	assert.Equal(t, MsgUnexpected, Message(context.DeadlineExceeded))
	assert.Equal(t, 0, StatusOf(errors.New("boom")))
}

func TestError_StringAndUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	e := Transport(cause)
	require.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "dial tcp: refused")

	e = New(500, NoPayload{})
	assert.Contains(t, e.Error(), "status 500")
	assert.Contains(t, e.Error(), MsgInternal)
}
