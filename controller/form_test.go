package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vortex-fintech/agenda/apierror"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/toast"
)

type routes []string

func (r *routes) Navigate(route string) { *r = append(*r, route) }

func TestForm_CreateFlow(t *testing.T) {
	rec, ts := newRecorder()
	api := &fakeAPI{}
	var nav routes
	f := NewForm(api, ts, &nav)

	view, err := f.Open(ctx, 0)
	require.NoError(t, err)
	require.False(t, f.Editing())
	require.True(t, view.Active)
	require.Zero(t, api.calls)

	f.Model().Name = "Ana Lima"
	require.Equal(t, "11 9 8765 4321", f.TypeMobile("11987654321"))
	require.Equal(t, "11 3333", f.TypeLandline("113333"))
	require.Equal(t, "11 3333 4444", f.TypeLandline("1133334444"))

	errs, err := f.Submit(ctx)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Len(t, api.created, 1)
	assert.Equal(t, contact.Contact{ID: 1, Name: "Ana Lima", Mobile: "11987654321", Landline: "1133334444", Active: true}, api.created[0])

	got := lastToast(t, rec)
	require.Equal(t, toast.Success, got.Level)
	require.Equal(t, "Contato criado com sucesso!", got.Message)
	require.Equal(t, routes{RouteList}, nav)
}

func TestForm_InvalidSubmitMarksFields(t *testing.T) {
	rec, ts := newRecorder()
	api := &fakeAPI{}
	var nav routes
	f := NewForm(api, ts, &nav)
	_, _ = f.Open(ctx, 0)

	require.Empty(t, f.FieldError(contact.FieldName))

	f.TypeMobile("1198")
	errs, err := f.Submit(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		contact.FieldName:   "Este campo é obrigatório",
		contact.FieldMobile: "Celular deve ter 11 dígitos (ex: 11999999999)",
	}, errs)
	require.Equal(t, "Este campo é obrigatório", f.FieldError(contact.FieldName))
	require.Empty(t, f.FieldError(contact.FieldLandline))
	require.Zero(t, api.calls)
	require.Empty(t, rec.Toasts())
	require.Empty(t, nav)
}

func TestForm_EditFlow(t *testing.T) {
	rec, ts := newRecorder()
	api := &fakeAPI{contacts: seed()}
	var nav routes
	f := NewForm(api, ts, &nav)

	view, err := f.Open(ctx, 2)
	require.NoError(t, err)
	require.True(t, f.Editing())
	require.Equal(t, FormView{
		Name:     "Maria Santos",
		Mobile:   "11 9 7654 3210",
		Landline: "11 3333 4444",
		Active:   true,
	}, view)

	f.Model().Email = "maria@email.com"
	errs, err := f.Submit(ctx)
	require.NoError(t, err)
	require.Nil(t, errs)
	require.Equal(t, "maria@email.com", api.updated[2].Email)
	require.Equal(t, "11976543210", api.updated[2].Mobile)
	require.Equal(t, "Contato atualizado com sucesso!", lastToast(t, rec).Message)
	require.Equal(t, routes{RouteList}, nav)
}

func TestForm_OpenFailure(t *testing.T) {
	rec, ts := newRecorder()
	core, logs := observer.New(zap.DebugLevel)
	api := &fakeAPI{}
	f := NewForm(api, ts, nil, WithLogger(logger.FromZap(zap.New(core))))

	_, err := f.Open(ctx, 99)
	require.Error(t, err)
	require.False(t, f.Loading())
	require.Equal(t, "Erro ao carregar contato: Contato não encontrado.", lastToast(t, rec).Message)

	entries := logs.FilterMessage("contact form failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "form", entries[0].ContextMap()["screen"])
}

func TestForm_SubmitFailureStays(t *testing.T) {
	tests := []struct {
		name   string
		id     int64
		prefix string
	}{
		{"create", 0, "Erro ao criar contato: "},
		{"update", 1, "Erro ao atualizar contato: "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, ts := newRecorder()
			api := &fakeAPI{contacts: seed()}
			var nav routes
			f := NewForm(api, ts, &nav)
			_, err := f.Open(ctx, tc.id)
			require.NoError(t, err)
			f.Model().Name = "Outro"
			f.TypeMobile("11987654321")

			api.err = apierror.New(http.StatusBadRequest, apierror.FieldsPayload{Fields: []apierror.FieldMessage{
				{Field: "celular", Message: "Celular deve ter 11 dígitos"},
			}})
			_, err = f.Submit(ctx)
			require.Error(t, err)
			require.Equal(t, tc.prefix+"Celular deve ter 11 dígitos", lastToast(t, rec).Message)
			require.Empty(t, nav)
			require.False(t, f.Loading())
		})
	}
}

func TestForm_Cancel(t *testing.T) {
	var got []string
	f := NewForm(&fakeAPI{}, nil, NavigateFunc(func(r string) { got = append(got, r) }))
	f.Cancel()
	require.Equal(t, []string{RouteList}, got)
}
