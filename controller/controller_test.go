package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vortex-fintech/agenda/apierror"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/toast"
)

type fakeAPI struct {
	contacts []contact.Contact
	err      error

	created []contact.Contact
	updated map[int64]contact.Contact
	removed []int64
	calls   int
}

func (f *fakeAPI) List(context.Context) ([]contact.Contact, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]contact.Contact(nil), f.contacts...), nil
}

func (f *fakeAPI) Get(_ context.Context, id int64) (contact.Contact, error) {
	f.calls++
	if f.err != nil {
		return contact.Contact{}, f.err
	}
	if i := contact.IndexByID(f.contacts, id); i >= 0 {
		return f.contacts[i], nil
	}
	return contact.Contact{}, apierror.New(http.StatusNotFound, nil)
}

func (f *fakeAPI) Create(_ context.Context, c contact.Contact) (contact.Contact, error) {
	f.calls++
	if f.err != nil {
		return contact.Contact{}, f.err
	}
	c.ID = int64(len(f.contacts) + 1)
	f.created = append(f.created, c)
	f.contacts = append(f.contacts, c)
	return c, nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, c contact.Contact) (contact.Contact, error) {
	f.calls++
	if f.err != nil {
		return contact.Contact{}, f.err
	}
	if f.updated == nil {
		f.updated = make(map[int64]contact.Contact)
	}
	c.ID = id
	f.updated[id] = c
	return c, nil
}

func (f *fakeAPI) Deactivate(_ context.Context, id int64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeAPI) ToggleFavorite(_ context.Context, id int64) (contact.Contact, error) {
	f.calls++
	if f.err != nil {
		return contact.Contact{}, f.err
	}
	i := contact.IndexByID(f.contacts, id)
	f.contacts[i].Favorite = !f.contacts[i].Favorite
	return f.contacts[i], nil
}

func seed() []contact.Contact {
	return []contact.Contact{
		{ID: 1, Name: "João Silva", Mobile: "11987654321", Email: "joao@email.com", Favorite: true, Active: true},
		{ID: 2, Name: "Maria Santos", Mobile: "11976543210", Landline: "1133334444", Active: true},
		{ID: 3, Name: "Pedro Costa", Mobile: "21912345678", Favorite: true, Active: true},
	}
}

func newRecorder() (*toast.Recorder, *toast.Service) {
	rec := &toast.Recorder{}
	return rec, toast.NewService(rec)
}

func lastToast(t *testing.T, rec *toast.Recorder) toast.Toast {
	t.Helper()
	ts, ok := rec.Last()
	require.True(t, ok, "no toast recorded")
	return ts
}

var ctx = context.Background()
