package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/timeutil"
)

func seed(t *testing.T, r Repository, list ...contact.Contact) []contact.Contact {
	t.Helper()
	out := make([]contact.Contact, 0, len(list))
	for _, c := range list {
		saved, err := r.Save(context.Background(), c)
		require.NoError(t, err)
		out = append(out, saved)
	}
	return out
}

func names(list []contact.Contact) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return out
}

func TestMemory_SaveAssignsIDAndTimestamp(t *testing.T) {
	m := NewMemory()
	saved := seed(t, m, contact.New("Maria", "11976543210"), contact.New("João", "11987654321"))

	assert.Equal(t, int64(1), saved[0].ID)
	assert.Equal(t, int64(2), saved[1].ID)
	require.NotNil(t, saved[0].CreatedAt)

	got, err := m.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, saved[1], got)
}

func TestMemory_UpdateKeepsCreatedAt(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 30, 0, 123456789, time.Local)
	clock := timeutil.NewFrozenClock(created)
	m := NewMemory(WithClock(clock))
	saved := seed(t, m, contact.New("Maria", "11976543210"))[0]
	require.Equal(t, timeutil.TruncateMicros(created), *saved.CreatedAt)
	clock.Advance(time.Hour)

	upd := saved
	upd.CreatedAt = nil
	upd.Name = "Maria Santos"
	got, err := m.Save(context.Background(), upd)
	require.NoError(t, err)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Maria Santos", got.Name)
}

func TestMemory_SaveUnknownID(t *testing.T) {
	m := NewMemory()
	c := contact.New("X", "11987654321")
	c.ID = 42
	_, err := m.Save(context.Background(), c)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_DuplicateMobile(t *testing.T) {
	m := NewMemory()
	seed(t, m, contact.New("Maria", "11976543210"))

	_, err := m.Save(context.Background(), contact.New("Outra", "11976543210"))
	assert.ErrorIs(t, err, ErrDuplicateMobile)
}

func TestMemory_FindByMobile(t *testing.T) {
	m := NewMemory()
	saved := seed(t, m, contact.New("Maria", "11976543210"))[0]
	ctx := context.Background()

	got, err := m.FindByMobile(ctx, "11976543210")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)

	_, err = m.FindByMobileExcludingID(ctx, "11976543210", saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.FindByMobile(ctx, "00000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Listings(t *testing.T) {
	m := NewMemory()
	fav := contact.New("Pedro Alves", "21988887777")
	fav.Favorite = true
	inactive := contact.New("Ana Inativa", "31999990000")
	inactive.Active = false
	inactiveFav := contact.New("Bruno", "41999990000")
	inactiveFav.Active, inactiveFav.Favorite = false, true
	seed(t, m, contact.New("Maria Santos", "11976543210"), fav, inactive, inactiveFav, contact.New("João Silva", "11987654321"))
	ctx := context.Background()

	active, err := m.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"João Silva", "Maria Santos", "Pedro Alves"}, names(active))

	favs, err := m.ListFavorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pedro Alves"}, names(favs))

	found, err := m.Search(ctx, "SANTOS")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria Santos"}, names(found))

	found, err = m.Search(ctx, "8888")
	require.NoError(t, err)
	assert.Equal(t, []string{"Pedro Alves"}, names(found))

	found, err = m.Search(ctx, "Ana")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMemory_InTxRollsBack(t *testing.T) {
	m := NewMemory()
	seed(t, m, contact.New("Maria", "11976543210"))
	boom := errors.New("boom")

	err := m.InTx(context.Background(), func(r Repository) error {
		if _, err := r.Save(context.Background(), contact.New("Temp", "11900000000")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := m.ListActive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria"}, names(all))

	next := seed(t, m, contact.New("Novo", "11911111111"))[0]
	assert.Equal(t, int64(2), next.ID)
}

func TestMemory_InTxCommits(t *testing.T) {
	m := NewMemory()
	err := m.InTx(context.Background(), func(r Repository) error {
		_, err := r.Save(context.Background(), contact.New("Maria", "11976543210"))
		return err
	})
	require.NoError(t, err)

	_, err = m.FindByID(context.Background(), 1)
	require.NoError(t, err)
}
