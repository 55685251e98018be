package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/timeutil"
)

// Memory is a Repository over a map.
type Memory struct {
	mu     sync.RWMutex
	rows   map[int64]contact.Contact
	nextID int64
	clock  timeutil.Clock
}

type MemoryOption func(*Memory)

// WithClock sets the source of creation timestamps.
func WithClock(c timeutil.Clock) MemoryOption {
	return func(m *Memory) {
		if c != nil {
			m.clock = c
		}
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{rows: make(map[int64]contact.Contact), nextID: 1, clock: timeutil.Default}
	for _, o := range opts {
		o(m)
	}
	return m
}

// memView is Memory without locking; the caller holds the lock.
type memView struct{ m *Memory }

func (m *Memory) FindByID(ctx context.Context, id int64) (contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.FindByID(ctx, id)
}

func (m *Memory) FindByMobile(ctx context.Context, mobile string) (contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.FindByMobile(ctx, mobile)
}

func (m *Memory) FindByMobileExcludingID(ctx context.Context, mobile string, id int64) (contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.FindByMobileExcludingID(ctx, mobile, id)
}

func (m *Memory) ListActive(ctx context.Context) ([]contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.ListActive(ctx)
}

func (m *Memory) ListFavorites(ctx context.Context) ([]contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.ListFavorites(ctx)
}

func (m *Memory) Search(ctx context.Context, term string) ([]contact.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return memView{m}.Search(ctx, term)
}

func (m *Memory) Save(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memView{m}.Save(ctx, c)
}

// InTx holds the write lock for the whole of fn. Writes made before fn
// fails are undone.
func (m *Memory) InTx(ctx context.Context, fn func(Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[int64]contact.Contact, len(m.rows))
	for k, v := range m.rows {
		snapshot[k] = v
	}
	nextID := m.nextID

	if err := fn(memView{m}); err != nil {
		m.rows, m.nextID = snapshot, nextID
		return err
	}
	return nil
}

func (v memView) FindByID(_ context.Context, id int64) (contact.Contact, error) {
	c, ok := v.m.rows[id]
	if !ok {
		return contact.Contact{}, ErrNotFound
	}
	return c, nil
}

func (v memView) FindByMobile(ctx context.Context, mobile string) (contact.Contact, error) {
	return v.FindByMobileExcludingID(ctx, mobile, 0)
}

func (v memView) FindByMobileExcludingID(_ context.Context, mobile string, id int64) (contact.Contact, error) {
	for _, c := range v.m.rows {
		if c.Mobile == mobile && c.ID != id {
			return c, nil
		}
	}
	return contact.Contact{}, ErrNotFound
}

func (v memView) ListActive(_ context.Context) ([]contact.Contact, error) {
	return v.collect(func(c contact.Contact) bool { return c.Active }), nil
}

func (v memView) ListFavorites(_ context.Context) ([]contact.Contact, error) {
	return v.collect(func(c contact.Contact) bool { return c.Active && c.Favorite }), nil
}

func (v memView) Search(_ context.Context, term string) ([]contact.Contact, error) {
	lower := strings.ToLower(term)
	return v.collect(func(c contact.Contact) bool {
		return c.Active && (strings.Contains(strings.ToLower(c.Name), lower) || strings.Contains(c.Mobile, term))
	}), nil
}

func (v memView) Save(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	if _, err := v.FindByMobileExcludingID(ctx, c.Mobile, c.ID); err == nil {
		return contact.Contact{}, ErrDuplicateMobile
	}

	if c.ID == 0 {
		c.ID = v.m.nextID
		v.m.nextID++
		created := timeutil.TruncateMicros(v.m.clock.Now())
		c.CreatedAt = &created
		v.m.rows[c.ID] = c
		return c, nil
	}

	prev, ok := v.m.rows[c.ID]
	if !ok {
		return contact.Contact{}, ErrNotFound
	}
	c.CreatedAt = prev.CreatedAt
	v.m.rows[c.ID] = c
	return c, nil
}

func (v memView) InTx(_ context.Context, fn func(Repository) error) error {
	return fn(v)
}

func (v memView) collect(keep func(contact.Contact) bool) []contact.Contact {
	out := make([]contact.Contact, 0, len(v.m.rows))
	for _, c := range v.m.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
