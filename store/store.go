// Package store persists contacts. Memory backs tests and the zero-config
// server; Postgres backs production.
package store

import (
	"context"
	"errors"

	"github.com/vortex-fintech/agenda/contact"
)

var (
	ErrNotFound        = errors.New("store: contact not found")
	ErrDuplicateMobile = errors.New("store: mobile already registered")
)

// Reader covers the queries. Listings return active contacts ordered by
// name; FindBy* return ErrNotFound when nothing matches.
type Reader interface {
	FindByID(ctx context.Context, id int64) (contact.Contact, error)
	FindByMobile(ctx context.Context, mobile string) (contact.Contact, error)
	FindByMobileExcludingID(ctx context.Context, mobile string, id int64) (contact.Contact, error)
	ListActive(ctx context.Context) ([]contact.Contact, error)
	ListFavorites(ctx context.Context) ([]contact.Contact, error)
	// Search matches active contacts whose name contains term ignoring case
	// or whose mobile contains term.
	Search(ctx context.Context, term string) ([]contact.Contact, error)
}

type Writer interface {
	// Save inserts c when c.ID is zero and updates it otherwise. It fills
	// ID and CreatedAt on insert and returns ErrDuplicateMobile when the
	// mobile belongs to another record.
	Save(ctx context.Context, c contact.Contact) (contact.Contact, error)
}

type Repository interface {
	Reader
	Writer
	// InTx runs fn against a repository view whose reads and writes commit
	// or roll back together.
	InTx(ctx context.Context, fn func(Repository) error) error
}
