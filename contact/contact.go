// Package contact holds the contact record, its validation rules and the
// in-memory list filter.
package contact

import (
	"time"

	"github.com/vortex-fintech/agenda/validator"
)

const (
	MaxNameLen  = 100
	MaxEmailLen = 255
)

// Contact is a contact record as exchanged with the backend. Mobile and
// Landline always hold raw digits.
type Contact struct {
	ID        int64      `json:"id,omitempty"`
	Name      string     `json:"nome" validate:"notblank,max=100"`
	Email     string     `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Mobile    string     `json:"celular" validate:"required,mobile"`
	Landline  string     `json:"telefone,omitempty" validate:"omitempty,landline"`
	Favorite  bool       `json:"favorito"`
	Active    bool       `json:"ativo"`
	CreatedAt *time.Time `json:"dataCadastro,omitempty"`
}

// New returns a contact with the record defaults: active, not a favorite.
func New(name, mobile string) Contact {
	return Contact{Name: name, Mobile: mobile, Active: true}
}

// Persisted reports whether the record already exists in the backend.
func (c Contact) Persisted() bool { return c.ID > 0 }

// Validate checks c against the record rules. Violations come back in
// field order.
func (c Contact) Validate() []validator.Violation {
	return validator.Check(c)
}

// IndexByID returns the position of the contact with id, or -1.
func IndexByID(list []Contact, id int64) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Without returns list minus the contact with id, as a new slice.
func Without(list []Contact, id int64) []Contact {
	out := make([]Contact, 0, len(list))
	for _, c := range list {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
