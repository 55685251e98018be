// Package controller holds the list and form screen logic: it calls the
// backend, keeps view state and reports outcomes as toasts.
package controller

import (
	"context"

	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/toast"
)

// RouteList is where the form returns after save or cancel.
const RouteList = "/contatos"

// Contacts is the backend surface the controllers use. *client.Client
// implements it.
type Contacts interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Get(ctx context.Context, id int64) (contact.Contact, error)
	Create(ctx context.Context, c contact.Contact) (contact.Contact, error)
	Update(ctx context.Context, id int64, c contact.Contact) (contact.Contact, error)
	Deactivate(ctx context.Context, id int64) error
	ToggleFavorite(ctx context.Context, id int64) (contact.Contact, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// Navigator moves the user to another screen.
type Navigator interface {
	Navigate(route string)
}

type NavigateFunc func(route string)

func (f NavigateFunc) Navigate(route string) { f(route) }

type Option func(*options)

type options struct {
	log logger.LoggerInterface
}

func WithLogger(l logger.LoggerInterface) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.Nop()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func orNop(t *toast.Service) *toast.Service {
	if t == nil {
		return toast.NewService(nil)
	}
	return t
}
