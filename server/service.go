// Package server is the contact backend: business rules over a store and
// the REST API that exposes them.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/vortex-fintech/agenda/contact"
	errs "github.com/vortex-fintech/agenda/errors"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/logutil"
	"github.com/vortex-fintech/agenda/metrics"
	"github.com/vortex-fintech/agenda/store"
)

const (
	MsgNotFound        = "Contato não encontrado"
	MsgDuplicateMobile = "Já existe um contato cadastrado com este celular"
	MsgDuplicateOther  = "Já existe outro contato cadastrado com este celular"
)

// Input is a create or update request body. Nil flags mean "not sent".
type Input struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Mobile   string `json:"celular"`
	Landline string `json:"telefone"`
	Favorite *bool  `json:"favorito"`
	Active   *bool  `json:"ativo"`
}

// Contact builds the record a create would store: favorite defaults to
// false and active to true.
func (in Input) Contact() contact.Contact {
	c := contact.New(in.Name, in.Mobile)
	c.Email = in.Email
	c.Landline = in.Landline
	if in.Favorite != nil {
		c.Favorite = *in.Favorite
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	return c
}

// applyTo copies the editable fields onto c; unsent flags keep their value.
func (in Input) applyTo(c contact.Contact) contact.Contact {
	c.Name = in.Name
	c.Email = in.Email
	c.Mobile = in.Mobile
	c.Landline = in.Landline
	if in.Favorite != nil {
		c.Favorite = *in.Favorite
	}
	if in.Active != nil {
		c.Active = *in.Active
	}
	return c
}

type Service struct {
	repo    store.Repository
	log     logger.LoggerInterface
	metrics *metrics.Collectors
}

func NewService(repo store.Repository, log logger.LoggerInterface, col *metrics.Collectors) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log, metrics: col}
}

func (s *Service) List(ctx context.Context) (_ []contact.Contact, err error) {
	defer s.observe("list", &err)
	s.log.InfowCtx(ctx, "listing active contacts")
	return s.repo.ListActive(ctx)
}

func (s *Service) Favorites(ctx context.Context) (_ []contact.Contact, err error) {
	defer s.observe("favorites", &err)
	s.log.InfowCtx(ctx, "listing favorite contacts")
	return s.repo.ListFavorites(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (_ contact.Contact, err error) {
	defer s.observe("get", &err)
	s.log.InfowCtx(ctx, "fetching contact", "id", id)
	return s.find(ctx, s.repo, id)
}

func (s *Service) Search(ctx context.Context, term string) (_ []contact.Contact, err error) {
	defer s.observe("search", &err)
	s.log.InfowCtx(ctx, "searching contacts", "term", logutil.MaskDigits(term))
	return s.repo.Search(ctx, term)
}

// Create validates in and stores a new contact. A mobile already in use is
// rejected.
func (s *Service) Create(ctx context.Context, in Input) (out contact.Contact, err error) {
	defer s.observe("create", &err)
	s.log.InfowCtx(ctx, "creating contact", "mobile", logutil.MaskDigits(in.Mobile), "email", logutil.MaskEmail(in.Email))

	c := in.Contact()
	if err := validate(c); err != nil {
		return contact.Contact{}, err
	}

	err = s.repo.InTx(ctx, func(r store.Repository) error {
		if _, err := r.FindByMobile(ctx, c.Mobile); err == nil {
			return errs.BadRequest("duplicate_mobile", MsgDuplicateMobile)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		saved, err := r.Save(ctx, c)
		if errors.Is(err, store.ErrDuplicateMobile) {
			return errs.BadRequest("duplicate_mobile", MsgDuplicateMobile)
		}
		out = saved
		return err
	})
	return out, err
}

// Update replaces the editable fields of contact id. Changing the mobile to
// one owned by another contact is rejected.
func (s *Service) Update(ctx context.Context, id int64, in Input) (out contact.Contact, err error) {
	defer s.observe("update", &err)
	s.log.InfowCtx(ctx, "updating contact", "id", id, "mobile", logutil.MaskDigits(in.Mobile))

	if err := validate(in.Contact()); err != nil {
		return contact.Contact{}, err
	}

	err = s.repo.InTx(ctx, func(r store.Repository) error {
		existing, err := s.find(ctx, r, id)
		if err != nil {
			return err
		}
		if existing.Mobile != in.Mobile {
			if _, err := r.FindByMobileExcludingID(ctx, in.Mobile, id); err == nil {
				return errs.BadRequest("duplicate_mobile", MsgDuplicateOther)
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}
		saved, err := r.Save(ctx, in.applyTo(existing))
		if errors.Is(err, store.ErrDuplicateMobile) {
			return errs.BadRequest("duplicate_mobile", MsgDuplicateOther)
		}
		out = saved
		return err
	})
	return out, err
}

// Deactivate is the soft delete: the record stays but leaves every listing.
func (s *Service) Deactivate(ctx context.Context, id int64) (err error) {
	defer s.observe("deactivate", &err)
	s.log.InfowCtx(ctx, "deactivating contact", "id", id)

	return s.repo.InTx(ctx, func(r store.Repository) error {
		c, err := s.find(ctx, r, id)
		if err != nil {
			return err
		}
		c.Active = false
		_, err = r.Save(ctx, c)
		return err
	})
}

func (s *Service) ToggleFavorite(ctx context.Context, id int64) (out contact.Contact, err error) {
	defer s.observe("toggle_favorite", &err)
	s.log.InfowCtx(ctx, "toggling favorite", "id", id)

	err = s.repo.InTx(ctx, func(r store.Repository) error {
		c, err := s.find(ctx, r, id)
		if err != nil {
			return err
		}
		c.Favorite = !c.Favorite
		out, err = r.Save(ctx, c)
		return err
	})
	return out, err
}

func (s *Service) find(ctx context.Context, r store.Reader, id int64) (contact.Contact, error) {
	c, err := r.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return contact.Contact{}, errs.BadRequest("not_found", MsgNotFound)
	}
	if err != nil {
		return contact.Contact{}, fmt.Errorf("find contact %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) observe(op string, err *error) {
	s.metrics.ObserveOperation(op, *err)
}

func validate(c contact.Contact) error {
	vs := c.Validate()
	if len(vs) == 0 {
		return nil
	}
	return errs.FromViolations(vs, contact.ServerMessage).WithMessage(contact.Summary(vs))
}
