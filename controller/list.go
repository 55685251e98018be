package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/vortex-fintech/agenda/apierror"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/phone"
	"github.com/vortex-fintech/agenda/toast"
)

const favoritesSegment = "favoritos"

// List is the contact list screen. It is not safe for concurrent use.
type List struct {
	api    Contacts
	toasts *toast.Service
	log    logger.LoggerInterface

	contacts []contact.Contact
	filtered []contact.Contact
	filter   contact.FilterState
	loading  bool
}

// NewList builds the list screen for route. A route with a "favoritos"
// segment starts with the favorites filter on.
func NewList(api Contacts, ts *toast.Service, route string, opts ...Option) *List {
	o := buildOptions(opts)
	return &List{
		api:    api,
		toasts: orNop(ts),
		log:    o.log.With("screen", "list"),
		filter: contact.FilterState{FavoritesOnly: hasSegment(route, favoritesSegment)},
	}
}

func hasSegment(route, seg string) bool {
	for _, s := range strings.Split(route, "/") {
		if s == seg {
			return true
		}
	}
	return false
}

func (l *List) Contacts() []contact.Contact { return l.contacts }
func (l *List) Filtered() []contact.Contact { return l.filtered }
func (l *List) Filter() contact.FilterState { return l.filter }
func (l *List) Loading() bool               { return l.loading }

// Load fetches the active contacts and applies the current filter. On
// failure the previous contacts are kept.
func (l *List) Load(ctx context.Context) error {
	l.loading = true
	defer func() { l.loading = false }()

	list, err := l.api.List(ctx)
	if err != nil {
		l.fail(ctx, "Erro ao carregar contatos: ", err)
		return err
	}
	l.contacts = list
	l.Apply()
	return nil
}

// Apply recomputes the visible contacts.
func (l *List) Apply() {
	l.filtered = contact.Filter(l.contacts, l.filter)
}

func (l *List) SetSearch(term string) {
	l.filter.SearchTerm = term
	l.Apply()
}

func (l *List) ClearSearch() { l.SetSearch("") }

func (l *List) ToggleFavoritesFilter() {
	l.filter.FavoritesOnly = !l.filter.FavoritesOnly
	l.Apply()
}

// ToggleFavorite flips the favorite flag of c in the backend and replaces
// the cached record with the answer. Unsaved contacts are ignored.
func (l *List) ToggleFavorite(ctx context.Context, c contact.Contact) error {
	if !c.Persisted() {
		return nil
	}
	updated, err := l.api.ToggleFavorite(ctx, c.ID)
	if err != nil {
		l.fail(ctx, "Erro ao alternar favorito: ", err)
		return err
	}

	i := contact.IndexByID(l.contacts, c.ID)
	if i < 0 {
		return nil
	}
	l.contacts[i] = updated
	l.Apply()
	if updated.Favorite {
		l.toasts.Success(fmt.Sprintf(`"%s" adicionado aos favoritos`, updated.Name))
	} else {
		l.toasts.Success(fmt.Sprintf(`"%s" removido dos favoritos`, updated.Name))
	}
	return nil
}

// Deactivate asks for confirmation, soft-deletes c and drops it from the
// list. A declined confirmation does nothing; a nil confirm skips the
// question.
func (l *List) Deactivate(ctx context.Context, c contact.Contact, confirm Confirmer) error {
	if !c.Persisted() {
		return nil
	}
	if confirm != nil && !confirm.Confirm(fmt.Sprintf(`Deseja realmente inativar o contato "%s"?`, c.Name)) {
		return nil
	}
	if err := l.api.Deactivate(ctx, c.ID); err != nil {
		l.fail(ctx, "Erro ao inativar contato: ", err)
		return err
	}
	l.contacts = contact.Without(l.contacts, c.ID)
	l.Apply()
	l.toasts.Success(fmt.Sprintf(`Contato "%s" inativado com sucesso`, c.Name))
	return nil
}

func (l *List) fail(ctx context.Context, prefix string, err error) {
	l.log.WarnwCtx(ctx, "contact action failed", "err", err, "status", apierror.StatusOf(err))
	l.toasts.Error(prefix + apierror.Message(err))
}

func FormatMobile(s string) string   { return phone.FormatMobile(s) }
func FormatLandline(s string) string { return phone.FormatLandline(s) }
