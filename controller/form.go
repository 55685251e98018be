package controller

import (
	"context"

	"github.com/vortex-fintech/agenda/apierror"
	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/toast"
)

// FormView is what the form shows after loading a record. Phones are
// formatted for display.
type FormView struct {
	Name     string
	Email    string
	Mobile   string
	Landline string
	Favorite bool
	Active   bool
}

// Form is the create/edit screen. It is not safe for concurrent use.
type Form struct {
	api    Contacts
	toasts *toast.Service
	nav    Navigator
	log    logger.LoggerInterface

	model   *contact.Form
	id      int64
	loading bool
}

func NewForm(api Contacts, ts *toast.Service, nav Navigator, opts ...Option) *Form {
	o := buildOptions(opts)
	if nav == nil {
		nav = NavigateFunc(func(string) {})
	}
	return &Form{
		api:    api,
		toasts: orNop(ts),
		nav:    nav,
		log:    o.log.With("screen", "form"),
		model:  contact.NewForm(),
	}
}

// Model exposes the form values for plain text fields and flags.
func (f *Form) Model() *contact.Form { return f.model }
func (f *Form) Editing() bool        { return f.id > 0 }
func (f *Form) Loading() bool        { return f.loading }

func (f *Form) TypeMobile(raw string) string   { return f.model.SetMobile(raw) }
func (f *Form) TypeLandline(raw string) string { return f.model.SetLandline(raw) }

// Open prepares the form. id <= 0 opens an empty create form; otherwise
// the record is loaded for editing.
func (f *Form) Open(ctx context.Context, id int64) (FormView, error) {
	f.model = contact.NewForm()
	f.id = 0
	if id <= 0 {
		return f.view(), nil
	}

	f.id = id
	f.loading = true
	defer func() { f.loading = false }()

	c, err := f.api.Get(ctx, id)
	if err != nil {
		f.fail(ctx, "Erro ao carregar contato: ", err)
		return FormView{}, err
	}
	f.model.Load(c)
	return f.view(), nil
}

func (f *Form) view() FormView {
	return FormView{
		Name:     f.model.Name,
		Email:    f.model.Email,
		Mobile:   FormatMobile(f.model.Mobile),
		Landline: FormatLandline(f.model.Landline),
		Favorite: f.model.Favorite,
		Active:   f.model.Active,
	}
}

// Submit validates the form and saves it. An invalid form marks its bad
// fields as touched and returns their messages without calling the
// backend. On success the user is sent back to the list.
func (f *Form) Submit(ctx context.Context) (map[string]string, error) {
	if errs := f.model.TouchInvalid(); len(errs) > 0 {
		return errs, nil
	}

	f.loading = true
	defer func() { f.loading = false }()

	c := f.model.Contact()
	if f.Editing() {
		if _, err := f.api.Update(ctx, f.id, c); err != nil {
			f.fail(ctx, "Erro ao atualizar contato: ", err)
			return nil, err
		}
		f.toasts.Success("Contato atualizado com sucesso!")
	} else {
		if _, err := f.api.Create(ctx, c); err != nil {
			f.fail(ctx, "Erro ao criar contato: ", err)
			return nil, err
		}
		f.toasts.Success("Contato criado com sucesso!")
	}
	f.nav.Navigate(RouteList)
	return nil, nil
}

func (f *Form) Cancel() { f.nav.Navigate(RouteList) }

// FieldError is the message under field, shown only once it was touched.
func (f *Form) FieldError(field string) string { return f.model.FieldError(field) }

func (f *Form) fail(ctx context.Context, prefix string, err error) {
	f.log.WarnwCtx(ctx, "contact form failed", "id", f.id, "err", err, "status", apierror.StatusOf(err))
	f.toasts.Error(prefix + apierror.Message(err))
}
