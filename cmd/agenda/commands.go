package main

import (
	"fmt"

	"github.com/vortex-fintech/agenda/contact"
	"github.com/vortex-fintech/agenda/controller"
)

type ListCmd struct {
	Favorites bool   `help:"Only favorites." short:"f"`
	Search    string `help:"Filter by name, phone or email." short:"s"`
}

func (c *ListCmd) Run(a *app) error {
	route := controller.RouteList
	if c.Favorites {
		route += "/favoritos"
	}
	l := controller.NewList(a.api, a.toasts, route)
	if err := l.Load(a.ctx); err != nil {
		return reported(err)
	}
	l.SetSearch(c.Search)
	renderTable(a.out, l.Filtered(), a.styled)
	return nil
}

type ShowCmd struct {
	ID int64 `arg:"" help:"Contact ID."`
}

func (c *ShowCmd) Run(a *app) error {
	if err := checkID(c.ID); err != nil {
		return err
	}
	f := controller.NewForm(a.api, a.toasts, nil)
	v, err := f.Open(a.ctx, c.ID)
	if err != nil {
		return reported(err)
	}
	renderDetail(a.out, c.ID, v, a.styled)
	return nil
}

type AddCmd struct {
	Name     string `help:"Name." required:""`
	Mobile   string `help:"Mobile number, 11 digits; punctuation is ignored." required:""`
	Landline string `help:"Landline number, 10 digits."`
	Email    string `help:"Email address."`
	Favorite bool   `help:"Mark as favorite."`
}

func (c *AddCmd) Run(a *app) error {
	f := controller.NewForm(a.api, a.toasts, nil)
	if _, err := f.Open(a.ctx, 0); err != nil {
		return reported(err)
	}
	m := f.Model()
	m.Name = c.Name
	m.Email = c.Email
	m.Favorite = c.Favorite
	f.TypeMobile(c.Mobile)
	f.TypeLandline(c.Landline)
	return submit(a, f)
}

// EditCmd changes only the fields given on the command line.
type EditCmd struct {
	ID            int64  `arg:"" help:"Contact ID."`
	Name          string `help:"New name."`
	Mobile        string `help:"New mobile number."`
	Landline      string `help:"New landline number."`
	Email         string `help:"New email address."`
	ClearLandline bool   `help:"Remove the landline number."`
	ClearEmail    bool   `help:"Remove the email address."`
	Favorite      string `help:"Set the favorite flag." enum:"keep,yes,no" default:"keep"`
}

func (c *EditCmd) Run(a *app) error {
	if err := checkID(c.ID); err != nil {
		return err
	}
	f := controller.NewForm(a.api, a.toasts, nil)
	if _, err := f.Open(a.ctx, c.ID); err != nil {
		return reported(err)
	}
	m := f.Model()
	if c.Name != "" {
		m.Name = c.Name
	}
	if c.Mobile != "" {
		f.TypeMobile(c.Mobile)
	}
	switch {
	case c.ClearLandline:
		f.TypeLandline("")
	case c.Landline != "":
		f.TypeLandline(c.Landline)
	}
	switch {
	case c.ClearEmail:
		m.Email = ""
	case c.Email != "":
		m.Email = c.Email
	}
	switch c.Favorite {
	case "yes":
		m.Favorite = true
	case "no":
		m.Favorite = false
	}
	return submit(a, f)
}

func submit(a *app, f *controller.Form) error {
	invalid, err := f.Submit(a.ctx)
	if err != nil {
		return reported(err)
	}
	if len(invalid) == 0 {
		return nil
	}
	for _, field := range []string{contact.FieldName, contact.FieldEmail, contact.FieldMobile, contact.FieldLandline} {
		if msg := f.FieldError(field); msg != "" {
			_, _ = fmt.Fprintf(a.out, "%s: %s\n", contact.Label(field), msg)
		}
	}
	return reported(fmt.Errorf("%d invalid field(s)", len(invalid)))
}

type FavoriteCmd struct {
	ID int64 `arg:"" help:"Contact ID."`
}

func (c *FavoriteCmd) Run(a *app) error {
	l, target, err := loadOne(a, c.ID)
	if err != nil {
		return err
	}
	return reported(l.ToggleFavorite(a.ctx, target))
}

type DeactivateCmd struct {
	ID  int64 `arg:"" help:"Contact ID."`
	Yes bool  `help:"Do not ask for confirmation." short:"y"`
}

func (c *DeactivateCmd) Run(a *app) error {
	l, target, err := loadOne(a, c.ID)
	if err != nil {
		return err
	}
	var confirm controller.Confirmer = controller.ConfirmFunc(a.confirm)
	if c.Yes {
		confirm = nil
	}
	return reported(l.Deactivate(a.ctx, target, confirm))
}

// loadOne loads the active list and picks the contact with id from it, the
// way the list screen acts on a row.
func loadOne(a *app, id int64) (*controller.List, contact.Contact, error) {
	if err := checkID(id); err != nil {
		return nil, contact.Contact{}, err
	}
	l := controller.NewList(a.api, a.toasts, controller.RouteList)
	if err := l.Load(a.ctx); err != nil {
		return nil, contact.Contact{}, reported(err)
	}
	i := contact.IndexByID(l.Contacts(), id)
	if i < 0 {
		return nil, contact.Contact{}, fmt.Errorf("no active contact with id %d", id)
	}
	return l, l.Contacts()[i], nil
}

// checkID rejects ids no stored contact can have. An id of 0 would otherwise
// open the empty create form.
func checkID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid contact id %d", id)
	}
	return nil
}
