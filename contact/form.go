package contact

import (
	"github.com/vortex-fintech/agenda/phone"
)

// Form is the editable state behind the contact form. Mobile and Landline
// hold raw digits; display text is produced by the masker.
type Form struct {
	Name     string
	Email    string
	Mobile   string
	Landline string
	Favorite bool
	Active   bool

	touched map[string]bool
}

// NewForm returns an empty form with the record defaults.
func NewForm() *Form {
	return &Form{Active: true}
}

// Load replaces the form values with c and clears touched state.
func (f *Form) Load(c Contact) {
	f.Name = c.Name
	f.Email = c.Email
	f.Mobile = phone.Digits(c.Mobile)
	f.Landline = phone.Digits(c.Landline)
	f.Favorite = c.Favorite
	f.Active = c.Active
	f.touched = nil
}

// SetMobile runs raw input through the mobile mask, stores the digits and
// returns the text to display.
func (f *Form) SetMobile(raw string) string {
	display, digits := phone.MaskMobile(raw)
	f.Mobile = digits
	return display
}

// SetLandline is SetMobile for the landline field.
func (f *Form) SetLandline(raw string) string {
	display, digits := phone.MaskLandline(raw)
	f.Landline = digits
	return display
}

// Contact is the record the form would submit.
func (f *Form) Contact() Contact {
	return Contact{
		Name:     f.Name,
		Email:    f.Email,
		Mobile:   f.Mobile,
		Landline: f.Landline,
		Favorite: f.Favorite,
		Active:   f.Active,
	}
}

// Errors maps every invalid field to its form message.
func (f *Form) Errors() map[string]string {
	vs := f.Contact().Validate()
	if len(vs) == 0 {
		return nil
	}
	out := make(map[string]string, len(vs))
	for _, v := range vs {
		if _, ok := out[v.Field]; !ok {
			out[v.Field] = FormMessage(v)
		}
	}
	return out
}

func (f *Form) Valid() bool { return len(f.Contact().Validate()) == 0 }

func (f *Form) Touch(field string) {
	if f.touched == nil {
		f.touched = make(map[string]bool)
	}
	f.touched[field] = true
}

// TouchInvalid marks every invalid field as touched and returns the errors.
func (f *Form) TouchInvalid() map[string]string {
	errs := f.Errors()
	for field := range errs {
		f.Touch(field)
	}
	return errs
}

func (f *Form) Touched(field string) bool { return f.touched[field] }

// FieldError is the message shown under field: empty unless the field is
// both touched and invalid.
func (f *Form) FieldError(field string) string {
	if !f.Touched(field) {
		return ""
	}
	return f.Errors()[field]
}
