package views

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophportal/internal/client/asyncop"
	"github.com/dmitrijs2005/gophportal/internal/client/models"
	"github.com/dmitrijs2005/gophportal/internal/client/services"
)

// Registration form fields, in display order.
const (
	FieldDocumentNumber   = "document_number"
	FieldName             = "name"
	FieldPaternalLastname = "paternal_lastname"
	FieldMaternalLastname = "maternal_lastname"
	FieldPhone            = "phone"
	FieldUserName         = "user_name"
)

var RegisterFields = []string{
	FieldDocumentNumber,
	FieldName,
	FieldPaternalLastname,
	FieldMaternalLastname,
	FieldEmail,
	FieldPhone,
	FieldUserName,
	FieldPassword,
}

const (
	DefaultDocumentTypeID = 1
	DefaultCountryID      = 179
	DefaultRedirectDelay  = 2 * time.Second
)

// RegisterOptions configures a RegisterPage. Zero values take the defaults.
type RegisterOptions struct {
	DocumentTypeID int
	CountryID      int
	RedirectDelay  time.Duration
	Scheduler      Scheduler
}

// RegisterPage is the registration form. After a successful submit it shows
// the success view and opens the login page once RedirectDelay has passed.
type RegisterPage struct {
	auth services.AuthService
	nav  Navigator
	op   *asyncop.Operation
	opts RegisterOptions

	mu        sync.Mutex
	form      models.Registration
	succeeded bool
	redirect  Timer
}

func NewRegisterPage(auth services.AuthService, nav Navigator, opts RegisterOptions) *RegisterPage {
	if opts.DocumentTypeID == 0 {
		opts.DocumentTypeID = DefaultDocumentTypeID
	}
	if opts.CountryID == 0 {
		opts.CountryID = DefaultCountryID
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}
	if opts.Scheduler == nil {
		opts.Scheduler = SystemScheduler()
	}
	return &RegisterPage{
		auth: auth,
		nav:  nav,
		op:   asyncop.New("registration failed"),
		opts: opts,
		form: models.Registration{
			DocumentTypeID: opts.DocumentTypeID,
			CountryID:      opts.CountryID,
		},
	}
}

func (p *RegisterPage) Operation() *asyncop.Operation { return p.op }

// Form returns a copy of the current field values.
func (p *RegisterPage) Form() models.Registration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

// Succeeded reports whether the success view is showing.
func (p *RegisterPage) Succeeded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.succeeded
}

// SetField updates a field and clears the previous error.
func (p *RegisterPage) SetField(name, value string) error {
	p.mu.Lock()
	f := &p.form
	switch name {
	case FieldDocumentNumber:
		f.DocumentNumber = value
	case FieldName:
		f.Name = value
	case FieldPaternalLastname:
		f.PaternalLastname = value
	case FieldMaternalLastname:
		f.MaternalLastname = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldUserName:
		f.UserName = value
	case FieldPassword:
		f.Password = value
	default:
		p.mu.Unlock()
		return fmt.Errorf("unknown registration field %q", name)
	}
	p.mu.Unlock()

	if !p.op.Busy() {
		p.op.Reset()
	}
	return nil
}

// Validate checks the form the way the server expects it: every field
// present, a well-formed email and a password of MinPasswordLength or more.
func (p *RegisterPage) Validate() error {
	f := p.Form()

	values := map[string]string{
		FieldDocumentNumber:   f.DocumentNumber,
		FieldName:             f.Name,
		FieldPaternalLastname: f.PaternalLastname,
		FieldMaternalLastname: f.MaternalLastname,
		FieldEmail:            f.Email,
		FieldPhone:            f.Phone,
		FieldUserName:         f.UserName,
		FieldPassword:         f.Password,
	}
	for _, name := range RegisterFields {
		if err := required(name, values[name]); err != nil {
			return err
		}
	}
	if err := validEmail(FieldEmail, f.Email); err != nil {
		return err
	}
	return minLength(FieldPassword, f.Password, MinPasswordLength)
}

// Submit validates and sends the form. Invalid forms fail with a
// *ValidationError and send nothing. While a submit is in flight another one
// fails with asyncop.ErrBusy.
func (p *RegisterPage) Submit(ctx context.Context) error {
	if err := asyncop.Run(ctx, p.op, func(ctx context.Context) error {
		if err := p.Validate(); err != nil {
			return err
		}
		return p.auth.Register(ctx, p.Form())
	}); err != nil {
		return err
	}

	p.mu.Lock()
	p.succeeded = true
	if p.redirect != nil {
		p.redirect.Stop()
	}
	p.redirect = p.opts.Scheduler.AfterFunc(p.opts.RedirectDelay, func() {
		p.nav.Navigate(RouteLogin)
	})
	p.mu.Unlock()
	return nil
}

// RedirectDelay is how long the success view stays before the login page.
func (p *RegisterPage) RedirectDelay() time.Duration { return p.opts.RedirectDelay }

// Close cancels a pending redirect.
func (p *RegisterPage) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.redirect != nil {
		p.redirect.Stop()
		p.redirect = nil
	}
}
