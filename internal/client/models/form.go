package models

import (
	"slices"
	"strings"
)

// InterestCatalog is the fixed set of interest tags a user may pick from.
var InterestCatalog = []string{
	"Consolas",
	"Juegos Físicos",
	"Accesorios Gaming",
	"Auriculares/Headsets",
	"Teclados y Ratones",
	"Sillas Gamer",
	"Monitores Gaming",
}

// IsKnownInterest reports whether tag belongs to InterestCatalog.
func IsKnownInterest(tag string) bool {
	return slices.Contains(InterestCatalog, tag)
}

// Validation messages shown next to form fields.
const (
	MsgRequired         = "Campo obligatorio"
	MsgInvalidEmail     = "Correo inválido"
	MsgShortPassword    = "La clave debe tener al menos 6 caracteres"
	MsgNoInterests      = "Seleccione al menos un gusto"
	MsgUnknownInterest  = "Gusto no válido"
	MsgEmailRequired    = "El correo es requerido"
	MsgPasswordRequired = "La contraseña es requerida"
	MsgPasswordMinLogin = "Mínimo 6 caracteres"
)

// MinPasswordLength applies to both registration and login.
const MinPasswordLength = 6

// FormErrors holds one message per field; an empty string means valid.
type FormErrors struct {
	Name      string
	Email     string
	Password  string
	Address   string
	Interests string
}

// Any reports whether at least one field has an error.
func (e FormErrors) Any() bool {
	return e != FormErrors{}
}

// UserForm is the editable draft behind the registration and profile screens.
type UserForm struct {
	Name          string
	Email         string
	Password      string
	Address       string
	AcceptedTerms bool
	Interests     []string
	Image         *string

	// PasswordHash is carried over from a loaded user so that an edit without
	// a new password keeps the stored one.
	PasswordHash string

	Errors FormErrors
}

// FormFromUser fills a draft from a stored user. The password field is left
// blank.
func FormFromUser(u User) UserForm {
	c := u.Clone()
	return UserForm{
		Name:          c.Name,
		Email:         c.Email,
		Address:       c.Address,
		AcceptedTerms: c.AcceptedTerms,
		Interests:     c.Interests,
		Image:         c.Image,
		PasswordHash:  c.PasswordHash,
	}
}

// ToUser builds the entity for id from the draft. Password hashing is the
// caller's job; the carried-over hash is copied as is.
func (f UserForm) ToUser(id int64) User {
	return User{
		ID:            id,
		Name:          f.Name,
		Email:         f.Email,
		PasswordHash:  f.PasswordHash,
		Address:       f.Address,
		AcceptedTerms: f.AcceptedTerms,
		Interests:     f.Interests,
		Image:         f.Image,
	}.Clone()
}

// ValidateForm evaluates every field rule against f and returns the complete
// error set.
func ValidateForm(f UserForm) FormErrors {
	var e FormErrors

	if strings.TrimSpace(f.Name) == "" {
		e.Name = MsgRequired
	}
	if !strings.Contains(f.Email, "@") {
		e.Email = MsgInvalidEmail
	}
	if !(f.Password == "" && f.PasswordHash != "") && len([]rune(f.Password)) < MinPasswordLength {
		e.Password = MsgShortPassword
	}
	if strings.TrimSpace(f.Address) == "" {
		e.Address = MsgRequired
	}

	switch {
	case len(f.Interests) == 0:
		e.Interests = MsgNoInterests
	case slices.ContainsFunc(f.Interests, func(t string) bool { return !IsKnownInterest(t) }):
		e.Interests = MsgUnknownInterest
	}

	return e
}

// ValidateLogin checks the login screen fields. Only Email and Password are
// ever set.
func ValidateLogin(email, password string) FormErrors {
	var e FormErrors

	switch {
	case strings.TrimSpace(email) == "":
		e.Email = MsgEmailRequired
	case !strings.Contains(email, "@"):
		e.Email = MsgInvalidEmail
	}

	switch {
	case strings.TrimSpace(password) == "":
		e.Password = MsgPasswordRequired
	case len([]rune(password)) < MinPasswordLength:
		e.Password = MsgPasswordMinLogin
	}

	return e
}
