package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gamezone/internal/client/models"
	"github.com/dmitrijs2005/gamezone/internal/common"
)

// getPassword is an indirection used to facilitate testing.
var getPassword = GetPassword

var (
	errNotLoggedIn = errors.New("not logged in")
	errRejected    = errors.New("rejected")
)

func (a *App) printFormErrors(e models.FormErrors) {
	for _, f := range []struct{ label, msg string }{
		{"Nombre", e.Name},
		{"Correo", e.Email},
		{"Clave", e.Password},
		{"Dirección", e.Address},
		{"Gustos", e.Interests},
	} {
		if f.msg != "" {
			a.printf("  %s: %s\n", f.label, f.msg)
		}
	}
}

func (a *App) readPassword() (string, error) {
	pw, err := getPassword(a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func (a *App) readInterests(prompt string) error {
	tags, err := GetList(a.reader, prompt+" ("+strings.Join(models.InterestCatalog, ", ")+")", a.out)
	if err != nil {
		return err
	}
	for _, t := range a.user.State().Form.Interests {
		a.user.ToggleInterest(t, false)
	}
	for _, t := range tags {
		a.user.ToggleInterest(t, true)
	}
	return nil
}

// Register prompts for every form field and creates the account.
func (a *App) Register(ctx context.Context) error {
	a.user.ResetForm()

	for _, f := range []struct {
		prompt string
		set    func(string)
	}{
		{"Nombre", a.user.SetName},
		{"Correo", a.user.SetEmail},
	} {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		f.set(v)
	}

	pw, err := a.readPassword()
	if err != nil {
		return err
	}
	a.user.SetPassword(pw)

	addr, err := GetSimpleText(a.reader, "Dirección", a.out)
	if err != nil {
		return err
	}
	a.user.SetAddress(addr)

	if err := a.readInterests("Gustos"); err != nil {
		return err
	}

	img, err := GetSimpleText(a.reader, "Imagen de perfil (ruta o URL, opcional)", a.out)
	if err != nil {
		return err
	}
	a.user.SetImage(img)

	terms, err := GetYesNo(a.reader, "¿Acepta los términos y condiciones?", a.out)
	if err != nil {
		return err
	}
	if !terms {
		a.println("Debe aceptar los términos para registrarse.")
		return errRejected
	}
	a.user.SetAcceptedTerms(true)

	if !a.user.Register(ctx) {
		a.println("No se pudo registrar:")
		a.printFormErrors(a.user.State().Form.Errors)
		return errRejected
	}
	a.user.ResetRegisterOK()
	a.println("¡Registro exitoso!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Correo", a.out)
	if err != nil {
		return err
	}
	pw, err := a.readPassword()
	if err != nil {
		return err
	}

	if !a.user.Login(ctx, email, pw) {
		a.printFormErrors(a.user.State().Form.Errors)
		return errRejected
	}
	a.user.ResetLoginOK()

	st := a.user.State()
	if st.Offline {
		a.printf("Bienvenido, %s (modo sin conexión)\n", st.Form.Name)
	} else {
		a.printf("Bienvenido, %s\n", st.Form.Name)
	}
	return nil
}

func (a *App) Logout(_ context.Context) error {
	a.user.Logout()
	a.println("Sesión cerrada.")
	return nil
}

func (a *App) currentID() (int64, bool) {
	st := a.user.State()
	if st.CurrentUserID == nil {
		a.println("Debe iniciar sesión.")
		return 0, false
	}
	return *st.CurrentUserID, true
}

// Profile reloads and prints the current user.
func (a *App) Profile(ctx context.Context) error {
	id, ok := a.currentID()
	if !ok {
		return errNotLoggedIn
	}
	a.user.Load(ctx, id)

	f := a.user.State().Form
	a.printf("Nombre:    %s\n", f.Name)
	a.printf("Correo:    %s\n", f.Email)
	a.printf("Dirección: %s\n", f.Address)
	a.printf("Gustos:    %s\n", strings.Join(f.Interests, ", "))
	if f.Image != nil {
		a.printf("Imagen:    %s\n", *f.Image)
	}
	return nil
}

// Edit prompts for new profile values; empty answers keep the current ones.
func (a *App) Edit(ctx context.Context) error {
	if _, ok := a.currentID(); !ok {
		return errNotLoggedIn
	}
	f := a.user.State().Form

	name, err := GetWithDefault(a.reader, "Nombre", f.Name, a.out)
	if err != nil {
		return err
	}
	a.user.SetName(name)

	addr, err := GetWithDefault(a.reader, "Dirección", f.Address, a.out)
	if err != nil {
		return err
	}
	a.user.SetAddress(addr)

	change, err := GetYesNo(a.reader, "¿Cambiar contraseña?", a.out)
	if err != nil {
		return err
	}
	if change {
		pw, err := a.readPassword()
		if err != nil {
			return err
		}
		a.user.SetPassword(pw)
	} else {
		a.user.SetPassword("")
	}

	tags, err := GetList(a.reader, "Gustos ["+strings.Join(f.Interests, ", ")+"]", a.out)
	if err != nil {
		return err
	}
	if len(tags) > 0 {
		for _, t := range f.Interests {
			a.user.ToggleInterest(t, false)
		}
		for _, t := range tags {
			a.user.ToggleInterest(t, true)
		}
	}

	if !a.user.Update(ctx) {
		a.println("No se pudo actualizar:")
		a.printFormErrors(a.user.State().Form.Errors)
		return errRejected
	}
	a.println("Perfil actualizado.")
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if _, ok := a.currentID(); !ok {
		return errNotLoggedIn
	}
	sure, err := GetYesNo(a.reader, "¿Eliminar la cuenta definitivamente?", a.out)
	if err != nil {
		return err
	}
	if !sure {
		return nil
	}
	if !a.user.DeleteAccount(ctx) {
		a.println(a.user.State().Error)
		return errRejected
	}
	a.println("Cuenta eliminada.")
	return nil
}

// Active prints or sets the persisted active flag ("on" or "off"); "reset"
// drops every stored preference.
func (a *App) Active(ctx context.Context, arg string) error {
	switch strings.ToLower(arg) {
	case "":
	case "on":
		if err := a.settings.SetActive(ctx, true); err != nil {
			return err
		}
	case "off":
		if err := a.settings.SetActive(ctx, false); err != nil {
			return err
		}
	case "reset":
		if err := a.settings.Reset(ctx); err != nil {
			return err
		}
	default:
		a.println("Uso: active [on|off|reset]")
		return errRejected
	}

	v, err := a.settings.Active(ctx)
	if err != nil {
		return err
	}
	if v {
		a.println("Estado: activo")
	} else {
		a.println("Estado: inactivo")
	}
	return nil
}
