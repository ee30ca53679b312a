package storefront

import "regexp"

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

const minPasswordLen = 6

// Form field messages.
const (
	MsgNameRequired     = "El nombre es requerido"
	MsgEmailRequired    = "El correo electrónico es requerido"
	MsgEmailInvalid     = "Ingresa un correo electrónico válido"
	MsgPasswordRequired = "La contraseña es requerida"
	MsgPasswordShort    = "La contraseña debe tener al menos 6 caracteres"
	MsgConfirmRequired  = "Confirma tu contraseña"
	MsgPasswordMismatch = "Las contraseñas no coinciden"
)

// FormErrors maps a field name to its message. Empty means valid.
type FormErrors map[string]string

func (f FormErrors) Valid() bool { return len(f) == 0 }

func ValidateLoginForm(email, password string) FormErrors {
	errs := FormErrors{}
	checkEmail(errs, email)
	checkPassword(errs, password)
	return errs
}

func ValidateRegisterForm(name, email, password, confirm string) FormErrors {
	errs := FormErrors{}
	if name == "" {
		errs["name"] = MsgNameRequired
	}
	checkEmail(errs, email)
	checkPassword(errs, password)
	switch {
	case confirm == "":
		errs["confirmPassword"] = MsgConfirmRequired
	case confirm != password:
		errs["confirmPassword"] = MsgPasswordMismatch
	}
	return errs
}

func checkEmail(errs FormErrors, email string) {
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs["email"] = MsgEmailInvalid
	}
}

func checkPassword(errs FormErrors, password string) {
	switch {
	case password == "":
		errs["password"] = MsgPasswordRequired
	case len([]rune(password)) < minPasswordLen:
		errs["password"] = MsgPasswordShort
	}
}
