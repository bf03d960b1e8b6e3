// Package forms holds the HTML form bindings and their validation. Each
// form validates explicitly and returns field-level errors; uniqueness
// checks live in the store, not here.
package forms

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Errors indexes field-level messages by field name for template lookup.
type Errors map[string]string

func (e Errors) Any() bool { return len(e) > 0 }

type RegisterForm struct {
	Username        string `form:"username" validate:"required,min=2,max=20"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f *RegisterForm) Validate() Errors {
	return collect(validate.Struct(f), map[string]string{
		"Username":        "Username must be 2-20 characters.",
		"Email":           "A valid email address is required.",
		"Password":        "Password is required.",
		"ConfirmPassword": "Passwords must match.",
	})
}

type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
	Remember bool   `form:"remember"`
}

func (f *LoginForm) Validate() Errors {
	return collect(validate.Struct(f), map[string]string{
		"Email":    "A valid email address is required.",
		"Password": "Password is required.",
	})
}

type AccountForm struct {
	Username string `form:"username" validate:"required,min=2,max=20"`
	Email    string `form:"email" validate:"required,email"`
	// Optional password change; both must be present together
	OldPassword string `form:"old_password"`
	NewPassword string `form:"new_password"`
}

func (f *AccountForm) Validate() Errors {
	errs := collect(validate.Struct(f), map[string]string{
		"Username": "Username must be 2-20 characters.",
		"Email":    "A valid email address is required.",
	})
	if f.NewPassword != "" && f.OldPassword == "" {
		errs["OldPassword"] = "Current password is required to set a new one."
	}
	return errs
}

type PostForm struct {
	Title   string `form:"title" validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

func (f *PostForm) Validate() Errors {
	return collect(validate.Struct(f), map[string]string{
		"Title":   "Title is required and must be at most 100 characters.",
		"Content": "Content is required.",
	})
}

type ResetRequestForm struct {
	Email string `form:"email" validate:"required,email"`
}

func (f *ResetRequestForm) Validate() Errors {
	return collect(validate.Struct(f), map[string]string{
		"Email": "A valid email address is required.",
	})
}

type ResetPasswordForm struct {
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

func (f *ResetPasswordForm) Validate() Errors {
	return collect(validate.Struct(f), map[string]string{
		"Password":        "Password is required.",
		"ConfirmPassword": "Passwords must match.",
	})
}

// collect maps validator violations onto per-field messages.
func collect(err error, messages map[string]string) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["Form"] = "Invalid input."
		return errs
	}
	for _, ve := range verrs {
		if msg, ok := messages[ve.Field()]; ok {
			errs[ve.Field()] = msg
		} else {
			errs[ve.Field()] = "Invalid value."
		}
	}
	return errs
}
