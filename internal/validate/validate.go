// Package validate checks untrusted request fields before they reach the
// credential store. Every field is first extracted as a single primitive
// string, then run through schema validation, so operator-shaped input such
// as "email[$ne]" is rejected on shape alone and never becomes part of a
// store filter.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultPasswordMax is the historical upper bound on password length. It
// caps the work handed to bcrypt; raise it through config, not by deleting
// the bound.
const DefaultPasswordMax = 20

// FieldError reports which field failed and why. It never carries the
// submitted value, so rendering the error cannot reflect attacker input.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Validator applies the request schemas.
type Validator struct {
	check       *validator.Validate
	passwordMax int
}

func New(passwordMax int) *Validator {
	if passwordMax <= 0 {
		passwordMax = DefaultPasswordMax
	}
	return &Validator{check: validator.New(), passwordMax: passwordMax}
}

// SignupInput is a validated signup request.
type SignupInput struct {
	Name     string `validate:"required,min=1,max=50"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=1"`
}

func (v *Validator) Signup(form url.Values) (*SignupInput, error) {
	name, err := scalar(form, "name")
	if err != nil {
		return nil, err
	}
	email, err := scalar(form, "email")
	if err != nil {
		return nil, err
	}
	password, err := scalar(form, "password")
	if err != nil {
		return nil, err
	}
	in := &SignupInput{Name: name, Email: email, Password: password}
	if err := v.structErr(in); err != nil {
		return nil, err
	}
	if len(in.Password) > v.passwordMax {
		return nil, &FieldError{Field: "password", Reason: "too long"}
	}
	return in, nil
}

// LoginInput is a validated login request. The password only has to be
// present; its shape is the hasher's problem.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (v *Validator) Login(form url.Values) (*LoginInput, error) {
	email, err := scalar(form, "email")
	if err != nil {
		return nil, err
	}
	password, err := scalar(form, "password")
	if err != nil {
		return nil, err
	}
	in := &LoginInput{Email: email, Password: password}
	if err := v.structErr(in); err != nil {
		return nil, err
	}
	return in, nil
}

// AdminID validates the "user" query parameter. Store identifiers are
// exactly 24 hexadecimal characters.
func (v *Validator) AdminID(query url.Values) (string, error) {
	id, err := scalar(query, "user")
	if err != nil {
		return "", err
	}
	if err := v.varErr("user", id, "required,hexadecimal,len=24"); err != nil {
		return "", err
	}
	return id, nil
}

// Lookup validates the free-text member lookup parameter.
func (v *Validator) Lookup(query url.Values) (string, error) {
	q, err := scalar(query, "q")
	if err != nil {
		return "", err
	}
	if err := v.varErr("q", q, "required,max=20"); err != nil {
		return "", err
	}
	return q, nil
}

// scalar extracts form[key] as exactly one primitive string. Repeated keys
// and bracketed or dotted variants ("email[$ne]", "q.x") are how query
// parsers smuggle structured values into a string slot, so both shapes are
// rejected outright.
func scalar(form url.Values, key string) (string, error) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", &FieldError{Field: key, Reason: "required"}
	}
	if len(vals) > 1 {
		return "", &FieldError{Field: key, Reason: "repeated"}
	}
	for k := range form {
		if k != key && (strings.HasPrefix(k, key+"[") || strings.HasPrefix(k, key+".")) {
			return "", &FieldError{Field: key, Reason: "must be a plain string"}
		}
	}
	return vals[0], nil
}

func (v *Validator) structErr(in interface{}) error {
	err := v.check.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{
			Field:  strings.ToLower(verrs[0].Field()),
			Reason: "failed " + verrs[0].Tag(),
		}
	}
	return &FieldError{Field: "request", Reason: "malformed"}
}

func (v *Validator) varErr(field, value, tag string) error {
	err := v.check.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &FieldError{Field: field, Reason: "failed " + verrs[0].Tag()}
	}
	return &FieldError{Field: field, Reason: "malformed"}
}
