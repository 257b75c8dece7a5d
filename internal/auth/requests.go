package auth

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// DefaultMinPasswordLen is the minimum register password length unless the
// machine is configured otherwise.
const DefaultMinPasswordLen = 8

// LoginRequest carries the credentials for a login command.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) normalized() LoginRequest {
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate applies the local rules checked before any network call.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
		),
	)
}

// RegisterRequest carries the fields for a register command.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) normalized() RegisterRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Validate applies the local rules checked before any network call.
// minPassword is the configured password length floor.
func (r RegisterRequest) Validate(minPassword int) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email is not valid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(minPassword, 0).Error(fmt.Sprintf("password must be at least %d characters", minPassword)),
		),
	)
}
