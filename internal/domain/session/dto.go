package session

import (
	"errors"

	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
)

// StartSessionRequest is the login handoff: the user record and bearer token
// the upstream API issued at login.
type StartSessionRequest struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

func (r *StartSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := r.User.Validate(); err != nil {
		var userErrs validator.ValidationErrors
		if errors.As(err, &userErrs) {
			errs = append(errs, userErrs...)
		}
	}

	token := r.Token
	if validator.IsEmpty(token) {
		token = r.User.Token
	}
	if validator.IsEmpty(token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token is required",
		})
	} else if !validator.IsValidBearerToken(token) {
		errs = append(errs, validator.ValidationError{
			Field:   "token",
			Message: "token must not contain whitespace",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AuthToken returns the bearer token of the handoff, falling back to the
// token embedded in the user record.
func (r *StartSessionRequest) AuthToken() string {
	if !validator.IsEmpty(r.Token) {
		return r.Token
	}
	return r.User.Token
}

type StartSessionResponse struct {
	SessionToken string               `json:"session_token"`
	ExpiresAt    int64                `json:"expires_at"`
	Profile      user.ProfileResponse `json:"profile"`
}

type CurrentSessionResponse struct {
	Authenticated bool                  `json:"authenticated"`
	Profile       *user.ProfileResponse `json:"profile,omitempty"`
}
