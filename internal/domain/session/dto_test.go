package session

import (
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSessionRequest_Validate(t *testing.T) {
	t.Run("valid with separate token", func(t *testing.T) {
		req := StartSessionRequest{User: user.User{ID: "1", Role: user.RoleEmployee}, Token: "abc.def"}
		assert.NoError(t, req.Validate())
		assert.Equal(t, "abc.def", req.AuthToken())
	})

	t.Run("token embedded in user record", func(t *testing.T) {
		req := StartSessionRequest{User: user.User{ID: "1", Token: "embedded"}}
		assert.NoError(t, req.Validate())
		assert.Equal(t, "embedded", req.AuthToken())
	})

	t.Run("missing id and token", func(t *testing.T) {
		req := StartSessionRequest{}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.True(t, errors.As(err, &errs))
		m := errs.ToMap()
		assert.Contains(t, m, "user.id")
		assert.Contains(t, m, "token")
	})

	t.Run("token with whitespace", func(t *testing.T) {
		req := StartSessionRequest{User: user.User{ID: "1"}, Token: "Bearer abc"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "whitespace")
	})
}
