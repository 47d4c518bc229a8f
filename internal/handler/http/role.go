package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-portal/internal/domain/user"
	"github.com/cmlabs-hris/hris-portal/internal/handler/http/response"
)

// ListRoles handles GET /roles
func ListRoles(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, user.NewRoleCatalog())
}
