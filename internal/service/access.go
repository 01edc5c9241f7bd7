package service

import (
	"github.com/blog-cms-api/internal/models"
)

// requireAdmin rejects every identity without admin rights. It must run
// before any repository call of a guarded operation.
func requireAdmin(identity models.Identity) error {
	if !identity.IsAdmin() {
		return models.ErrUnauthorized
	}
	return nil
}
