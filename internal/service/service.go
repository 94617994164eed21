// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services enforce the rules
// (validation beyond payload shape, ownership, credential checks) and talk
// to the repository interfaces. Services never see HTTP types and never see
// SQL - they return domain errors from the apperror package and let the
// handler layer translate them to status codes.
package service

import (
	"github.com/photoapp/photoapp/internal/apperror"
	"github.com/photoapp/photoapp/internal/model"
)

// authorizeOwner is the single ownership predicate applied to every
// single-item and mutating resource operation.
//
// A mismatch is reported as Unauthorized, not Forbidden: the API responds to
// "this exists but isn't yours" with the same 401 body as "you're not
// logged in", so callers can't distinguish foreign resources from missing
// credentials.
func authorizeOwner(userID int64, resource model.Owned) error {
	if resource.OwnerID() != userID {
		return apperror.Unauthorized("Authorization required")
	}
	return nil
}
