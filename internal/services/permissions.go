package services

import (
	"github.com/almhq/license-manager/internal/apperrors"
	"github.com/almhq/license-manager/internal/models"
)

// Capability checks live here so role decisions happen once at the service
// boundary instead of being re-branched inside every handler.

func requireAdministrator(caller *models.User) error {
	if caller == nil || !caller.IsAdministrator() {
		return apperrors.Permission("administrator role required")
	}
	return nil
}

func requireOwner(caller *models.User, ownerID uint) error {
	if caller == nil || caller.ID != ownerID {
		return apperrors.Permission("only the application owner may perform this action")
	}
	return nil
}

func requireOwnerOrAdministrator(caller *models.User, ownerID uint) error {
	if caller != nil && (caller.ID == ownerID || caller.IsAdministrator()) {
		return nil
	}
	return apperrors.Permission("not authorized for this application")
}
