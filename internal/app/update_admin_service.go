package app

import (
	"context"
	"fmt"

	"github.com/example/launchgate/internal/ports/primary"
	"github.com/example/launchgate/internal/ports/secondary"
)

// UpdateAdminServiceImpl implements the UpdateAdminService interface.
type UpdateAdminServiceImpl struct {
	admin    secondary.UpdateAdmin
	platform secondary.UpdatePlatform
}

// NewUpdateAdminService creates a new UpdateAdminService.
func NewUpdateAdminService(admin secondary.UpdateAdmin, platform secondary.UpdatePlatform) *UpdateAdminServiceImpl {
	return &UpdateAdminServiceImpl{admin: admin, platform: platform}
}

// Publish makes a version available.
func (s *UpdateAdminServiceImpl) Publish(ctx context.Context, version string, immediateAllowed bool) error {
	if version == "" {
		return fmt.Errorf("version is required")
	}
	return s.admin.Publish(ctx, version, immediateAllowed)
}

// Complete marks the pending update as installed.
func (s *UpdateAdminServiceImpl) Complete(ctx context.Context) error {
	return s.admin.Complete(ctx)
}

// Status returns the store's current view.
func (s *UpdateAdminServiceImpl) Status(ctx context.Context) (*primary.UpdateStatus, error) {
	record, err := s.admin.Status(ctx)
	if err != nil {
		return nil, err
	}
	availability, err := s.platform.QueryAvailability(ctx)
	if err != nil {
		return nil, err
	}
	return &primary.UpdateStatus{
		Availability:  availability,
		CorrelationID: record.CorrelationID,
		RequestCode:   record.RequestCode,
		UpdatedAt:     record.UpdatedAt,
	}, nil
}

// Ensure UpdateAdminServiceImpl implements the interface
var _ primary.UpdateAdminService = (*UpdateAdminServiceImpl)(nil)
