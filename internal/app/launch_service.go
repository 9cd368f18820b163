package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/launchgate/internal/ports/primary"
	"github.com/example/launchgate/internal/ports/secondary"
)

// LaunchServiceImpl implements the LaunchService interface.
type LaunchServiceImpl struct {
	store     secondary.PreferenceStore
	presenter secondary.ChallengePresenter
	updates   primary.UpdateService
	events    secondary.LaunchEventRepository
	executor  EffectExecutor
	newID     func() string
	logger    *slog.Logger
}

// NewLaunchService creates a new LaunchService with injected dependencies.
func NewLaunchService(
	store secondary.PreferenceStore,
	presenter secondary.ChallengePresenter,
	updates primary.UpdateService,
	events secondary.LaunchEventRepository,
	executor EffectExecutor,
	newID func() string,
	logger *slog.Logger,
) *LaunchServiceImpl {
	return &LaunchServiceImpl{
		store:     store,
		presenter: presenter,
		updates:   updates,
		events:    events,
		executor:  executor,
		newID:     newID,
		logger:    logger,
	}
}

// NewSession creates a launch session.
func (s *LaunchServiceImpl) NewSession(ctx context.Context) primary.LaunchSession {
	return NewLaunchSession(s.newID(), s.store, s.presenter, s.updates, s.executor, s.logger)
}

// History lists recorded launch events.
func (s *LaunchServiceImpl) History(ctx context.Context, filters primary.HistoryFilters) ([]*primary.LaunchEvent, error) {
	records, err := s.events.List(ctx, secondary.LaunchEventFilters{
		SessionID: filters.SessionID,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list launch events: %w", err)
	}

	events := make([]*primary.LaunchEvent, 0, len(records))
	for _, r := range records {
		events = append(events, &primary.LaunchEvent{
			ID:        r.ID,
			SessionID: r.SessionID,
			Kind:      r.Kind,
			Detail:    r.Detail,
			CreatedAt: r.CreatedAt,
		})
	}
	return events, nil
}

// Ensure LaunchServiceImpl implements the interface
var _ primary.LaunchService = (*LaunchServiceImpl)(nil)
