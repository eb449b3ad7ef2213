package app

import (
	"context"
	"log/slog"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ActivityService implements ports.ActivityService.
var _ ports.ActivityService = (*ActivityService)(nil)

// ActivityService implements ports.ActivityService, the read side of the
// audit log. Writes happen through the ActivityRecorder only.
type ActivityService struct {
	store  ports.ActivityStore
	logger *slog.Logger
}

// NewActivityService creates an ActivityService backed by the given store.
func NewActivityService(store ports.ActivityStore, logger *slog.Logger) *ActivityService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ActivityService{store: store, logger: logger}
}

// ListActivity returns audit entries newest first, optionally filtered by
// project and action.
func (s *ActivityService) ListActivity(ctx context.Context, f activity.Filter) ([]activity.Entry, error) {
	s.logger.InfoContext(ctx, "listing activity")

	entries, err := s.store.List(ctx, f)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list activity",
			slog.String("operation", "ListActivity"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return entries, nil
}
