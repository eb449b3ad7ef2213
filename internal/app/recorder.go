package app

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/platform/telemetry"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// ActivityRecorder appends derived audit entries after successful
// mutations. Appends are best-effort: a failure is logged and counted but
// never fails or rolls back the primary mutation, and is never retried.
type ActivityRecorder struct {
	store   ports.ActivityStore
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewActivityRecorder creates an ActivityRecorder. metrics may be nil when
// telemetry is disabled.
func NewActivityRecorder(store ports.ActivityStore, logger *slog.Logger, metrics *telemetry.Metrics) *ActivityRecorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ActivityRecorder{store: store, logger: logger, metrics: metrics}
}

// Record appends the given entries. Failures are swallowed by design: the
// primary mutation has already succeeded and must report success. Dropped
// entries surface through the operational log and the audit-drop counter
// for out-of-band inspection.
func (r *ActivityRecorder) Record(ctx context.Context, entries ...activity.Entry) {
	for i := range entries {
		if _, err := r.store.Append(ctx, &entries[i]); err != nil {
			r.logger.ErrorContext(ctx, "failed to append activity entry",
				slog.String("action", entries[i].Action.String()),
				slog.String("description", entries[i].Description),
				slog.Any("error", err),
			)
			if r.metrics != nil {
				r.metrics.AuditDropTotal.Add(ctx, 1, metric.WithAttributes(
					telemetry.AttrAction.String(entries[i].Action.String()),
				))
			}
		}
	}
}
