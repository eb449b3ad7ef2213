package app

import (
	"context"
	"log/slog"
)

// Step is one named stage of a mutation lifecycle. Services compose their
// operations from steps so the ordering (authorize -> validate -> persist ->
// post-process) is explicit and uniform across entity types instead of
// hidden in per-entity hook conventions.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// runPipeline executes steps in order, stopping at the first failure. The
// failing step is logged at debug level; the error itself propagates
// unchanged so sentinel classification survives to the adapter.
func runPipeline(ctx context.Context, logger *slog.Logger, op string, steps ...Step) error {
	for _, step := range steps {
		if err := step.Run(ctx); err != nil {
			logger.DebugContext(ctx, "pipeline step failed",
				slog.String("operation", op),
				slog.String("step", step.Name),
				slog.Any("error", err),
			)
			return err
		}
	}
	return nil
}
