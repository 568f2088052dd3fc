package main

import (
	"log/slog"

	"lyricdrop/internal/config"
	"lyricdrop/internal/deps"
	"lyricdrop/internal/logging"
)

// reportDependencies logs the availability of external binaries. Missing
// required tools are reported loudly but do not prevent startup; exports
// will fail with a clear error instead.
func reportDependencies(cfg *config.Config, logger *slog.Logger) []deps.Status {
	statuses := deps.CheckBinaries(deps.Requirements(cfg))
	for _, status := range statuses {
		if status.Available {
			logger.Debug("dependency available",
				logging.String("name", status.Name),
				logging.String("command", status.Command))
			continue
		}
		if status.Optional {
			logger.Debug("optional dependency missing",
				logging.String("name", status.Name),
				logging.String("detail", status.Detail))
			continue
		}
		logger.Warn("required dependency missing",
			logging.String("name", status.Name),
			logging.String("detail", status.Detail))
	}
	return statuses
}
