package main

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geoprep/internal/dataerr"
)

// commandContext returns the command's context, or Background when it has none.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// commandLogger tags log lines with the command name and a fresh run ID.
func commandLogger(name string) *zap.Logger {
	return zap.L().With(zap.String("command", name), zap.String("run_id", uuid.NewString()))
}

// logFailure records the error class before the error is handed back to cobra.
func logFailure(log *zap.Logger, err error) error {
	log.Error("command failed",
		zap.String("kind", dataerr.KindOf(err).String()),
		zap.Error(err),
	)
	return err
}

// stringFlag returns the flag value if it was set, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return fallback
	}
	return v
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
