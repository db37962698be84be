//go:build !gcloud

package logging

import (
	"context"
	"log/slog"
)

// gcpTraceAttrs is empty outside GCP; trace_id and span_id are enough for
// local collectors.
func gcpTraceAttrs(_ context.Context, _ string) []slog.Attr {
	return nil
}
