package logging

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module names the component that emitted a log line.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type moduleKey struct{}

// WithModule tags every log line written with ctx.
func WithModule(ctx context.Context, module Module) context.Context {
	return context.WithValue(ctx, moduleKey{}, module)
}

func ModuleFromContext(ctx context.Context) (Module, bool) {
	module, ok := ctx.Value(moduleKey{}).(Module)
	return module, ok && module != ""
}

type HandlerConfig struct {
	Service       ServiceInfo
	Environment   Environment
	GCPProjectID  string
	DefaultModule Module
	Level         slog.Leveler
}

// Handler adds service, module and trace correlation attributes to a JSON
// handler.
type Handler struct {
	next          slog.Handler
	projectID     string
	defaultModule Module
}

var _ slog.Handler = (*Handler)(nil)

func NewHandler(w io.Writer, cfg HandlerConfig) *Handler {
	level := cfg.Level
	if level == nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.Environment == EnvDev,
		ReplaceAttr: replaceAttr,
	}

	service := []slog.Attr{
		slog.String("name", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
	}
	if cfg.Service.Revision != "" {
		service = append(service, slog.String("revision", cfg.Service.Revision))
	}

	next := slog.NewJSONHandler(w, opts).WithAttrs([]slog.Attr{
		slog.Any("service", slog.GroupValue(service...)),
		slog.String("env", string(cfg.Environment)),
	})

	return &Handler{
		next:          next,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	module := h.defaultModule
	if m, ok := ModuleFromContext(ctx); ok {
		module = m
	}
	if module != "" {
		record.AddAttrs(slog.String("module", string(module)))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
		record.AddAttrs(gcpTraceAttrs(ctx, h.projectID)...)
	}

	return h.next.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs), projectID: h.projectID, defaultModule: h.defaultModule}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name), projectID: h.projectID, defaultModule: h.defaultModule}
}

// replaceAttr renames the standard keys to what Cloud Logging expects.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.LevelKey:
		a.Key = "severity"
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}
