package logger

import "pnl_tracker/internal/app/port"

// slogAdapter implements port.Logger on top of the package-level functions, so services
// can take a port.Logger while the process keeps one global slog logger.
type slogAdapter struct {
	args []any
}

// NewSlogAdapter creates a new slogAdapter.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// With returns an adapter that appends args to every record.
func With(l port.Logger, args ...any) port.Logger {
	if a, ok := l.(*slogAdapter); ok {
		merged := make([]any, 0, len(a.args)+len(args))
		merged = append(merged, a.args...)
		merged = append(merged, args...)
		return &slogAdapter{args: merged}
	}
	return l
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, a.merge(args)...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, a.merge(args)...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, a.merge(args)...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, a.merge(args)...) }

func (a *slogAdapter) merge(args []any) []any {
	if len(a.args) == 0 {
		return args
	}
	out := make([]any, 0, len(a.args)+len(args))
	out = append(out, a.args...)
	return append(out, args...)
}

type nopLogger struct{}

// Nop returns a port.Logger that discards everything.
func Nop() port.Logger { return nopLogger{} }

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
