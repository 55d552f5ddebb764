package logging

import "log/slog"

// Common field names for consistent logging across the engine.
const (
	FieldService    = "service"
	FieldSourceType = "source_type"
	FieldNodeID     = "node_id"
	FieldFile       = "file"
	FieldDir        = "dir"
	FieldCount      = "count"
	FieldAction     = "action"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// SourceType returns a slog attribute for a log source type.
func SourceType(t string) slog.Attr {
	return slog.String(FieldSourceType, t)
}

// NodeID returns a slog attribute for a node identifier.
func NodeID(id string) slog.Attr {
	return slog.String(FieldNodeID, id)
}

// File returns a slog attribute for a file path.
func File(path string) slog.Attr {
	return slog.String(FieldFile, path)
}

// Dir returns a slog attribute for a directory path.
func Dir(path string) slog.Attr {
	return slog.String(FieldDir, path)
}

// Count returns a slog attribute for an item count.
func Count(n int) slog.Attr {
	return slog.Int(FieldCount, n)
}

// Action returns a slog attribute for a watch action.
func Action(a string) slog.Attr {
	return slog.String(FieldAction, a)
}

// Method returns a slog attribute for the HTTP method.
func Method(method string) slog.Attr {
	return slog.String(FieldMethod, method)
}

// Path returns a slog attribute for the HTTP path.
func Path(path string) slog.Attr {
	return slog.String(FieldPath, path)
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
