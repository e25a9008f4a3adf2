package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// FilePath records the loc file being processed under the key "file".
func FilePath(path string) slog.Attr {
	return slog.String("file", path)
}

// LocFormat records the detected loc file format under the key "format".
func LocFormat(name string) slog.Attr {
	return slog.String("format", name)
}

// CacheKey records a parse cache key under the key "cache_key".
func CacheKey(key string) slog.Attr {
	return slog.String("cache_key", key)
}

// SessionID records the build session identifier under the key "session_id".
// If id is empty, it returns an empty Attr.
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
