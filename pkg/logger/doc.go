// Package logger builds the *slog.Logger used by the locparse library and CLI.
//
// New applies functional options (format, level, output, static attributes,
// context extractors) and wraps the resulting handler in LogHandlerDecorator,
// which copies values such as the build session id from context.Context into
// every record.
//
//	log := logger.New(
//	    logger.WithEnvironment("ci", "locparse"),
//	    logger.WithContextValue("session_id", sessionKey{}),
//	)
//	log.InfoContext(ctx, "parsed loc file",
//	    logger.FilePath(path),
//	    logger.LocFormat("resx"),
//	)
//
// Helper constructors in attr.go keep attribute names consistent. Error
// returns an empty attribute for a nil error so it can be passed
// unconditionally.
package logger
