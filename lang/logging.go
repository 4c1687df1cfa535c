package lang

import "log/slog"

// attrKey is a shorthand for attaching an object key to an error, used
// consistently by DuplicateKey and MissingField errors.
func attrKey(key string) slog.Attr {
	return slog.String("key", key)
}

// attrName is a shorthand for attaching a variable or field name to an
// error.
func attrName(name string) slog.Attr {
	return slog.String("name", name)
}
