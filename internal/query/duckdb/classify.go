package duckdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcboeker/go-duckdb/v2"

	"github.com/duckmesh/filequery/internal/query"
)

// classify wraps an engine error with the matching taxonomy sentinel. The
// engine error stays reachable through errors.As.
func classify(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", sentinelFor(err), err)
}

func sentinelFor(err error) error {
	var engineErr *duckdb.Error
	if errors.As(err, &engineErr) {
		switch engineErr.Type {
		case duckdb.ErrorTypeParser, duckdb.ErrorTypeSyntax:
			return query.ErrQuerySyntax
		case duckdb.ErrorTypeIO:
			if isMissingFile(engineErr.Msg) {
				return query.ErrFileNotFound
			}
			return query.ErrMalformedFile
		case duckdb.ErrorTypeInvalidInput, duckdb.ErrorTypePermission:
			return query.ErrMalformedFile
		default:
			return query.ErrQueryFailed
		}
	}

	// Errors that did not come through the driver's typed error carry the
	// engine's "<Kind> Error: ..." prefix.
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "Parser Error"), strings.HasPrefix(msg, "Syntax Error"):
		return query.ErrQuerySyntax
	case strings.HasPrefix(msg, "IO Error"):
		if isMissingFile(msg) {
			return query.ErrFileNotFound
		}
		return query.ErrMalformedFile
	case strings.HasPrefix(msg, "Invalid Input Error"), strings.HasPrefix(msg, "Permission Error"):
		return query.ErrMalformedFile
	default:
		return query.ErrQueryFailed
	}
}

func isMissingFile(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "no files found") || strings.Contains(msg, "no such file")
}
