package query

import "errors"

var (
	ErrEngineInit    = errors.New("query engine could not be initialized")
	ErrFileNotFound  = errors.New("data file not found")
	ErrMalformedFile = errors.New("data file is malformed or unreadable")
	ErrQuerySyntax   = errors.New("query syntax error")
	ErrQueryFailed   = errors.New("query failed")
	ErrSessionClosed = errors.New("session is closed")
)

// ErrorClass returns a short label for err's taxonomy member, "ok" for nil and
// "error" for anything outside the taxonomy.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrSessionClosed):
		return "session_closed"
	case errors.Is(err, ErrEngineInit):
		return "engine_init"
	case errors.Is(err, ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, ErrMalformedFile):
		return "malformed_file"
	case errors.Is(err, ErrQuerySyntax):
		return "query_syntax"
	case errors.Is(err, ErrQueryFailed):
		return "query_failed"
	default:
		return "error"
	}
}
