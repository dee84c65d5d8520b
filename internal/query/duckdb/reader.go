// Package duckdb serves schema and row reads over a single data file through
// an embedded DuckDB session.
//
// A Reader owns exactly one session. By default the session is one-shot:
// ReadData releases it on return, success or failure, and every later call
// fails with query.ErrSessionClosed. WithKeepOpen lifts that restriction and
// leaves the release to Close.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duckmesh/filequery/internal/observability"
	"github.com/duckmesh/filequery/internal/query"
	"github.com/duckmesh/filequery/internal/storage"
)

type State int

const (
	StateOpen State = iota
	StateClosed
)

func (s State) String() string {
	if s == StateClosed {
		return "closed"
	}
	return "open"
}

type Option func(*Reader)

// WithFormat overrides extension-based format detection.
func WithFormat(format query.Format) Option {
	return func(r *Reader) { r.format = format }
}

// WithKeepOpen keeps the session open across ReadData calls.
func WithKeepOpen() Option {
	return func(r *Reader) { r.oneShot = false }
}

// WithObjectStore enables s3:// paths.
func WithObjectStore(store storage.ObjectStore) Option {
	return func(r *Reader) { r.store = store }
}

// WithStagingDir sets where downloaded objects are staged.
func WithStagingDir(dir string) Option {
	return func(r *Reader) { r.stagingRoot = dir }
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}

type Reader struct {
	path        string
	format      query.Format
	oneShot     bool
	store       storage.ObjectStore
	stagingRoot string
	logger      *slog.Logger

	mu        sync.Mutex
	db        *sql.DB
	state     State
	stageDir  string
	localPath string
}

var _ query.FileReader = (*Reader)(nil)

// Open starts a transient in-memory engine session for path. The file itself
// is not touched until the first read.
func Open(ctx context.Context, path string, opts ...Option) (*Reader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("%w: open duckdb: %w", query.ErrEngineInit, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping duckdb: %w", query.ErrEngineInit, err)
	}
	return NewReader(db, path, opts...), nil
}

// NewReader wraps an existing session. The reader takes ownership of db.
func NewReader(db *sql.DB, path string, opts ...Option) *Reader {
	r := &Reader{
		path:    path,
		format:  query.DetectFormat(path),
		oneShot: true,
		logger:  observability.DiscardLogger(),
		db:      db,
		state:   StateOpen,
	}
	for _, opt := range opts {
		opt(r)
	}
	observability.SessionOpened()
	return r
}

func (r *Reader) Path() string { return r.path }

func (r *Reader) Format() query.Format { return r.format }

func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// ReadSchema describes the file's columns. It never closes the session.
func (r *Reader) ReadSchema(ctx context.Context) (query.Schema, error) {
	start := time.Now()
	schema, err := r.readSchema(ctx)
	r.observe(ctx, observability.OperationSchema, "schema_read", start, err,
		slog.Int("columns", len(schema.Columns)))
	return schema, err
}

func (r *Reader) readSchema(ctx context.Context) (query.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateClosed {
		return query.Schema{}, query.ErrSessionClosed
	}
	source, err := r.resolveLocked(ctx)
	if err != nil {
		return query.Schema{}, err
	}

	rows, err := r.db.QueryContext(ctx, "DESCRIBE SELECT * FROM "+r.format.TableFunction(source))
	if err != nil {
		return query.Schema{}, classify(err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return query.Schema{}, fmt.Errorf("describe columns: %w", err)
	}
	nameIndex, typeIndex := describeIndexes(columns)

	var names, engineTypes []string
	for rows.Next() {
		values, err := scanRow(rows, len(columns))
		if err != nil {
			return query.Schema{}, fmt.Errorf("scan describe row: %w", err)
		}
		names = append(names, asString(values[nameIndex]))
		engineTypes = append(engineTypes, asString(values[typeIndex]))
	}
	if err := rows.Err(); err != nil {
		return query.Schema{}, classify(err)
	}
	return query.NewSchema(names, engineTypes), nil
}

// ReadData runs template with every standalone CURRENT token bound to the
// file and returns all rows. An empty template means query.DefaultTemplate.
// The template is otherwise executed as written.
func (r *Reader) ReadData(ctx context.Context, template string) (query.Result, error) {
	start := time.Now()
	result, err := r.readData(ctx, template)
	if err == nil {
		result.Duration = time.Since(start)
		observability.ObserveRows(len(result.Rows))
	}
	r.observe(ctx, observability.OperationData, "data_read", start, err,
		slog.Int("rows", len(result.Rows)))
	return result, err
}

func (r *Reader) readData(ctx context.Context, template string) (query.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateClosed {
		return query.Result{}, query.ErrSessionClosed
	}
	if r.oneShot {
		defer func() {
			if err := r.closeLocked(); err != nil {
				r.logger.Warn("session_close_failed", slog.String("path", r.path), slog.Any("error", err))
			}
		}()
	}

	if strings.TrimSpace(template) == "" {
		template = query.DefaultTemplate
	}
	statement := template
	if _, count := query.BindTemplate(template, ""); count > 0 {
		source, err := r.resolveLocked(ctx)
		if err != nil {
			return query.Result{}, err
		}
		statement, _ = query.BindTemplate(template, r.format.TableFunction(source))
	}

	rows, err := r.db.QueryContext(ctx, statement)
	if err != nil {
		return query.Result{}, classify(err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return query.Result{}, fmt.Errorf("query columns: %w", err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return query.Result{}, fmt.Errorf("query column types: %w", err)
	}

	resultRows := make([][]query.Value, 0)
	for rows.Next() {
		values, err := scanRow(rows, len(columns))
		if err != nil {
			return query.Result{}, fmt.Errorf("scan row: %w", err)
		}
		row := make([]query.Value, len(values))
		for i, value := range values {
			row[i] = query.ValueOf(engineValue(value, columnTypes[i].DatabaseTypeName()))
		}
		resultRows = append(resultRows, row)
	}
	if err := rows.Err(); err != nil {
		return query.Result{}, classify(err)
	}

	return query.Result{Columns: columns, Rows: resultRows}, nil
}

// Close releases the session and any staged copy. It is safe to call more
// than once.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *Reader) closeLocked() error {
	if r.state == StateClosed {
		return nil
	}
	r.state = StateClosed
	observability.SessionClosed()

	var errs []error
	if err := r.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close duckdb: %w", err))
	}
	if r.stageDir != "" {
		if err := os.RemoveAll(r.stageDir); err != nil {
			errs = append(errs, fmt.Errorf("remove staging dir: %w", err))
		}
		r.stageDir = ""
		r.localPath = ""
	}
	r.logger.Debug("session_closed", slog.String("path", r.path))
	return errors.Join(errs...)
}

// resolveLocked returns the local path the engine should read, staging remote
// objects on first use.
func (r *Reader) resolveLocked(ctx context.Context) (string, error) {
	if !storage.IsRemote(r.path) {
		info, err := os.Stat(r.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%w: %w", query.ErrFileNotFound, err)
			}
			return "", fmt.Errorf("%w: %w", query.ErrMalformedFile, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", query.ErrMalformedFile, r.path)
		}
		return r.path, nil
	}
	if r.localPath != "" {
		return r.localPath, nil
	}

	start := time.Now()
	localPath, size, err := r.stageLocked(ctx)
	r.observe(ctx, observability.OperationStage, "object_staged", start, err, slog.Int64("bytes", size))
	if err != nil {
		return "", err
	}
	observability.ObserveStagedBytes(size)
	return localPath, nil
}

func (r *Reader) stageLocked(ctx context.Context) (string, int64, error) {
	if r.store == nil {
		return "", 0, fmt.Errorf("%w: no object store configured for %s", query.ErrFileNotFound, r.path)
	}
	loc, err := storage.ParseURI(r.path)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", query.ErrFileNotFound, err)
	}

	info, err := r.store.Stat(ctx, loc)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", 0, fmt.Errorf("%w: %s: %w", query.ErrFileNotFound, loc.String(), err)
		}
		return "", 0, fmt.Errorf("stat object %s: %w", loc.String(), err)
	}

	reader, err := r.store.Get(ctx, loc)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", 0, fmt.Errorf("%w: %s: %w", query.ErrFileNotFound, loc.String(), err)
		}
		return "", 0, fmt.Errorf("get object %s: %w", loc.String(), err)
	}
	defer func() { _ = reader.Close() }()

	dir, err := os.MkdirTemp(r.stagingRoot, "filequery-stage-")
	if err != nil {
		return "", 0, fmt.Errorf("create staging dir: %w", err)
	}
	localPath := filepath.Join(dir, loc.Base())
	size, err := writeFile(localPath, reader)
	if err == nil && size != info.Size {
		err = fmt.Errorf("wrote %d bytes, object has %d", size, info.Size)
	}
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", 0, fmt.Errorf("stage object %s: %w", loc.String(), err)
	}

	r.stageDir = dir
	r.localPath = localPath
	return localPath, size, nil
}

func (r *Reader) observe(ctx context.Context, operation, message string, start time.Time, err error, attrs ...slog.Attr) {
	elapsed := time.Since(start)
	class := query.ErrorClass(err)
	observability.ObserveOperation(operation, class, elapsed)

	attrs = append(attrs,
		slog.String("path", r.path),
		slog.String("status", class),
		slog.String("duration", elapsed.String()),
	)
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
}

func describeIndexes(columns []string) (int, int) {
	nameIndex, typeIndex := 0, 1
	for i, column := range columns {
		switch column {
		case "column_name":
			nameIndex = i
		case "column_type":
			typeIndex = i
		}
	}
	return nameIndex, typeIndex
}

func scanRow(rows *sql.Rows, width int) ([]any, error) {
	values := make([]any, width)
	scanTargets := make([]any, width)
	for i := range values {
		scanTargets[i] = &values[i]
	}
	if err := rows.Scan(scanTargets...); err != nil {
		return nil, err
	}
	return values, nil
}

// engineValue restores driver values whose Go form loses the engine type.
// UUID columns arrive as 16 raw bytes.
func engineValue(value any, databaseType string) any {
	if databaseType != "UUID" {
		return value
	}
	raw, ok := value.([]byte)
	if !ok || len(raw) != 16 {
		return value
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return value
	}
	return id
}

func asString(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case []byte:
		return string(typed)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", typed)
	}
}
