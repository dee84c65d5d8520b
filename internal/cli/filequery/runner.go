package filequery

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/duckmesh/filequery/internal/observability"
	"github.com/duckmesh/filequery/internal/query"
	"github.com/duckmesh/filequery/internal/query/duckdb"
	"github.com/duckmesh/filequery/internal/sample"
	"github.com/duckmesh/filequery/internal/storage"
)

type Options struct {
	// KeepOpen disables the one-shot session contract of the reader.
	KeepOpen    bool
	StagingDir  string
	ObjectStore storage.ObjectStore
	Logger      *slog.Logger
	Stdout      io.Writer
	Stderr      io.Writer
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}
	if defaults.Logger == nil {
		defaults.Logger = observability.DiscardLogger()
	}

	if len(args) < 1 {
		writeUsage(stderr)
		return 2
	}

	command := strings.TrimSpace(args[0])
	fs := flag.NewFlagSet("filequery "+command, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var err error
	switch command {
	case "schema":
		output := fs.String("format", "table", "output format: table, json or csv")
		inputFormat := fs.String("input-format", "", "override file format: parquet, csv or json")
		path, code := parsePath(fs, args[1:], stderr)
		if code != 0 {
			return code
		}
		err = runSchema(ctx, path, *inputFormat, *output, stdout, defaults)
	case "query":
		output := fs.String("format", "table", "output format: table, json or csv")
		inputFormat := fs.String("input-format", "", "override file format: parquet, csv or json")
		template := fs.String("sql", query.DefaultTemplate, "query template; CURRENT stands for the file")
		path, code := parsePath(fs, args[1:], stderr)
		if code != 0 {
			return code
		}
		err = runQuery(ctx, path, *inputFormat, *template, *output, stdout, defaults)
	case "sample":
		rows := fs.Int("rows", 100, "number of rows to write")
		seed := fs.Int64("seed", 1, "random seed")
		path, code := parsePath(fs, args[1:], stderr)
		if code != 0 {
			return code
		}
		if err = sample.WriteFile(path, *rows, *seed); err == nil {
			_, _ = fmt.Fprintf(stdout, "wrote %d rows to %s\n", *rows, path)
		}
	case "help", "-h", "-help", "--help":
		writeUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return 2
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s failed: %v\n", command, err)
		return 1
	}
	return 0
}

func parsePath(fs *flag.FlagSet, args []string, stderr io.Writer) (string, int) {
	if err := fs.Parse(args); err != nil {
		return "", 2
	}
	if fs.NArg() != 1 {
		_, _ = fmt.Fprintf(stderr, "%s: exactly one file argument is required\n", fs.Name())
		return "", 2
	}
	return fs.Arg(0), 0
}

func runSchema(ctx context.Context, path, inputFormat, output string, stdout io.Writer, opts Options) error {
	renderer, err := rendererFor(output)
	if err != nil {
		return err
	}
	reader, err := openReader(ctx, path, inputFormat, opts)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	schema, err := reader.ReadSchema(ctx)
	if err != nil {
		return err
	}
	return renderer.Schema(stdout, schema)
}

func runQuery(ctx context.Context, path, inputFormat, template, output string, stdout io.Writer, opts Options) error {
	renderer, err := rendererFor(output)
	if err != nil {
		return err
	}
	reader, err := openReader(ctx, path, inputFormat, opts)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	result, err := reader.ReadData(ctx, template)
	if err != nil {
		return err
	}
	return renderer.Result(stdout, result)
}

func openReader(ctx context.Context, path, inputFormat string, opts Options) (*duckdb.Reader, error) {
	readerOpts := []duckdb.Option{
		duckdb.WithLogger(opts.Logger),
		duckdb.WithStagingDir(opts.StagingDir),
	}
	if strings.TrimSpace(inputFormat) != "" {
		format, err := query.ParseFormat(inputFormat)
		if err != nil {
			return nil, err
		}
		readerOpts = append(readerOpts, duckdb.WithFormat(format))
	}
	if opts.ObjectStore != nil {
		readerOpts = append(readerOpts, duckdb.WithObjectStore(opts.ObjectStore))
	}
	if opts.KeepOpen {
		readerOpts = append(readerOpts, duckdb.WithKeepOpen())
	}
	return duckdb.Open(ctx, path, readerOpts...)
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: filequery <command> [flags] <file>")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "commands:")
	_, _ = fmt.Fprintln(w, "  schema   print column names and types")
	_, _ = fmt.Fprintln(w, "  query    run -sql against the file (CURRENT names the file)")
	_, _ = fmt.Fprintln(w, "  sample   write a synthetic trade dataset as parquet")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "files may be local paths or s3://bucket/key when an object store is configured")
}
