package query

import (
	"context"
	"time"
)

// DefaultTemplate is used when ReadData is called with an empty template.
const DefaultTemplate = "SELECT * FROM CURRENT LIMIT 10"

type Result struct {
	Columns  []string
	Rows     [][]Value
	Duration time.Duration
}

// FileReader is the contract implemented by engine-backed readers.
type FileReader interface {
	ReadSchema(ctx context.Context) (Schema, error)
	ReadData(ctx context.Context, template string) (Result, error)
	Close() error
}
