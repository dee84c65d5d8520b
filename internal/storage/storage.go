package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	LastModified time.Time
}

// ObjectStore is the read side of a remote store holding data files.
type ObjectStore interface {
	Get(ctx context.Context, loc Location) (io.ReadCloser, error)
	Stat(ctx context.Context, loc Location) (ObjectInfo, error)
}
