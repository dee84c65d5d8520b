package duckdb

import (
	"io"
	"os"
)

func writeFile(path string, reader io.Reader) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = file.Close() }()

	written, err := io.Copy(file, reader)
	if err != nil {
		return written, err
	}
	return written, file.Sync()
}
