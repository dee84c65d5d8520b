package sample

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

var tradeSchema = parquet.SchemaOf(Trade{})

// WriteParquet encodes trades in struct field order. Rows go through the
// schema's reflection path, which keeps venue_id as an 8-bit unsigned column.
func WriteParquet(w io.Writer, trades []Trade) error {
	writer := parquet.NewWriter(w, tradeSchema)
	for i := range trades {
		if err := writer.Write(&trades[i]); err != nil {
			return fmt.Errorf("write parquet row %d: %w", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

// WriteFile writes rows trades generated from seed to path.
func WriteFile(path string, rows int, seed int64) error {
	if rows < 0 {
		return fmt.Errorf("rows must be >= 0")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteParquet(file, NewGenerator(seed).Take(rows)); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
