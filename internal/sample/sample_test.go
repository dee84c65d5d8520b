package sample

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestGeneratorDeterministicForSeed(t *testing.T) {
	g1 := NewGenerator(42)
	g2 := NewGenerator(42)
	for i := 0; i < 20; i++ {
		t1 := g1.Next()
		t2 := g2.Next()
		if !reflect.DeepEqual(t1, t2) {
			t.Fatalf("trade %d differs: %#v vs %#v", i, t1, t2)
		}
	}
}

func TestGeneratorIDsAreSequential(t *testing.T) {
	trades := NewGenerator(7).Take(50)
	for i, trade := range trades {
		if trade.ID != int32(i+1) {
			t.Fatalf("trade %d ID = %d", i, trade.ID)
		}
		if trade.Quantity%100 != 0 || trade.Quantity <= 0 {
			t.Fatalf("trade %d Quantity = %d", i, trade.Quantity)
		}
		if trade.Side != "buy" && trade.Side != "sell" {
			t.Fatalf("trade %d Side = %q", i, trade.Side)
		}
	}
	if got := NewGenerator(7).Take(-1); len(got) != 0 {
		t.Fatalf("Take(-1) = %d trades", len(got))
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	trades := NewGenerator(1).Take(3)
	buf := bytes.NewBuffer(nil)
	if err := WriteParquet(buf, trades); err != nil {
		t.Fatalf("WriteParquet() error = %v", err)
	}

	reader := parquet.NewReader(bytes.NewReader(buf.Bytes()))
	defer func() { _ = reader.Close() }()
	if got := reader.NumRows(); got != 3 {
		t.Fatalf("NumRows() = %d", got)
	}
	rows := make([]Trade, 0, 3)
	for {
		var row Trade
		if err := reader.Read(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			t.Fatalf("reader.Read() error = %v", err)
		}
		rows = append(rows, row)
	}
	if !reflect.DeepEqual(rows, trades) {
		t.Fatalf("rows = %#v, want %#v", rows, trades)
	}
}

func TestWriteParquetKeepsVenueIDEightBitUnsigned(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := WriteParquet(buf, NewGenerator(1).Take(2)); err != nil {
		t.Fatalf("WriteParquet() error = %v", err)
	}

	file, err := parquet.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	names := make([]string, 0)
	for _, field := range file.Schema().Fields() {
		names = append(names, field.Name())
	}
	want := []string{"id", "symbol", "price", "quantity", "side", "venue_id", "traded_at_ms"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("columns = %v, want %v", names, want)
	}

	column, ok := file.Schema().Lookup("venue_id")
	if !ok {
		t.Fatal("venue_id column missing")
	}
	logical := column.Node.Type().LogicalType()
	if logical == nil || logical.Integer == nil {
		t.Fatalf("venue_id logical type = %v", logical)
	}
	if logical.Integer.BitWidth != 8 || logical.Integer.IsSigned {
		t.Fatalf("venue_id integer type = %+v", *logical.Integer)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trade.parquet")
	if err := WriteFile(path, 100, 3); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected non-empty parquet file")
	}
	if err := WriteFile(path, -1, 3); err == nil {
		t.Fatal("expected error for negative rows")
	}
}
