package storage

import "testing"

func TestParseURI(t *testing.T) {
	loc, err := ParseURI("s3://market-data/2023/11/08/trade.parquet")
	if err != nil {
		t.Fatalf("ParseURI() error = %v", err)
	}
	if loc.Bucket != "market-data" || loc.Key != "2023/11/08/trade.parquet" {
		t.Fatalf("location = %+v", loc)
	}
	if loc.Base() != "trade.parquet" {
		t.Fatalf("Base() = %q", loc.Base())
	}
	if loc.String() != "s3://market-data/2023/11/08/trade.parquet" {
		t.Fatalf("String() = %q", loc.String())
	}
}

func TestParseURIRejectsInvalid(t *testing.T) {
	for _, raw := range []string{
		"https://bucket/key",
		"s3:///key",
		"s3://bucket/",
		"s3://bucket/../secret",
	} {
		if _, err := ParseURI(raw); err == nil {
			t.Fatalf("ParseURI(%q) expected error", raw)
		}
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("S3://bucket/key") {
		t.Fatal("IsRemote() = false for s3 uri")
	}
	if IsRemote("/data/s3://x") || IsRemote("trade.parquet") {
		t.Fatal("IsRemote() = true for local path")
	}
}
