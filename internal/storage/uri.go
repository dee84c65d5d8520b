package storage

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

const SchemeS3 = "s3"

// Location addresses one object in a bucket.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string {
	return SchemeS3 + "://" + l.Bucket + "/" + l.Key
}

// Base returns the last element of the key, used to name the staged copy.
func (l Location) Base() string {
	return path.Base(l.Key)
}

// IsRemote reports whether raw uses a scheme served by an ObjectStore.
func IsRemote(raw string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), SchemeS3+"://")
}

// ParseURI parses s3://bucket/key.
func ParseURI(raw string) (Location, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Location{}, fmt.Errorf("parse object uri: %w", err)
	}
	if !strings.EqualFold(parsed.Scheme, SchemeS3) {
		return Location{}, fmt.Errorf("unsupported object uri scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return Location{}, fmt.Errorf("object uri %q has no bucket", raw)
	}
	key, err := CleanKey(parsed.Path)
	if err != nil {
		return Location{}, err
	}
	return Location{Bucket: parsed.Host, Key: key}, nil
}

// CleanKey trims leading slashes and rejects empty or escaping keys.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.TrimLeft(key, "/"))
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") || strings.Contains(cleaned, "/../") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return cleaned, nil
}
