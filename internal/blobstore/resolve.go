package blobstore

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"kquant/internal/blobstore/minio"
	"kquant/internal/blobstore/s3"
)

// Scheme identifies the backend of a Location.
type Scheme string

const (
	SchemeFile  Scheme = "file"
	SchemeS3    Scheme = "s3"
	SchemeMinio Scheme = "minio"
)

// Location is a parsed input or output address.
type Location struct {
	Scheme   Scheme
	Endpoint string // minio only
	Bucket   string
	Key      string // object key, or file path for SchemeFile
}

// ParseLocation parses "s3://bucket/key", "minio://host:port/bucket/key"
// or a local path.
func ParseLocation(raw string) (Location, error) {
	switch {
	case strings.HasPrefix(raw, "s3://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("invalid s3 location %q: %w", raw, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", raw)
		}
		return Location{Scheme: SchemeS3, Bucket: u.Host, Key: key}, nil

	case strings.HasPrefix(raw, "minio://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("invalid minio location %q: %w", raw, err)
		}
		bucket, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" || key == "" {
			return Location{}, fmt.Errorf("invalid minio location %q: want minio://host/bucket/key", raw)
		}
		return Location{Scheme: SchemeMinio, Endpoint: u.Host, Bucket: bucket, Key: key}, nil

	case raw == "":
		return Location{}, fmt.Errorf("empty location")

	default:
		return Location{Scheme: SchemeFile, Key: strings.TrimPrefix(raw, "file://")}, nil
	}
}

// Resolve opens the store for a location and returns the object name to
// use with it.
//
// S3 uses the default AWS credential chain; S3_ENDPOINT overrides the
// endpoint. MinIO reads MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_SECURE.
func Resolve(ctx context.Context, raw string) (Store, string, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, "", err
	}

	switch loc.Scheme {
	case SchemeS3:
		client, err := s3.NewClient(ctx, os.Getenv("S3_ENDPOINT"))
		if err != nil {
			return nil, "", err
		}
		return s3.NewStore(client, loc.Bucket, ""), loc.Key, nil

	case SchemeMinio:
		secure, _ := strconv.ParseBool(os.Getenv("MINIO_SECURE"))
		client, err := minio.NewClient(loc.Endpoint, os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), secure)
		if err != nil {
			return nil, "", err
		}
		return minio.NewStore(client, loc.Bucket, ""), loc.Key, nil

	default:
		return NewLocalStore(""), loc.Key, nil
	}
}
