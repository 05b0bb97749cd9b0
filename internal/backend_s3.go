package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Backend maps keys to objects in an S3-compatible bucket. The key space
// is flat: directory semantics only exist as delimiter-bounded prefix
// scans, exposed through ListDirs.
//
// Calls are blocking and retryless from the core's perspective; any retry
// policy belongs below this adapter.
type S3Backend struct {
	client *minio.Client
	bucket string
}

// NewS3Backend connects to the configured bucket and verifies it exists
func NewS3Backend(cfg StorageConfig) (*S3Backend, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, &BackendError{Op: "connect", Key: cfg.Endpoint, Err: err}
	}

	exists, err := client.BucketExists(context.Background(), cfg.Bucket)
	if err != nil {
		return nil, &BackendError{Op: "connect", Key: cfg.Bucket, Err: err}
	}
	if !exists {
		return nil, &BackendError{Op: "connect", Key: cfg.Bucket,
			Err: fmt.Errorf("bucket does not exist")}
	}

	return &S3Backend{client: client, bucket: cfg.Bucket}, nil
}

// Put uploads data under key
func (b *S3Backend) Put(key string, data []byte) error {
	_, err := b.client.PutObject(context.Background(), b.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentTypeFor(key)})
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

// Get reads the object stored under key
func (b *S3Backend) Get(key string) ([]byte, error) {
	obj, err := b.client.GetObject(context.Background(), b.bucket, key,
		minio.GetObjectOptions{})
	if err != nil {
		return nil, &BackendError{Op: "get", Key: key, Err: err}
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, &NotFoundError{Kind: "key", Name: key}
		}
		return nil, &BackendError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

// List returns every key sharing the prefix
func (b *S3Backend) List(prefix string) ([]string, error) {
	var keys []string
	objects := b.client.ListObjects(context.Background(), b.bucket,
		minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, &BackendError{Op: "list", Key: prefix, Err: obj.Err}
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// ListDirs scans the prefix with delimiter "/" and returns the common
// prefixes one level below it
func (b *S3Backend) ListDirs(prefix string) ([]string, error) {
	var dirs []string
	objects := b.client.ListObjects(context.Background(), b.bucket,
		minio.ListObjectsOptions{Prefix: prefix, Recursive: false})
	for obj := range objects {
		if obj.Err != nil {
			return nil, &BackendError{Op: "list", Key: prefix, Err: obj.Err}
		}
		// Non-recursive listings report common prefixes as keys with a
		// trailing slash
		if strings.HasSuffix(obj.Key, "/") {
			dirs = append(dirs, obj.Key)
		}
	}
	return dirs, nil
}

// Download copies the object under key to a local file
func (b *S3Backend) Download(key, dest string) error {
	err := b.client.FGetObject(context.Background(), b.bucket, key, dest,
		minio.GetObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return &NotFoundError{Kind: "key", Name: key}
		}
		return &WriteError{Key: dest, Err: err}
	}
	return nil
}

// Identity returns the endpoint and bucket identity
func (b *S3Backend) Identity() string {
	return "s3://" + b.client.EndpointURL().Host + "/" + b.bucket
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".json"):
		return "application/json"
	case strings.HasSuffix(key, ".csv"):
		return "text/csv"
	case strings.HasSuffix(key, ".log"):
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
