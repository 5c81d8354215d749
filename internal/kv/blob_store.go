package kv

import (
	"context"
	"io"
	"sort"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/jdai-ca/atticus-privacy/internal/errors"
)

// blobStore implements Store on top of a gocloud.dev blob bucket. The fileblob
// driver gives durable per-installation storage without a database server; the
// memblob driver backs tests.
type blobStore struct {
	bucket *blob.Bucket
}

// NewFileStore opens a file-backed store rooted at dir, creating the directory
// if it does not exist.
func NewFileStore(dir string) (Store, error) {
	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{CreateDir: true})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open file store")
	}
	return &blobStore{bucket: bucket}, nil
}

// NewMemStore opens an in-memory store. Contents are lost on Close; intended
// for tests and dry runs.
func NewMemStore() Store {
	return &blobStore{bucket: memblob.OpenBucket(nil)}
}

// NewBlobStore wraps an already-open bucket. The caller keeps ownership of the
// bucket lifecycle only if it avoids calling Close on the returned store.
func NewBlobStore(bucket *blob.Bucket) Store {
	return &blobStore{bucket: bucket}
}

func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "key %q", key)
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err.Error())
	}
	return data, nil
}

func (s *blobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.bucket.WriteAll(ctx, key, value, nil); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err.Error())
	}
	return nil
}

func (s *blobStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := s.bucket.List(&blob.ListOptions{Prefix: prefix})
	for {
		obj, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err.Error())
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *blobStore) Close() error {
	return s.bucket.Close()
}
