// File: database/repository/blocks/backends.go
package blocksRepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-redis/redis/v8"
)

// NewMemoryBlockRepo returns a volatile repository.
func NewMemoryBlockRepo() BlockRepository {
	return newSnapshotBlockRepo(context.Background(), "memory", nil)
}

// NewFileBlockRepo stores the collection as a JSON array in path, loaded once here.
func NewFileBlockRepo(ctx context.Context, path string) BlockRepository {
	return newSnapshotBlockRepo(ctx, "file", &filePersister{path: path})
}

// NewRedisBlockRepo stores the collection as a JSON array under StorageKey.
func NewRedisBlockRepo(ctx context.Context, client *redis.Client) BlockRepository {
	return newSnapshotBlockRepo(ctx, "redis", &redisPersister{client: client, key: StorageKey})
}

type filePersister struct {
	path string
}

func (p *filePersister) load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// save writes to a temp file in the same directory and renames it over the target.
func (p *filePersister) save(_ context.Context, data []byte) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".resource-blocks-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

type redisPersister struct {
	client *redis.Client
	key    string
}

func (p *redisPersister) load(ctx context.Context) ([]byte, error) {
	data, err := p.client.Get(ctx, p.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (p *redisPersister) save(ctx context.Context, data []byte) error {
	return p.client.Set(ctx, p.key, data, 0).Err()
}
