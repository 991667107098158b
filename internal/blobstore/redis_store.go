package blobstore

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

const contentTypeField = "_content_type"

// RedisStore keeps object bytes under nv:blob:<key> and the metadata map in a
// hash under nv:blobmeta:<key>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func blobKey(key string) string {
	return fmt.Sprintf("nv:blob:%s", key)
}

func metaKey(key string) string {
	return fmt.Sprintf("nv:blobmeta:%s", key)
}

func (s *RedisStore) Put(ctx context.Context, key string, data []byte, contentType string, meta Metadata) error {
	fields := make(map[string]interface{}, len(meta)+1)
	for k, v := range meta {
		fields[k] = v
	}
	fields[contentTypeField] = contentType

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, blobKey(key), data, 0)
	pipe.Del(ctx, metaKey(key))
	pipe.HSet(ctx, metaKey(key), fields)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, blobKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Head(ctx context.Context, key string) (Metadata, error) {
	values, err := s.client.HGetAll(ctx, metaKey(key)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}

	meta := make(Metadata, len(values))
	for k, v := range values {
		if k == contentTypeField {
			continue
		}
		meta[k] = v
	}
	return meta, nil
}

func (s *RedisStore) CopyWithMetadata(ctx context.Context, key string, meta Metadata) error {
	exists, err := s.client.Exists(ctx, blobKey(key)).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	contentType, err := s.client.HGet(ctx, metaKey(key), contentTypeField).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	fields := make(map[string]interface{}, len(meta)+1)
	for k, v := range meta {
		fields[k] = v
	}
	if contentType != "" {
		fields[contentTypeField] = contentType
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, metaKey(key))
	pipe.HSet(ctx, metaKey(key), fields)
	_, err = pipe.Exec(ctx)
	return err
}
