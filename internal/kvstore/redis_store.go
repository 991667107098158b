package kvstore

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore keeps each record in a hash under nv:item:<collection>:<id> and
// tracks collection membership in a set under nv:index:<collection>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func itemKey(collection, id string) string {
	return fmt.Sprintf("nv:item:%s:%s", collection, id)
}

func indexKey(collection string) string {
	return fmt.Sprintf("nv:index:%s", collection)
}

func (s *RedisStore) Get(ctx context.Context, collection, id string) (Record, error) {
	values, err := s.client.HGetAll(ctx, itemKey(collection, id)).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}
	return Record(values), nil
}

func (s *RedisStore) Put(ctx context.Context, collection string, rec Record) error {
	id := rec.ID()
	if id == "" {
		return fmt.Errorf("put %s: record has no id", collection)
	}

	fields := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		fields[k] = v
	}

	// Del before HSet so a rewrite drops attributes absent from the new record.
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, itemKey(collection, id))
	pipe.HSet(ctx, itemKey(collection, id), fields)
	pipe.SAdd(ctx, indexKey(collection), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Update(ctx context.Context, collection, id string, changes map[string]string) (Record, error) {
	exists, err := s.client.Exists(ctx, itemKey(collection, id)).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	if len(changes) > 0 {
		fields := make(map[string]interface{}, len(changes))
		for k, v := range changes {
			fields[k] = v
		}
		if err := s.client.HSet(ctx, itemKey(collection, id), fields).Err(); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, collection, id)
}

func (s *RedisStore) Delete(ctx context.Context, collection, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, itemKey(collection, id))
	pipe.SRem(ctx, indexKey(collection), id)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Scan(ctx context.Context, collection string, pred func(Record) bool) ([]Record, error) {
	ids, err := s.client.SMembers(ctx, indexKey(collection)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(ctx, collection, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}
