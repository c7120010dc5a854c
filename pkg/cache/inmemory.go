package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/segmentio/encoding/json"
)

const defaultInMemoryBytes = 32 * 1048576 // 32MB

type InMemory struct {
	DB  *fastcache.Cache
	now func() time.Time
}

// entry wraps the value with its deadline since fastcache itself has no expiry.
type entry struct {
	ExpireAt int64           `json:"e,omitempty"`
	Value    json.RawMessage `json:"v"`
}

var _ Cache = (*InMemory)(nil)

// NewInMemory creates fastcache backed cache. maxBytes <= 0 uses 32MB.
func NewInMemory(maxBytes int) (*InMemory, error) {
	if maxBytes <= 0 {
		maxBytes = defaultInMemoryBytes
	}

	return &InMemory{
		DB:  fastcache.New(maxBytes),
		now: time.Now,
	}, nil
}

func (i *InMemory) GetAs(_ context.Context, key string, out interface{}) error {
	result := i.DB.Get(nil, []byte(key))
	if result == nil {
		return ErrKeyNotExist
	}

	var e entry
	if err := json.Unmarshal(result, &e); err != nil {
		return fmt.Errorf("cannot unmarshal cache entry: %w", err)
	}

	if e.ExpireAt > 0 && i.now().UnixNano() >= e.ExpireAt {
		i.DB.Del([]byte(key))
		return ErrKeyNotExist
	}

	return json.Unmarshal(e.Value, out)
}

func (i *InMemory) SetExp(_ context.Context, key string, inValue interface{}, expireDur time.Duration) error {
	val, err := json.Marshal(inValue)
	if err != nil {
		err = fmt.Errorf("cannot marshal json value: %w", err)
		return err
	}

	e := entry{Value: val}
	if expireDur > 0 {
		e.ExpireAt = i.now().Add(expireDur).UnixNano()
	}

	raw, err := json.Marshal(e)
	if err != nil {
		err = fmt.Errorf("cannot marshal cache entry: %w", err)
		return err
	}

	i.DB.Set([]byte(key), raw)
	return nil
}

func (i *InMemory) Delete(_ context.Context, key string) error {
	i.DB.Del([]byte(key))
	return nil
}
