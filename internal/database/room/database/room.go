package database

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/mine-games/mine/internal/bytespool"
	"github.com/mine-games/mine/internal/cache"
	"github.com/mine-games/mine/internal/database"
	"github.com/mine-games/mine/internal/database/room/model"
)

var NotFoundErr = fmt.Errorf("not found")

const bucket = "rooms"

func New(db *database.DB, cache cache.Cache) *DB {
	return &DB{sDB: db, cache: cache}
}

// DB persists rooms as one nested bucket per code holding JSON-encoded
// fields, so single fields can be replaced without rewriting the snapshot.
type DB struct {
	sDB *database.DB

	cache cache.Cache
}

// Fetch materializes the full room snapshot from its field bucket.
func (db *DB) Fetch(code string) (model.Room, error) {
	if db.cache != nil {
		if v, ok := db.cache.Get(code); ok {
			return v.(model.Room), nil
		}
	}

	var room model.Room
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return NotFoundErr
		}

		rb := b.Bucket([]byte(code))
		if rb == nil {
			return NotFoundErr
		}

		fields := map[string]json.RawMessage{}
		if err := rb.ForEach(func(k, v []byte) error {
			raw := make(json.RawMessage, len(v))
			copy(raw, v)
			fields[string(k)] = raw
			return nil
		}); err != nil {
			return fmt.Errorf("bucket for each: %w", err)
		}

		return unmarshalFields(fields, &room)
	}); err != nil {
		return room, err
	}

	if db.cache != nil {
		db.cache.Add(code, room)
	}

	return room, nil
}

// Store replaces every field of the room wholesale.
func (db *DB) Store(room model.Room) error {
	fields, err := marshalFields(room)
	if err != nil {
		return err
	}

	return db.put(room.Code, fields, room)
}

// Set replaces only the named fields, leaving the rest of the room intact.
func (db *DB) Set(code string, fields map[string]any) error {
	encoded := make(map[string][]byte, len(fields))
	for name, value := range fields {
		raw, err := encodeField(value)
		if err != nil {
			return fmt.Errorf("encode field %q: %w", name, err)
		}
		encoded[name] = raw
	}

	if db.cache != nil {
		db.cache.Delete(code)
	}

	return db.update(code, encoded)
}

func (db *DB) Exists(code string) (bool, error) {
	var found bool
	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		found = b.Bucket([]byte(code)) != nil
		return nil
	}); err != nil {
		return false, fmt.Errorf("view transaction error: %w", err)
	}

	return found, nil
}

func (db *DB) Delete(code string) error {
	if db.cache != nil {
		db.cache.Delete(code)
	}

	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		if err := b.DeleteBucket([]byte(code)); err != nil && err != bolt.ErrBucketNotFound {
			return fmt.Errorf("delete bucket: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func (db *DB) put(code string, fields map[string][]byte, room model.Room) error {
	if err := db.update(code, fields); err != nil {
		return err
	}

	if db.cache != nil {
		db.cache.Add(code, room)
	}

	return nil
}

func (db *DB) update(code string, fields map[string][]byte) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		rb, err := b.CreateBucketIfNotExists([]byte(code))
		if err != nil {
			return fmt.Errorf("create room bucket: %w", err)
		}

		for name, raw := range fields {
			if err := rb.Put([]byte(name), raw); err != nil {
				return fmt.Errorf("put to bucket error: %w", err)
			}
		}

		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}

	return nil
}

func encodeField(value any) ([]byte, error) {
	buf := bytespool.Get()
	defer bytespool.Put(buf)

	if err := json.NewEncoder(buf).Encode(value); err != nil {
		return nil, err
	}

	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func marshalFields(v any) (map[string][]byte, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal fields: %w", err)
	}

	out := make(map[string][]byte, len(fields))
	for name, raw := range fields {
		out[name] = raw
	}
	return out, nil
}

func unmarshalFields(fields map[string]json.RawMessage, v any) error {
	bytes, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	if err := json.Unmarshal(bytes, v); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	return nil
}
