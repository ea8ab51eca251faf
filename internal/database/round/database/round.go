package database

import (
	"encoding/json"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"

	"github.com/mine-games/mine/internal/bytespool"
	"github.com/mine-games/mine/internal/database"
	"github.com/mine-games/mine/internal/database/round/model"
	"github.com/mine-games/mine/internal/strpool"
)

var NotFoundErr = fmt.Errorf("not found")

const bucket = "rounds"

func New(db *database.DB) *DB {
	return &DB{sDB: db}
}

// DB persists round snapshots keyed by "{code}:{index}", one nested bucket of
// JSON-encoded fields per round.
type DB struct {
	sDB *database.DB
}

// Key builds the storage key for a round of a room.
func Key(code string, index int) string {
	buf := strpool.Get()
	defer strpool.Put(buf)

	buf.WriteString(code)
	buf.WriteByte(':')
	buf.WriteString(strconv.Itoa(index))
	return buf.String()
}

func (db *DB) Fetch(code string, index int) (model.Round, error) {
	var round model.Round
	key := Key(code, index)

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return NotFoundErr
		}

		rb := b.Bucket([]byte(key))
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

		bytes, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("marshal fields: %w", err)
		}
		if err := json.Unmarshal(bytes, &round); err != nil {
			return fmt.Errorf("unmarshal: %w", err)
		}
		return nil
	}); err != nil {
		return round, err
	}

	return round, nil
}

// Store replaces the full round snapshot in one write.
func (db *DB) Store(code string, round model.Round) error {
	bytes, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes, &fields); err != nil {
		return fmt.Errorf("unmarshal fields: %w", err)
	}

	encoded := make(map[string][]byte, len(fields))
	for name, raw := range fields {
		encoded[name] = raw
	}

	return db.update(Key(code, round.Index), encoded)
}

// Set replaces only the named fields of a stored round.
func (db *DB) Set(code string, index int, fields map[string]any) error {
	encoded := make(map[string][]byte, len(fields))
	for name, value := range fields {
		buf := bytespool.Get()
		if err := json.NewEncoder(buf).Encode(value); err != nil {
			bytespool.Put(buf)
			return fmt.Errorf("encode field %q: %w", name, err)
		}
		raw := make([]byte, buf.Len())
		copy(raw, buf.Bytes())
		bytespool.Put(buf)
		encoded[name] = raw
	}

	return db.update(Key(code, index), encoded)
}

func (db *DB) Exists(code string, index int) (bool, error) {
	var found bool
	key := Key(code, index)

	if err := db.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		found = b.Bucket([]byte(key)) != nil
		return nil
	}); err != nil {
		return false, fmt.Errorf("view transaction error: %w", err)
	}

	return found, nil
}

func (db *DB) update(key string, fields map[string][]byte) error {
	if err := db.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		rb, err := b.CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return fmt.Errorf("create round bucket: %w", err)
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
