// Package modelstore keeps trained classifiers in a bbolt database.
package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

var (
	bucketModels = []byte("models")
	bucketLatest = []byte("latest")
)

var ErrNotFound = errors.New("model not found")

// Record is a stored model. Payload holds the serialised classifier.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketModels, bucketLatest} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a new version of the named model and makes it the latest one.
func (s *Store) Put(name string, kind string, payload []byte) (string, error) {
	if name == "" {
		return "", errors.New("model name is empty")
	}
	if !json.Valid(payload) {
		return "", fmt.Errorf("payload of model %s is not valid JSON", name)
	}

	record := Record{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		CreatedAt: s.now().UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketModels).Put([]byte(record.ID), data); err != nil {
			return err
		}
		return tx.Bucket(bucketLatest).Put([]byte(name), []byte(record.ID))
	})
	if err != nil {
		return "", err
	}
	return record.ID, nil
}

func (s *Store) Get(id string) (Record, error) {
	var record Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return get(tx, id, &record)
	})
	return record, err
}

func get(tx *bbolt.Tx, id string, record *Record) error {
	data := tx.Bucket(bucketModels).Get([]byte(id))
	if data == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return json.Unmarshal(data, record)
}

// Latest returns the most recently stored version of a model.
func (s *Store) Latest(name string) (Record, error) {
	var record Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket(bucketLatest).Get([]byte(name))
		if id == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return get(tx, string(id), &record)
	})
	return record, err
}

// List returns all records without payloads, newest first.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketModels).ForEach(func(k, v []byte) error {
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("record %s: %w", k, err)
			}
			record.Payload = nil
			records = append(records, record)
			return nil
		})
	})
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, err
}

// Delete removes a record. If it was the latest version of its model, the
// newest remaining version takes its place.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		var record Record
		if err := get(tx, id, &record); err != nil {
			return err
		}
		models := tx.Bucket(bucketModels)
		if err := models.Delete([]byte(id)); err != nil {
			return err
		}

		latest := tx.Bucket(bucketLatest)
		if string(latest.Get([]byte(record.Name))) != id {
			return nil
		}

		var newest *Record
		err := models.ForEach(func(_, v []byte) error {
			var other Record
			if err := json.Unmarshal(v, &other); err != nil {
				return err
			}
			if other.Name == record.Name && (newest == nil || other.CreatedAt.After(newest.CreatedAt)) {
				newest = &other
			}
			return nil
		})
		if err != nil {
			return err
		}
		if newest == nil {
			return latest.Delete([]byte(record.Name))
		}
		return latest.Put([]byte(record.Name), []byte(newest.ID))
	})
}
