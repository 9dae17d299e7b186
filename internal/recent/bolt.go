package recent

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketRecent = []byte("recent_orders")

// BoltRepository stores each list as a JSON array keyed by owner.
type BoltRepository struct {
	db *bbolt.DB
}

// NewBoltRepository creates the bucket if needed.
func NewBoltRepository(db *bbolt.DB) (*BoltRepository, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRecent); err != nil {
			return fmt.Errorf("failed to create recent bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &BoltRepository{db: db}, nil
}

func (r *BoltRepository) List(_ context.Context, owner string) ([]int64, error) {
	var ids []int64
	err := r.db.View(func(tx *bbolt.Tx) error {
		var err error
		ids, err = readList(tx.Bucket(bucketRecent), owner)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *BoltRepository) Add(_ context.Context, owner string, id int64) ([]int64, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return r.update(owner, func(ids []int64) []int64 { return Push(ids, id) })
}

func (r *BoltRepository) Remove(_ context.Context, owner string, id int64) ([]int64, error) {
	return r.update(owner, func(ids []int64) []int64 { return Without(ids, id) })
}

func (r *BoltRepository) Clear(_ context.Context, owner string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRecent).Delete([]byte(owner))
	})
}

func (r *BoltRepository) update(owner string, fn func([]int64) []int64) ([]int64, error) {
	var next []int64
	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketRecent)
		current, err := readList(bucket, owner)
		if err != nil {
			return err
		}
		next = fn(current)

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal recent orders: %w", err)
		}
		return bucket.Put([]byte(owner), data)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// readList treats a corrupt value like an empty list.
func readList(bucket *bbolt.Bucket, owner string) ([]int64, error) {
	if bucket == nil {
		return nil, fmt.Errorf("recent bucket not found")
	}
	data := bucket.Get([]byte(owner))
	if data == nil {
		return []int64{}, nil
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return []int64{}, nil
	}
	return Normalize(ids), nil
}
