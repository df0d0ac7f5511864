package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inovacc/cardvault/internal/encoding"
	"github.com/inovacc/cardvault/internal/model"
	"go.etcd.io/bbolt"
)

// Bolt stores each card as JSON in a bbolt bucket keyed by card ID.
type Bolt struct {
	storage *bbolt.DB
	bucket  []byte
}

// NewBolt opens (or creates) the bbolt database at path and ensures the
// bucket exists.
func NewBolt(path, bucket string) (*Bolt, error) {
	if bucket == "" {
		return nil, persistenceError(model.BackendBolt, "open", errors.New("bucket name is required"))
	}

	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, persistenceError(model.BackendBolt, "open", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, persistenceError(model.BackendBolt, "open", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, persistenceError(model.BackendBolt, "open", err)
	}

	return &Bolt{storage: instance, bucket: []byte(bucket)}, nil
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) Ping() error {
	return persistenceError(model.BackendBolt, "ping", b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(b.bucket) == nil {
			return fmt.Errorf("bucket %q missing", b.bucket)
		}

		return nil
	}))
}

func (b *Bolt) List(ctx context.Context) ([]model.CharacterCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []model.CharacterCard

	err := b.storage.View(func(tx *bbolt.Tx) error {
		cards := tx.Bucket(b.bucket)

		return cards.ForEach(func(k, v []byte) error {
			var c model.CharacterCard

			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("decoding card %s: %w", k, err)
			}

			out = append(out, c)

			return nil
		})
	})
	if err != nil {
		return nil, persistenceError(model.BackendBolt, "list", err)
	}

	return out, nil
}

func (b *Bolt) Get(ctx context.Context, id string) (model.CharacterCard, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.CharacterCard{}, false, err
	}

	var (
		card  model.CharacterCard
		found bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(b.bucket).Get([]byte(id))
		if v == nil {
			return nil
		}

		found = true

		return json.Unmarshal(v, &card)
	})
	if err != nil {
		return model.CharacterCard{}, false, persistenceError(model.BackendBolt, "get", err)
	}

	return card, found, nil
}

func (b *Bolt) Put(ctx context.Context, card model.CharacterCard) error {
	return b.PutAll(ctx, []model.CharacterCard{card})
}

func (b *Bolt) PutAll(ctx context.Context, cards []model.CharacterCard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := validateCards(model.BackendBolt, "put", cards...); err != nil {
		return err
	}

	encoded := make([][]byte, len(cards))

	for i := range cards {
		data, err := json.Marshal(&cards[i])
		if err != nil {
			return persistenceError(model.BackendBolt, "put", err)
		}

		encoded[i] = data
	}

	return persistenceError(model.BackendBolt, "put", b.storage.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(b.bucket)

		for i, card := range cards {
			if err := bucket.Put([]byte(card.ID), encoded[i]); err != nil {
				return err
			}
		}

		return nil
	}))
}

func (b *Bolt) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return persistenceError(model.BackendBolt, "delete", b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(b.bucket).Delete([]byte(id))
	}))
}
