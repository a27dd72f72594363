package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/db/models"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
)

// KV stores carts as rows of cart_snapshots keyed by storage key.
type KV struct {
	db  *gorm.DB
	now func() time.Time
}

var _ storage.KV = (*KV)(nil)

func NewKV(db *gorm.DB) *KV {
	return &KV{db: db, now: time.Now}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var snapshot models.CartSnapshot
	err := k.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Take(&snapshot).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(snapshot.Payload), nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	snapshot := models.CartSnapshot{
		StorageKey: key,
		Payload:    string(value),
		UpdatedAt:  k.now().UTC(),
	}
	return k.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snapshot).
		Error
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.db.WithContext(ctx).
		Where("storage_key = ?", key).
		Delete(&models.CartSnapshot{}).
		Error
}
