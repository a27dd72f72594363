package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/storage"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/types"
)

// ErrCorrupt marks persisted data that cannot be read back as a cart.
var ErrCorrupt = errors.New("cart: corrupt persisted data")

// Storage loads and saves the item list of one cart.
type Storage interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
}

// KVStorage keeps a cart as a JSON array under a single key.
type KVStorage struct {
	kv  storage.KV
	key string
}

var _ Storage = (*KVStorage)(nil)

func NewKVStorage(kv storage.KV, key string) *KVStorage {
	return &KVStorage{kv: kv, key: key}
}

// Key returns the storage key the cart lives under.
func (s *KVStorage) Key() string {
	return s.key
}

// Load returns storage.ErrNotFound when nothing is stored and an ErrCorrupt wrap when
// the value does not decode.
func (s *KVStorage) Load(ctx context.Context) ([]LineItem, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return DecodeItems(raw)
}

func (s *KVStorage) Save(ctx context.Context, items []LineItem) error {
	raw, err := EncodeItems(items)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, raw)
}

type itemRecord struct {
	ID       json.Number  `json:"id"`
	Name     string       `json:"name"`
	Price    *json.Number `json:"price"`
	Quantity json.Number  `json:"quantity"`
	Image    *string      `json:"image"`
}

// EncodeItems serializes items in the persisted schema. An empty cart encodes as [].
func EncodeItems(items []LineItem) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, itemRecord{
			ID:       json.Number(strconv.FormatInt(item.ID, 10)),
			Name:     item.Name,
			Price:    types.OptionalNumber(item.Price),
			Quantity: json.Number(strconv.Itoa(item.Quantity)),
			Image:    item.Image,
		})
	}
	return json.Marshal(records)
}

// DecodeItems parses the persisted schema, rejecting anything that would break the
// cart invariants.
func DecodeItems(raw []byte) ([]LineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty value", ErrCorrupt)
	}

	var records []itemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	items := make([]LineItem, 0, len(records))
	seen := make(map[int64]struct{}, len(records))
	for i, rec := range records {
		id, err := strconv.ParseInt(rec.ID.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: invalid id %q", ErrCorrupt, i, rec.ID)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrCorrupt, id)
		}
		seen[id] = struct{}{}

		qty, err := strconv.Atoi(rec.Quantity.String())
		if err != nil || qty < MinQuantity {
			return nil, fmt.Errorf("%w: item %d: invalid quantity %q", ErrCorrupt, id, rec.Quantity)
		}

		price, err := types.OptionalDecimal(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorrupt, id, err)
		}

		items = append(items, LineItem{
			ID:       id,
			Name:     rec.Name,
			Price:    price,
			Quantity: qty,
			Image:    rec.Image,
		})
	}
	return items, nil
}
