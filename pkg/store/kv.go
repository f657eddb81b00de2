package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// slotKey is the single fixed key a KV commits the current snapshot under.
// One game, one slot — matching spec.md §6's "single serializable
// snapshot"; grounded on hailam-chessplay's storage.Storage, which keys
// preferences and stats the same way.
const slotKey = "saktris/snapshot"

// KV is an optional embedded-database backing for Snapshot persistence.
// Encode/Decode alone satisfy the round-trip law without it; KV exists for
// hosts that want durable save/load across process restarts.
type KV struct {
	db *badger.DB
}

// OpenKV opens (creating if absent) a badger database rooted at dir.
func OpenKV(dir string) (*KV, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger db at %q: %w", dir, err)
	}
	return &KV{db: db}, nil
}

func (kv *KV) Close() error {
	if kv.db == nil {
		return nil
	}
	return kv.db.Close()
}

// Save commits snap to the fixed slot, replacing any prior save.
func (kv *KV) Save(snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	return kv.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(slotKey), data)
	})
}

// Load reads the saved snapshot from the fixed slot. ok is false if no
// save exists yet.
func (kv *KV) Load() (snap Snapshot, ok bool, err error) {
	err = kv.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(slotKey))
		if getErr == badger.ErrKeyNotFound {
			return nil
		}
		if getErr != nil {
			return getErr
		}
		ok = true
		return item.Value(func(val []byte) error {
			decoded, decErr := Decode(val)
			if decErr != nil {
				return decErr
			}
			snap = decoded
			return nil
		})
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("store: load snapshot: %w", err)
	}
	return snap, ok, nil
}
