package dbbadger

import (
	"context"
	"errors"
	"reflect"

	"github.com/Local-DAO/LocalMoney-sub000/internal/core/domain"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"
)

// txStore routes every badgerhold call through the transaction carried by the
// context, if any.
type txStore struct {
	store *badgerhold.Store
}

func (s txStore) get(ctx context.Context, key, result interface{}) error {
	var err error
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		err = s.store.TxGet(tx, key, result)
	} else {
		err = s.store.Get(key, result)
	}
	return mapDecodeError(mapError(err))
}

func (s txStore) insert(ctx context.Context, key, data interface{}) error {
	var err error
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		err = s.store.TxInsert(tx, key, data)
	} else {
		err = s.store.Insert(key, data)
	}
	return mapError(err)
}

func (s txStore) update(ctx context.Context, key, data interface{}) error {
	var err error
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		err = s.store.TxUpdate(tx, key, data)
	} else {
		err = s.store.Update(key, data)
	}
	return mapError(err)
}

func (s txStore) upsert(ctx context.Context, key, data interface{}) error {
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return s.store.TxUpsert(tx, key, data)
	}
	return s.store.Upsert(key, data)
}

func (s txStore) find(
	ctx context.Context, result interface{}, query *badgerhold.Query,
) error {
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return s.store.TxFind(tx, result, query)
	}
	return s.store.Find(result, query)
}

// scan calls fn with the key and the raw value of every record stored with
// the type of dataType. Values are valid only until fn returns.
func (s txStore) scan(
	ctx context.Context, dataType interface{},
	fn func(key string, value []byte) error,
) error {
	prefix := []byte("bh_" + reflect.TypeOf(dataType).Name() + ":")
	iterate := func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var key string
			if err := badgerhold.DefaultDecode(
				item.Key()[len(prefix):], &key,
			); err != nil {
				return err
			}
			if err := item.Value(func(value []byte) error {
				return fn(key, value)
			}); err != nil {
				return err
			}
		}
		return nil
	}

	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return iterate(tx)
	}
	return s.store.Badger().View(iterate)
}

func (s txStore) decode(value []byte, result interface{}) error {
	return mapDecodeError(badgerhold.DefaultDecode(value, result))
}

// mapDecodeError marks the text unmarshaling failures of stored fields as a
// corrupt record.
func mapDecodeError(err error) error {
	if err == nil {
		return nil
	}
	for _, e := range []error{
		domain.ErrUnknownStatus, domain.ErrInvalidIdentity, domain.ErrInvalidAddress,
	} {
		if errors.Is(err, e) {
			return domain.NewCorruptRecordError(err)
		}
	}
	return err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badgerhold.ErrNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, badgerhold.ErrKeyExists) {
		return domain.ErrDuplicateAddress
	}
	return err
}
