package kvdb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var (
	ErrorsKeyNotExists = errors.New("key not exists")
)

const (
	BBOLTDB_BUCKET = "accessLinks"
)

type KVDB struct {
	db *bbolt.DB
	sync.Mutex
}

// NewKVDB creates the access link bucket if it does not exist yet.
func NewKVDB(db *bbolt.DB) (*KVDB, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BBOLTDB_BUCKET))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create bucket %s: %w", BBOLTDB_BUCKET, err)
	}

	return &KVDB{db,
		sync.Mutex{}}, nil
}

// save access links to boltDB. batching. a link with an existing id is overwritten.
func (db *KVDB) SaveLinks(links []datastructure.AccessLink) error {
	db.Lock()
	defer db.Unlock()
	return db.db.Batch(func(tx *bbolt.Tx) error {
		for _, link := range links {
			err := db.Set(link, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (db *KVDB) Set(link datastructure.AccessLink, tx *bbolt.Tx) error {

	linkBytes, err := msgpack.Marshal(&link)
	if err != nil {
		return err
	}
	b := tx.Bucket([]byte(BBOLTDB_BUCKET))
	err = b.Put([]byte(link.ID), linkBytes)
	if err != nil {
		return err
	}
	return nil // harus return nil , kalau return err kena rollback txn-nya
}

func (db *KVDB) GetLink(id string) (link datastructure.AccessLink, err error) {

	viewErr := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_BUCKET))
		linkBytes := b.Get([]byte(id))
		if linkBytes == nil {
			err = pkg.WrapErrorf(ErrorsKeyNotExists, pkg.ErrNotFound, "access link with id: %s not found", id)
			return nil
		}
		// linkBytes is only valid inside the transaction, msgpack copies what it decodes.
		err = msgpack.Unmarshal(linkBytes, &link)
		return nil
	})
	if viewErr != nil {
		return link, viewErr
	}
	return
}

// ListLinks returns every stored link ordered by id bytes.
func (db *KVDB) ListLinks() ([]datastructure.AccessLink, error) {
	links := []datastructure.AccessLink{}
	err := db.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BBOLTDB_BUCKET))
		return b.ForEach(func(k, v []byte) error {
			var link datastructure.AccessLink
			if err := msgpack.Unmarshal(v, &link); err != nil {
				return fmt.Errorf("decode access link %s: %w", string(k), err)
			}
			links = append(links, link)
			return nil
		})
	})
	return links, err
}

func (db *KVDB) Close() error {
	return db.db.Close()
}
