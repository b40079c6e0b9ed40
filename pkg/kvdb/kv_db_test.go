package kvdb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestKVDB(t *testing.T) *KVDB {
	db, err := bolt.Open(filepath.Join(t.TempDir(), "access_links.db"), 0600, nil)
	require.NoError(t, err)

	kv, err := NewKVDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func testLink(from, to int64, length float64) datastructure.AccessLink {
	return datastructure.NewAccessLink(
		datastructure.NewServiceNode(from, -111.88, 40.75, datastructure.BusServiceNode, ""),
		datastructure.NewNetworkNode(to, -111.881, 40.751),
		length, 4.392)
}

func TestSaveAndGetLinks(t *testing.T) {
	kv := newTestKVDB(t)

	links := []datastructure.AccessLink{testLink(20, 1, 0.5), testLink(10, 2, 0.25)}
	require.NoError(t, kv.SaveLinks(links))

	t.Run("get by id", func(t *testing.T) {
		link, err := kv.GetLink("10")
		require.NoError(t, err)
		assert.Equal(t, links[1], link)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := kv.GetLink("99")
		assert.True(t, errors.Is(err, pkg.ErrNotFound))
		assert.True(t, errors.Is(err, ErrorsKeyNotExists))
	})

	t.Run("list ordered by id", func(t *testing.T) {
		stored, err := kv.ListLinks()
		require.NoError(t, err)
		assert.Equal(t, []datastructure.AccessLink{links[1], links[0]}, stored)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, kv.SaveLinks([]datastructure.AccessLink{testLink(10, 3, 0.75)}))
		link, err := kv.GetLink("10")
		require.NoError(t, err)
		assert.Equal(t, int64(3), link.ToNodeID)

		stored, err := kv.ListLinks()
		require.NoError(t, err)
		assert.Len(t, stored, 2)
	})
}

func TestEmptyStore(t *testing.T) {
	kv := newTestKVDB(t)
	require.NoError(t, kv.SaveLinks(nil))
	stored, err := kv.ListLinks()
	require.NoError(t, err)
	assert.Empty(t, stored)
}
