package usecases

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type memoryStore struct {
	links map[string]datastructure.AccessLink
	err   error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{links: map[string]datastructure.AccessLink{}}
}

func (m *memoryStore) SaveLinks(links []datastructure.AccessLink) error {
	if m.err != nil {
		return m.err
	}
	for _, l := range links {
		m.links[l.ID] = l
	}
	return nil
}

func (m *memoryStore) GetLink(id string) (datastructure.AccessLink, error) {
	l, ok := m.links[id]
	if !ok {
		return datastructure.AccessLink{}, pkg.WrapErrorf(nil, pkg.ErrNotFound, "access link with id: %s not found", id)
	}
	return l, nil
}

func (m *memoryStore) ListLinks() ([]datastructure.AccessLink, error) {
	links := []datastructure.AccessLink{}
	for _, l := range m.links {
		links = append(links, l)
	}
	return links, nil
}

var (
	networkRecords = []datastructure.NetworkNodeRecord{
		{NodeID: "1", XCoord: "-111.8900", YCoord: "40.7600"},
		{NodeID: "2", XCoord: "-111.8800", YCoord: "40.7500"},
	}
	serviceRecords = []datastructure.ServiceNodeRecord{
		{NodeID: "1001", XCoord: "-111.8901", YCoord: "40.7601", NodeType: "stop"},
		{NodeID: "1002", XCoord: "-111.8801", YCoord: "40.7501", NodeType: "bus_service_node"},
		{NodeID: "1003", XCoord: "-111.8899", YCoord: "40.7599", NodeType: "bus_service_node"},
	}
)

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("only eligible service nodes get a link", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		links, err := svc.Generate(ctx, GenerateParams{
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, int64(1002), links[0].FromNodeID)
		assert.Equal(t, int64(2), links[0].ToNodeID)
		assert.Equal(t, int64(1003), links[1].FromNodeID)
		assert.Equal(t, int64(1), links[1].ToNodeID)
		assert.Equal(t, 2.72727, links[0].FreeSpeed)
	})

	t.Run("node type override", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		links, err := svc.Generate(ctx, GenerateParams{
			Options:      Options{NodeType: "stop", Units: "metric"},
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, int64(1001), links[0].FromNodeID)
		assert.Equal(t, 4.392, links[0].FreeSpeed)
	})

	t.Run("radius excludes far nodes", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{Radius: 0.00001})
		links, err := svc.Generate(ctx, GenerateParams{
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("non positive radius", func(t *testing.T) {
		for _, radius := range []float64{0, -5, math.NaN()} {
			svc := New(zaptest.NewLogger(t), nil, Defaults{})
			links, err := svc.Generate(ctx, GenerateParams{
				Options:      Options{Radius: &radius},
				NetworkNodes: networkRecords,
				ServiceNodes: serviceRecords,
			})
			assert.True(t, errors.Is(err, pkg.ErrBadParamInput), "radius %v", radius)
			assert.Empty(t, links)
		}
	})

	t.Run("invalid units", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		links, err := svc.Generate(ctx, GenerateParams{
			Options:      Options{Units: "imperial"},
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		assert.True(t, errors.Is(err, pkg.ErrInvalidUnitSystem))
		assert.Empty(t, links)
	})

	t.Run("non numeric coordinate", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.Generate(ctx, GenerateParams{
			NetworkNodes: []datastructure.NetworkNodeRecord{{NodeID: "1", XCoord: "abc", YCoord: "1"}},
			ServiceNodes: serviceRecords,
		})
		assert.True(t, errors.Is(err, pkg.ErrDataError))
	})

	t.Run("persist", func(t *testing.T) {
		store := newMemoryStore()
		svc := New(zaptest.NewLogger(t), store, Defaults{})
		links, err := svc.Generate(ctx, GenerateParams{
			Options:      Options{Persist: true},
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		require.NoError(t, err)
		assert.Len(t, store.links, len(links))

		link, err := svc.GetLink("1002")
		require.NoError(t, err)
		assert.Equal(t, links[0], link)
	})

	t.Run("persist without store", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.Generate(ctx, GenerateParams{
			Options:      Options{Persist: true},
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		assert.True(t, errors.Is(err, pkg.ErrBadParamInput))
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemoryStore()
		store.err = errors.New("disk full")
		svc := New(zaptest.NewLogger(t), store, Defaults{})
		_, err := svc.Generate(ctx, GenerateParams{
			Options:      Options{Persist: true},
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		assert.True(t, errors.Is(err, pkg.ErrInternalServerError))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.Generate(cctx, GenerateParams{
			NetworkNodes: networkRecords,
			ServiceNodes: serviceRecords,
		})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestGenerateFromFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	networkPath := writeFile(t, dir, "node.csv", "node_id,osm_node_id,x_coord,y_coord\n"+
		"1,10,-111.8900,40.7600\n"+
		"2,11,-111.8800,40.7500\n")
	servicePath := writeFile(t, dir, "transit_node.csv", "node_id,x_coord,y_coord,node_type,directed_service_id\n"+
		"1001,-111.8901,40.7601,stop,\n"+
		"1002,-111.8801,40.7501,bus_service_node,7\n")

	t.Run("gmns files", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		links, err := svc.GenerateFromFiles(ctx, FileParams{
			NetworkNodePath: networkPath,
			ServiceNodePath: servicePath,
		})
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "1002", links[0].ID)
		assert.Equal(t, int64(2), links[0].ToNodeID)
	})

	t.Run("units are checked before files are opened", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.GenerateFromFiles(ctx, FileParams{
			Options:         Options{Units: "furlongs"},
			NetworkNodePath: filepath.Join(dir, "missing.csv"),
			ServiceNodePath: filepath.Join(dir, "missing.csv"),
		})
		assert.True(t, errors.Is(err, pkg.ErrInvalidUnitSystem))
		assert.False(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("radius is checked before files are opened", func(t *testing.T) {
		radius := -5.0
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.GenerateFromFiles(ctx, FileParams{
			Options:         Options{Radius: &radius},
			NetworkNodePath: filepath.Join(dir, "missing_node.csv"),
			ServiceNodePath: filepath.Join(dir, "missing_transit_node.csv"),
		})
		assert.True(t, errors.Is(err, pkg.ErrBadParamInput))
		assert.False(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("two network sources", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.GenerateFromFiles(ctx, FileParams{
			NetworkNodePath: networkPath,
			OSMPath:         filepath.Join(dir, "map.osm.pbf"),
			ServiceNodePath: servicePath,
		})
		assert.True(t, errors.Is(err, pkg.ErrBadParamInput))
	})

	t.Run("no network source", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.GenerateFromFiles(ctx, FileParams{ServiceNodePath: servicePath})
		assert.True(t, errors.Is(err, pkg.ErrBadParamInput))
	})

	t.Run("missing service node file", func(t *testing.T) {
		svc := New(zaptest.NewLogger(t), nil, Defaults{})
		_, err := svc.GenerateFromFiles(ctx, FileParams{
			NetworkNodePath: networkPath,
			ServiceNodePath: filepath.Join(dir, "missing.csv"),
		})
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestGetLinkWithoutStore(t *testing.T) {
	svc := New(zaptest.NewLogger(t), nil, Defaults{})
	_, err := svc.GetLink("1")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))

	links, err := svc.ListLinks()
	require.NoError(t, err)
	assert.Empty(t, links)
}
