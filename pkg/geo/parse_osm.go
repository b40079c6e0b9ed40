package geo

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/k0kubun/go-ansi"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/schollz/progressbar/v3"
)

// ParseOSMNetworkNodes returns the nodes of every drivable highway way in an .osm.pbf file,
// in file order. x = lon, y = lat.
func ParseOSMNetworkNodes(ctx context.Context, mapfile string) ([]datastructure.NetworkNode, error) {
	f, err := os.Open(mapfile)
	if err != nil {
		return []datastructure.NetworkNode{}, err
	}
	defer f.Close()

	bar := progressbar.NewOptions(3,
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan][1/2]Parsing osm road network..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	bar.Add(1)

	// process osm ways
	roadNodes := make(map[osm.NodeID]bool)

	scannerWay := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
	scannerWay.SkipNodes = true
	scannerWay.SkipRelations = true

	ways := 0
	for scannerWay.Scan() {
		o := scannerWay.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)

		nodeIDs := make([]int64, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodeIDs = append(nodeIDs, int64(node.ID))
		}
		if !NewOSMWay(int64(way.ID), nodeIDs, way.TagMap()).IsRoad() {
			continue
		}

		for _, node := range way.Nodes {
			roadNodes[node.ID] = true
		}
		ways++
	}

	scanErr := scannerWay.Err()
	scannerWay.Close()
	if scanErr != nil {
		return []datastructure.NetworkNode{}, fmt.Errorf("scan osm ways: %w", scanErr)
	}
	bar.Add(1)

	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return []datastructure.NetworkNode{}, err
	}

	// process osm nodes
	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	nodes := make([]datastructure.NetworkNode, 0, len(roadNodes))
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if !roadNodes[node.ID] {
			continue
		}
		nodes = append(nodes, datastructure.NewNetworkNode(int64(node.ID), node.Lon, node.Lat))
	}

	scanErr = scanner.Err()
	if scanErr != nil {
		return []datastructure.NetworkNode{}, fmt.Errorf("scan osm nodes: %w", scanErr)
	}
	bar.Add(1)

	if ways > 0 && len(nodes) == 0 {
		return nodes, fmt.Errorf("osm file %s has %d road ways but none of their nodes", mapfile, ways)
	}

	return nodes, nil
}
