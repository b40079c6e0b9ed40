package filter

import (
	"math"
	"strings"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/spf13/cast"
)

// Predicate decides whether a transit node row can be the source of an access link.
type Predicate func(datastructure.ServiceNodeRecord) bool

func NodeTypeIs(kind datastructure.NodeKind) Predicate {
	return func(r datastructure.ServiceNodeRecord) bool {
		return r.NodeType == string(kind)
	}
}

// ServiceNodes returns, in input order, the rows accepted by pred with numeric ids and coordinates.
// only accepted rows are coerced.
func ServiceNodes(records []datastructure.ServiceNodeRecord, pred Predicate) ([]datastructure.ServiceNode, error) {
	nodes := make([]datastructure.ServiceNode, 0, len(records))
	for row, r := range records {
		if !pred(r) {
			continue
		}

		id, err := parseID(row, r.NodeID)
		if err != nil {
			return []datastructure.ServiceNode{}, err
		}
		x, err := parseCoord(row, "x_coord", r.XCoord)
		if err != nil {
			return []datastructure.ServiceNode{}, err
		}
		y, err := parseCoord(row, "y_coord", r.YCoord)
		if err != nil {
			return []datastructure.ServiceNode{}, err
		}

		nodes = append(nodes, datastructure.NewServiceNode(id, x, y, datastructure.NodeKind(r.NodeType), r.DirectedServiceID))
	}
	return nodes, nil
}

// NetworkNodes coerces every row of the network node table.
func NetworkNodes(records []datastructure.NetworkNodeRecord) ([]datastructure.NetworkNode, error) {
	nodes := make([]datastructure.NetworkNode, 0, len(records))
	for row, r := range records {
		id, err := parseID(row, r.NodeID)
		if err != nil {
			return []datastructure.NetworkNode{}, err
		}
		x, err := parseCoord(row, "x_coord", r.XCoord)
		if err != nil {
			return []datastructure.NetworkNode{}, err
		}
		y, err := parseCoord(row, "y_coord", r.YCoord)
		if err != nil {
			return []datastructure.NetworkNode{}, err
		}
		nodes = append(nodes, datastructure.NewNetworkNode(id, x, y))
	}
	return nodes, nil
}

func parseID(row int, value string) (int64, error) {
	id, err := cast.ToInt64E(strings.TrimSpace(value))
	if err != nil || strings.TrimSpace(value) == "" {
		return 0, pkg.WrapErrorf(err, pkg.ErrDataError, "row %d: node_id %q is not an integer", row, value)
	}
	return id, nil
}

func parseCoord(row int, field, value string) (float64, error) {
	v, err := cast.ToFloat64E(strings.TrimSpace(value))
	if err != nil {
		return 0, pkg.WrapErrorf(err, pkg.ErrDataError, "row %d: %s %q is not numeric", row, field, value)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, pkg.WrapErrorf(nil, pkg.ErrDataError, "row %d: %s %q is not a finite number", row, field, value)
	}
	return v, nil
}
