package datastructure

// NodeKind is the GMNS node_type of a transit node.
type NodeKind string

// BusServiceNode is the default eligible kind. any other node_type can be selected by name.
const BusServiceNode NodeKind = "bus_service_node"

// NetworkNode model info
// @Description road network node that an access link may end at. x = longitude, y = latitude.
type NetworkNode struct {
	ID int64   `json:"node_id"`
	X  float64 `json:"x_coord"`
	Y  float64 `json:"y_coord"`
}

func NewNetworkNode(id int64, x, y float64) NetworkNode {
	return NetworkNode{
		ID: id,
		X:  x,
		Y:  y,
	}
}

// ServiceNode model info
// @Description transit node (bus stop / service node) that needs a connector into the road network.
type ServiceNode struct {
	ID                int64    `json:"node_id"`
	X                 float64  `json:"x_coord"`
	Y                 float64  `json:"y_coord"`
	Kind              NodeKind `json:"node_type"`
	DirectedServiceID string   `json:"directed_service_id"`
}

func NewServiceNode(id int64, x, y float64, kind NodeKind, directedServiceID string) ServiceNode {
	return ServiceNode{
		ID:                id,
		X:                 x,
		Y:                 y,
		Kind:              kind,
		DirectedServiceID: directedServiceID,
	}
}

// NetworkNodeRecord is one raw row of a network node table, before numeric coercion.
type NetworkNodeRecord struct {
	NodeID string
	XCoord string
	YCoord string
}

// ServiceNodeRecord is one raw row of a transit node table, before numeric coercion.
type ServiceNodeRecord struct {
	NodeID            string
	XCoord            string
	YCoord            string
	DirectedServiceID string
	NodeType          string
}
