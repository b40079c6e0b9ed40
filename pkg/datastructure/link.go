package datastructure

import (
	"strconv"

	"github.com/paulmach/orb"
)

const (
	AccessLinkName    = "transit_access_link"
	AccessLinkLanes   = 1
	AccessLinkDirFlag = 0
	AccessLinkCap     = 0
	// transit only
	AccessLinkAllowedUses = "t"
)

// AccessLink model info
// @Description connector from a service node to its nearest network node.
type AccessLink struct {
	ID          string         `json:"id" msgpack:"id"`
	Name        string         `json:"name" msgpack:"name"`
	FromNodeID  int64          `json:"from_node_id" msgpack:"from_node_id"`
	ToNodeID    int64          `json:"to_node_id" msgpack:"to_node_id"`
	Length      float64        `json:"length" msgpack:"length"` // miles (customary) or km (metric)
	Lanes       int            `json:"lanes" msgpack:"lanes"`
	DirFlag     int            `json:"dir_flag" msgpack:"dir_flag"`
	FreeSpeed   float64        `json:"free_speed" msgpack:"free_speed"`
	Capacity    int            `json:"capacity" msgpack:"capacity"`
	AllowedUses string         `json:"allowed_uses" msgpack:"allowed_uses"`
	Geometry    orb.LineString `json:"geometry" msgpack:"geometry"`
}

// NewAccessLink builds the link from a service node to the network node it was matched with.
func NewAccessLink(from ServiceNode, to NetworkNode, length, freeSpeed float64) AccessLink {
	return AccessLink{
		ID:          strconv.FormatInt(from.ID, 10),
		Name:        AccessLinkName,
		FromNodeID:  from.ID,
		ToNodeID:    to.ID,
		Length:      length,
		Lanes:       AccessLinkLanes,
		DirFlag:     AccessLinkDirFlag,
		FreeSpeed:   freeSpeed,
		Capacity:    AccessLinkCap,
		AllowedUses: AccessLinkAllowedUses,
		Geometry:    orb.LineString{orb.Point{from.X, from.Y}, orb.Point{to.X, to.Y}},
	}
}
