package geo

type OSMWay struct {
	ID      int64
	NodeIDs []int64
	TagMap  map[string]string
}

func NewOSMWay(id int64, nodeIDs []int64, tagMap map[string]string) OSMWay {
	return OSMWay{
		ID:      id,
		NodeIDs: nodeIDs,
		TagMap:  tagMap,
	}
}

// IsRoad reports whether the way is a drivable highway.
func (w OSMWay) IsRoad() bool {
	highway, ok := w.TagMap["highway"]
	return ok && IsRoadHighway(highway)
}
