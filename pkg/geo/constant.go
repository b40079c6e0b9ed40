package geo

// drivable highway types. an access link may only end on a node of one of these ways.
var roadTypes = map[string]struct{}{
	"motorway":       {},
	"motorroad":      {},
	"trunk":          {},
	"motorway_link":  {},
	"trunk_link":     {},
	"primary":        {},
	"primary_link":   {},
	"secondary":      {},
	"secondary_link": {},
	"tertiary":       {},
	"tertiary_link":  {},
	"unclassified":   {},
	"residential":    {},
	"road":           {},
	"service":        {},
	"track":          {},
	"living_street":  {},
}

func IsRoadHighway(highway string) bool {
	_, ok := roadTypes[highway]
	return ok
}
