package usecases

import "github.com/lintang-b-s/transit-access-link/pkg/datastructure"

type LinkStore interface {
	SaveLinks(links []datastructure.AccessLink) error
	GetLink(id string) (datastructure.AccessLink, error)
	ListLinks() ([]datastructure.AccessLink, error)
}

// Options overrides the service defaults for a single run. zero values keep the default,
// a nil Radius keeps the default radius.
type Options struct {
	Units    string
	Radius   *float64
	NodeType string
	Workers  int
	// store the generated links in the link store.
	Persist bool
}

type GenerateParams struct {
	Options
	NetworkNodes []datastructure.NetworkNodeRecord
	ServiceNodes []datastructure.ServiceNodeRecord
}

// FileParams names the input files. exactly one of NetworkNodePath and OSMPath must be set.
type FileParams struct {
	Options
	NetworkNodePath string
	OSMPath         string
	ServiceNodePath string
}

type Defaults struct {
	Units    string
	Radius   float64
	NodeType string
	Workers  int
}
