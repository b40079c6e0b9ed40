package usecases

import (
	"context"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"
	"github.com/lintang-b-s/transit-access-link/pkg/filter"
	"github.com/lintang-b-s/transit-access-link/pkg/geo"
	"github.com/lintang-b-s/transit-access-link/pkg/gmns"
	"github.com/lintang-b-s/transit-access-link/pkg/matcher"

	"go.uber.org/zap"
)

type AccessLinkService struct {
	log      *zap.Logger
	store    LinkStore
	defaults Defaults
}

// New returns the service. store may be nil, then links are never persisted.
func New(log *zap.Logger, store LinkStore, defaults Defaults) *AccessLinkService {
	if defaults.Units == "" {
		defaults.Units = string(geo.Customary)
	}
	if defaults.Radius == 0 {
		defaults.Radius = 10000
	}
	if defaults.NodeType == "" {
		defaults.NodeType = string(datastructure.BusServiceNode)
	}
	if defaults.Workers < 1 {
		defaults.Workers = 1
	}
	return &AccessLinkService{
		log:      log,
		store:    store,
		defaults: defaults,
	}
}

type resolvedOptions struct {
	system   geo.MeasurementSystem
	radius   float64
	nodeType datastructure.NodeKind
	workers  int
	persist  bool
}

func (s *AccessLinkService) resolve(opts Options) (resolvedOptions, error) {
	units := opts.Units
	if units == "" {
		units = s.defaults.Units
	}
	system, err := geo.ParseMeasurementSystem(units)
	if err != nil {
		return resolvedOptions{}, err
	}

	r := resolvedOptions{
		system:   system,
		radius:   s.defaults.Radius,
		nodeType: datastructure.NodeKind(s.defaults.NodeType),
		workers:  s.defaults.Workers,
		persist:  opts.Persist,
	}
	if opts.Radius != nil {
		r.radius = *opts.Radius
	}
	// also rejects NaN
	if !(r.radius > 0) {
		return resolvedOptions{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "search radius must be positive, got %v", r.radius)
	}
	if opts.NodeType != "" {
		r.nodeType = datastructure.NodeKind(opts.NodeType)
	}
	if opts.Workers > 0 {
		r.workers = opts.Workers
	}
	if r.persist && s.store == nil {
		return resolvedOptions{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "persist requested but no link store is configured")
	}
	return r, nil
}

// Generate builds access links from raw node tables.
func (s *AccessLinkService) Generate(ctx context.Context, params GenerateParams) ([]datastructure.AccessLink, error) {
	opts, err := s.resolve(params.Options)
	if err != nil {
		return []datastructure.AccessLink{}, err
	}

	targets, err := filter.NetworkNodes(params.NetworkNodes)
	if err != nil {
		return []datastructure.AccessLink{}, err
	}
	return s.generate(ctx, opts, targets, params.ServiceNodes)
}

// GenerateFromFiles reads the network from a GMNS node file or an .osm.pbf and the transit
// nodes from a GMNS node file. units are validated before any file is opened.
func (s *AccessLinkService) GenerateFromFiles(ctx context.Context, params FileParams) ([]datastructure.AccessLink, error) {
	opts, err := s.resolve(params.Options)
	if err != nil {
		return []datastructure.AccessLink{}, err
	}
	if (params.NetworkNodePath == "") == (params.OSMPath == "") {
		return []datastructure.AccessLink{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput,
			"exactly one network source is required: network node file or osm pbf file")
	}
	if params.ServiceNodePath == "" {
		return []datastructure.AccessLink{}, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "service node file is required")
	}

	var targets []datastructure.NetworkNode
	if params.OSMPath != "" {
		s.log.Info("reading network nodes from osm", zap.String("path", params.OSMPath))
		targets, err = geo.ParseOSMNetworkNodes(ctx, params.OSMPath)
		if err != nil {
			return []datastructure.AccessLink{}, err
		}
	} else {
		s.log.Info("reading network nodes", zap.String("path", params.NetworkNodePath))
		records, err := gmns.ReadNetworkNodes(params.NetworkNodePath)
		if err != nil {
			return []datastructure.AccessLink{}, err
		}
		targets, err = filter.NetworkNodes(records)
		if err != nil {
			return []datastructure.AccessLink{}, err
		}
	}

	s.log.Info("reading service nodes", zap.String("path", params.ServiceNodePath))
	serviceRecords, err := gmns.ReadServiceNodes(params.ServiceNodePath)
	if err != nil {
		return []datastructure.AccessLink{}, err
	}
	return s.generate(ctx, opts, targets, serviceRecords)
}

func (s *AccessLinkService) generate(ctx context.Context, opts resolvedOptions, targets []datastructure.NetworkNode,
	serviceRecords []datastructure.ServiceNodeRecord) ([]datastructure.AccessLink, error) {
	sources, err := filter.ServiceNodes(serviceRecords, filter.NodeTypeIs(opts.nodeType))
	if err != nil {
		return []datastructure.AccessLink{}, err
	}
	s.log.Info("service nodes selected",
		zap.String("node_type", string(opts.nodeType)),
		zap.Int("rows", len(serviceRecords)),
		zap.Int("selected", len(sources)))

	if err := ctx.Err(); err != nil {
		return []datastructure.AccessLink{}, err
	}

	engine, err := matcher.NewEngine(s.log, matcher.Config{
		System:  opts.system,
		Radius:  opts.radius,
		Workers: opts.workers,
	})
	if err != nil {
		return []datastructure.AccessLink{}, err
	}
	links := engine.Match(targets, sources)

	if opts.persist {
		if err := s.store.SaveLinks(links); err != nil {
			return []datastructure.AccessLink{}, pkg.WrapErrorf(err, pkg.ErrInternalServerError, "save access links")
		}
		s.log.Info("access links saved", zap.Int("count", len(links)))
	}
	return links, nil
}

func (s *AccessLinkService) GetLink(id string) (datastructure.AccessLink, error) {
	if s.store == nil {
		return datastructure.AccessLink{}, pkg.WrapErrorf(nil, pkg.ErrNotFound, "access link with id: %s not found", id)
	}
	return s.store.GetLink(id)
}

func (s *AccessLinkService) ListLinks() ([]datastructure.AccessLink, error) {
	if s.store == nil {
		return []datastructure.AccessLink{}, nil
	}
	return s.store.ListLinks()
}
