package matcher

import (
	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/concurrent"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"
	"github.com/lintang-b-s/transit-access-link/pkg/geo"

	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

type Config struct {
	System geo.MeasurementSystem
	// upper bound of the planar distance between a service node and its network node,
	// in the unit of the input coordinates.
	Radius  float64
	Speeds  geo.SpeedTable
	Workers int
}

// Engine matches service nodes to their nearest network node and builds access links.
type Engine struct {
	log       *zap.Logger
	cfg       Config
	freeSpeed float64
}

// NewEngine validates cfg. nothing is indexed until Match is called.
func NewEngine(log *zap.Logger, cfg Config) (*Engine, error) {
	if _, err := geo.ParseMeasurementSystem(string(cfg.System)); err != nil {
		return nil, err
	}
	if !(cfg.Radius > 0) {
		return nil, pkg.WrapErrorf(nil, pkg.ErrBadParamInput, "search radius must be positive, got %v", cfg.Radius)
	}
	if cfg.Speeds == nil {
		cfg.Speeds = geo.DefaultSpeedTable()
	}
	freeSpeed, err := cfg.Speeds.Speed(cfg.System)
	if err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	log.Info("access link matcher ready: radius is tested on planar coordinate distance, link length is unit-sphere distance",
		zap.String("units", string(cfg.System)),
		zap.String("length_unit", cfg.System.LengthUnit()),
		zap.Float64("radius", cfg.Radius),
		zap.Float64("free_speed", freeSpeed),
		zap.Int("workers", cfg.Workers))

	return &Engine{
		log:       log,
		cfg:       cfg,
		freeSpeed: freeSpeed,
	}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

type matchJob struct {
	pos    int
	source datastructure.ServiceNode
}

func (j matchJob) ID() int { return j.pos }

type matchResult struct {
	link  datastructure.AccessLink
	found bool
}

// Match returns one access link per source whose nearest target lies within the radius,
// in source order. sources without a match are skipped.
func (e *Engine) Match(targets []datastructure.NetworkNode, sources []datastructure.ServiceNode) []datastructure.AccessLink {
	if len(sources) == 0 || len(targets) == 0 {
		e.log.Info("nothing to match",
			zap.Int("service_nodes", len(sources)), zap.Int("network_nodes", len(targets)))
		return []datastructure.AccessLink{}
	}

	e.warnIfNotLonLat(targets, sources)

	e.log.Info("building spatial index", zap.Int("network_nodes", len(targets)))
	index := datastructure.NewNodeIndex(targets)

	var results []matchResult
	if e.cfg.Workers > 1 && len(sources) > 1 {
		results = e.matchParallel(index, sources)
	} else {
		results = make([]matchResult, len(sources))
		for i, source := range sources {
			results[i] = e.matchOne(index, source)
		}
	}

	links := make([]datastructure.AccessLink, 0, len(sources))
	for _, r := range results {
		if r.found {
			links = append(links, r.link)
		}
	}

	e.log.Info("access links generated",
		zap.Int("service_nodes", len(sources)),
		zap.Int("access_links", len(links)),
		zap.Int("unmatched", len(sources)-len(links)))
	return links
}

func (e *Engine) matchParallel(index *datastructure.NodeIndex, sources []datastructure.ServiceNode) []matchResult {
	bw := concurrent.NewBackgroundWorker[matchJob, matchResult](e.cfg.Workers, 2*e.cfg.Workers, len(sources),
		func(job matchJob) matchResult {
			return e.matchOne(index, job.source)
		})
	bw.Start()
	for i, source := range sources {
		bw.TriggerProcessing(matchJob{pos: i, source: source})
	}
	bw.Close()
	return bw.Results()
}

func (e *Engine) matchOne(index *datastructure.NodeIndex, source datastructure.ServiceNode) matchResult {
	target, planarDist, ok := index.NearestWithin(source.X, source.Y, e.cfg.Radius)
	if !ok {
		e.log.Debug("no network node within radius",
			zap.Int64("service_node_id", source.ID), zap.Float64("nearest_planar_distance", planarDist))
		return matchResult{}
	}

	length := geo.UnitSphereDistance(orb.Point{source.X, source.Y}, orb.Point{target.X, target.Y}, e.cfg.System)
	return matchResult{
		link:  datastructure.NewAccessLink(source, target, length, e.freeSpeed),
		found: true,
	}
}

func (e *Engine) warnIfNotLonLat(targets []datastructure.NetworkNode, sources []datastructure.ServiceNode) {
	xs := make([]float64, 0, len(targets)+len(sources))
	ys := make([]float64, 0, len(targets)+len(sources))
	for _, t := range targets {
		xs = append(xs, t.X)
		ys = append(ys, t.Y)
	}
	for _, s := range sources {
		xs = append(xs, s.X)
		ys = append(ys, s.Y)
	}

	bb := geo.NewBoundingBox(xs, ys)
	if !geo.IsLonLat(bb) {
		e.log.Warn("coordinates are outside lon/lat range, unit-sphere link lengths will be meaningless",
			zap.Float64s("min", bb.GetMin()), zap.Float64s("max", bb.GetMax()))
	}
}
