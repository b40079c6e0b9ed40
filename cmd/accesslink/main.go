package main

import (
	"flag"
	"log"
	"os"

	shortcontext "github.com/lintang-b-s/transit-access-link/pkg/di/context"
	logger_di "github.com/lintang-b-s/transit-access-link/pkg/di/logger"
	"github.com/lintang-b-s/transit-access-link/pkg/gmns"
	"github.com/lintang-b-s/transit-access-link/pkg/http/usecases"
	"github.com/lintang-b-s/transit-access-link/pkg/kvdb"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	networkFile = flag.String("network", "", "GMNS node.csv of the road network (node_id, x_coord, y_coord)")
	osmFile     = flag.String("osm", "", "openstreetmap .osm.pbf file, used instead of -network")
	serviceFile = flag.String("service", "", "GMNS transit node.csv (node_id, x_coord, y_coord, node_type)")
	units       = flag.String("units", "customary", "measurement system of link length and free speed: customary or metric")
	radius      = flag.Float64("radius", 10000, "search radius in coordinate units")
	workers     = flag.Int("workers", 1, "number of matcher goroutines")
	nodeType    = flag.String("node-type", "bus_service_node", "node_type of the service nodes that get an access link")
	outputFile  = flag.String("o", "access_link.csv", "output csv, .gz is compressed")
	dbFile      = flag.String("db", "", "bbolt file to also store the links in")
)

func main() {
	flag.Parse()

	logger, cleanup, err := logger_di.New()
	if err != nil {
		log.Fatal(err)
	}

	err = run(logger)
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	ctx, cancel, _ := shortcontext.New()
	defer cancel()

	var store usecases.LinkStore
	if *dbFile != "" {
		db, err := bolt.Open(*dbFile, 0600, nil)
		if err != nil {
			logger.Error("open link store", zap.String("path", *dbFile), zap.Error(err))
			return err
		}
		kv, err := kvdb.NewKVDB(db)
		if err != nil {
			_ = db.Close()
			logger.Error("open link store", zap.String("path", *dbFile), zap.Error(err))
			return err
		}
		defer kv.Close()
		store = kv
	}

	svc := usecases.New(logger, store, usecases.Defaults{})
	links, err := svc.GenerateFromFiles(ctx, usecases.FileParams{
		Options: usecases.Options{
			Units:    *units,
			Radius:   radius,
			NodeType: *nodeType,
			Workers:  *workers,
			Persist:  store != nil,
		},
		NetworkNodePath: *networkFile,
		OSMPath:         *osmFile,
		ServiceNodePath: *serviceFile,
	})
	if err != nil {
		logger.Error("generate access links", zap.Error(err))
		return err
	}

	if err := gmns.WriteAccessLinks(*outputFile, links); err != nil {
		logger.Error("write access links", zap.String("path", *outputFile), zap.Error(err))
		return err
	}
	logger.Info("done", zap.String("output", *outputFile), zap.Int("access_links", len(links)))
	return nil
}
