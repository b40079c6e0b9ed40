package gmns

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lintang-b-s/transit-access-link/pkg"
	"github.com/lintang-b-s/transit-access-link/pkg/datastructure"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb/encoding/wkt"
)

var (
	networkNodeColumns = []string{"node_id", "x_coord", "y_coord"}
	serviceNodeColumns = []string{"node_id", "x_coord", "y_coord", "directed_service_id", "node_type"}

	AccessLinkColumns = []string{"id", "name", "from_node_id", "to_node_id", "length", "lanes", "dir_flag",
		"free_speed", "capacity", "allowed_uses", "geometry"}
)

func isGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// readTable reads the wanted columns of a csv file, by header name. other columns are ignored.
func readTable(path string, columns []string, onRow func(row []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if isGzip(path) {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return pkg.WrapErrorf(err, pkg.ErrDataError, "%s: empty file, no header", path)
	}
	if err != nil {
		return err
	}

	headerPos := make(map[string]int, len(header))
	for i, h := range header {
		// utf-8 bom written by excel / pandas
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		headerPos[h] = i
	}

	positions := make([]int, len(columns))
	for i, col := range columns {
		pos, ok := headerPos[col]
		if !ok {
			return pkg.WrapErrorf(nil, pkg.ErrDataError, "%s: column %s not found", path, col)
		}
		positions[i] = pos
	}

	row := make([]string, len(columns))
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		for i, pos := range positions {
			if pos >= len(record) {
				return pkg.WrapErrorf(nil, pkg.ErrDataError, "%s line %d: missing column %s", path, line, columns[i])
			}
			row[i] = record[pos]
		}
		if err := onRow(row); err != nil {
			return err
		}
	}
}

// ReadNetworkNodes reads node_id, x_coord, y_coord of a GMNS node file.
func ReadNetworkNodes(path string) ([]datastructure.NetworkNodeRecord, error) {
	records := []datastructure.NetworkNodeRecord{}
	err := readTable(path, networkNodeColumns, func(row []string) error {
		records = append(records, datastructure.NetworkNodeRecord{
			NodeID: row[0],
			XCoord: row[1],
			YCoord: row[2],
		})
		return nil
	})
	return records, err
}

// ReadServiceNodes reads the transit node file produced by the GTFS to GMNS conversion.
func ReadServiceNodes(path string) ([]datastructure.ServiceNodeRecord, error) {
	records := []datastructure.ServiceNodeRecord{}
	err := readTable(path, serviceNodeColumns, func(row []string) error {
		records = append(records, datastructure.ServiceNodeRecord{
			NodeID:            row[0],
			XCoord:            row[1],
			YCoord:            row[2],
			DirectedServiceID: row[3],
			NodeType:          row[4],
		})
		return nil
	})
	return records, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// AccessLinkRow renders a link in AccessLinkColumns order, geometry as WKT.
func AccessLinkRow(link datastructure.AccessLink) []string {
	return []string{
		link.ID,
		link.Name,
		strconv.FormatInt(link.FromNodeID, 10),
		strconv.FormatInt(link.ToNodeID, 10),
		formatFloat(link.Length),
		strconv.Itoa(link.Lanes),
		strconv.Itoa(link.DirFlag),
		formatFloat(link.FreeSpeed),
		strconv.Itoa(link.Capacity),
		link.AllowedUses,
		wkt.MarshalString(link.Geometry),
	}
}

// WriteAccessLinks writes links as a csv table. a header is written even if links is empty.
func WriteAccessLinks(path string, links []datastructure.AccessLink) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var gz *gzip.Writer
	if isGzip(path) {
		gz = gzip.NewWriter(bw)
		w = gz
	}

	if err = EncodeAccessLinks(w, links); err != nil {
		return err
	}
	if gz != nil {
		if err = gz.Close(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func EncodeAccessLinks(w io.Writer, links []datastructure.AccessLink) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(AccessLinkColumns); err != nil {
		return err
	}
	for _, link := range links {
		if err := cw.Write(AccessLinkRow(link)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
