package readers

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/notargets/starcsr/mesh"
	"github.com/notargets/starcsr/types"
	"go.uber.org/zap"
)

// StarCD node ids are 1-based
const IndexOffset = 1

// Options control how the StarCD files are interpreted
type Options struct {
	// IndexOffset is subtracted from every node id in the cell file
	IndexOffset int
	// OffsetBoundaries applies IndexOffset to the boundary face node ids as well
	OffsetBoundaries bool
	Logger           *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		IndexOffset:      IndexOffset,
		OffsetBoundaries: true,
		Logger:           zap.NewNop(),
	}
}

// ReadStarCD reads basename.vrt, basename.cel and basename.bnd with the default options
func ReadStarCD(basename string) (*mesh.Grid, error) {
	return ReadStarCDWithOptions(basename, DefaultOptions())
}

/*
ReadStarCDWithOptions reads a tetrahedral StarCD mesh split over three files:

	basename.vrt   id x y z
	basename.cel   id c0 c1 c2 c3 c4 c5 c6 c7 volumeTag
	basename.bnd   id f0 f1 f2 id boundaryTag

The leading ids are discarded, nodes are numbered by their order in the .vrt file.
A cell is a tet when c2 == c3 and c4 == c5, and is stored as {c0, c1, c2, c4}; any other
cell shape aborts the load. Tokens beyond those listed are ignored, as are blank lines.
Any failure returns a *LoadError and no grid.
*/
func ReadStarCDWithOptions(basename string, opts Options) (g *mesh.Grid, err error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	var (
		logger = opts.Logger
		rng    nodeRange
	)
	defer func() {
		if err != nil {
			logger.Error("mesh load aborted", zap.String("basename", basename), zap.Error(err))
		}
	}()
	g = &mesh.Grid{}
	if g.Coords, err = readVertices(basename+".vrt", logger); err != nil {
		return nil, err
	}

	cellFile := basename + ".cel"
	if g.Tets, g.TetTags, rng, err = readCells(cellFile, opts.IndexOffset, logger); err != nil {
		return nil, err
	}
	if err = rng.check(cellFile, len(g.Coords)); err != nil {
		return nil, err
	}

	bndFile := basename + ".bnd"
	bndOffset := 0
	if opts.OffsetBoundaries {
		bndOffset = opts.IndexOffset
	}
	if g.Bnds, g.BndTags, rng, err = readBoundaries(bndFile, bndOffset, logger); err != nil {
		return nil, err
	}
	if err = rng.check(bndFile, len(g.Coords)); err != nil {
		return nil, err
	}
	return g, nil
}

func readVertices(filename string, logger *zap.Logger) (coords []types.NodeCoords, err error) {
	err = scanRecords(filename, logger, func(fields []string) (kind, err error) {
		if len(fields) < 4 {
			return ErrStreamFailure, fmt.Errorf("node record needs 4 fields, got %d", len(fields))
		}
		var c types.NodeCoords
		if c, err = types.ParseArray3[float64](fields[1:]); err != nil {
			return ErrStreamFailure, err
		}
		coords = append(coords, c)
		return
	})
	return
}

func readCells(filename string, offset int, logger *zap.Logger) (tets []types.TetNodes, tags []int, rng nodeRange, err error) {
	rng = newNodeRange()
	err = scanRecords(filename, logger, func(fields []string) (kind, err error) {
		var conn [8]int
		if len(fields) < 9 {
			return ErrStreamFailure, fmt.Errorf("cell record needs 10 fields, got %d", len(fields))
		}
		if err = types.ParseValues(conn[:], fields[1:9]); err != nil {
			return ErrStreamFailure, err
		}
		for n := range conn {
			conn[n] -= offset
			rng.add(conn[n])
		}
		// A tet is stored as a degenerate hex
		if conn[2] != conn[3] || conn[4] != conn[5] {
			return ErrUnsupportedCellShape, fmt.Errorf("cell connectivity %v", conn)
		}
		if len(fields) < 10 {
			return ErrStreamFailure, fmt.Errorf("cell record needs 10 fields, got %d", len(fields))
		}
		var vtag int
		if vtag, err = types.ParseNumber[int](fields[9]); err != nil {
			return ErrStreamFailure, err
		}
		tets = append(tets, types.TetNodes{conn[0], conn[1], conn[2], conn[4]})
		tags = append(tags, vtag)
		return
	})
	return
}

func readBoundaries(filename string, offset int, logger *zap.Logger) (bnds []types.TriNodes, tags []int, rng nodeRange, err error) {
	rng = newNodeRange()
	err = scanRecords(filename, logger, func(fields []string) (kind, err error) {
		if len(fields) < 6 {
			return ErrStreamFailure, fmt.Errorf("boundary record needs 6 fields, got %d", len(fields))
		}
		var (
			face  types.TriNodes
			btype int
		)
		if face, err = types.ParseArray3[int](fields[1:4]); err != nil {
			return ErrStreamFailure, err
		}
		if btype, err = types.ParseNumber[int](fields[5]); err != nil {
			return ErrStreamFailure, err
		}
		for n := range face {
			face[n] -= offset
			rng.add(face[n])
		}
		bnds = append(bnds, face)
		tags = append(tags, btype)
		return
	})
	return
}

// scanRecords calls parse with the fields of each non blank line of filename.
// parse returns the failure kind along with its error.
func scanRecords(filename string, logger *zap.Logger, parse func(fields []string) (kind, err error)) error {
	file, err := os.Open(filename)
	if err != nil {
		return newLoadError(filename, 0, ErrOpenFailure, err)
	}
	defer file.Close()

	var (
		scanner = bufio.NewScanner(file)
		line    int
		records int
	)
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if kind, err := parse(fields); err != nil {
			return newLoadError(filename, line, kind, err)
		}
		records++
	}
	if err = scanner.Err(); err != nil {
		return newLoadError(filename, line+1, ErrStreamFailure, err)
	}
	logger.Debug("success reading", zap.String("file", filename), zap.Int("records", records))
	return nil
}

// nodeRange tracks the smallest and largest node index referenced by a file
type nodeRange struct {
	min, max int
}

func newNodeRange() nodeRange { return nodeRange{min: math.MaxInt, max: math.MinInt} }

func (r *nodeRange) add(n int) {
	r.min = min(r.min, n)
	r.max = max(r.max, n)
}

func (r nodeRange) check(filename string, numNodes int) error {
	if r.max == math.MinInt { // nothing referenced
		return nil
	}
	if r.max >= numNodes {
		return newLoadError(filename, 0, ErrIndexOutOfRange,
			fmt.Errorf("node %d, have %d nodes", r.max, numNodes))
	}
	if r.min < 0 {
		return newLoadError(filename, 0, ErrIndexOutOfRange,
			fmt.Errorf("node %d, indices must not be negative", r.min))
	}
	return nil
}
