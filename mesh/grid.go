package mesh

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/starcsr/types"
	"go.uber.org/zap"
)

// Grid is an unstructured tetrahedral mesh held as parallel slices.
// Tets[i] carries volume tag TetTags[i], Bnds[i] carries boundary tag BndTags[i].
// Every node index in Tets and Bnds is in [0, len(Coords)).
type Grid struct {
	Coords  []types.NodeCoords
	Tets    []types.TetNodes
	TetTags []int
	Bnds    []types.TriNodes
	BndTags []int
}

func (g *Grid) NumNodes() int { return len(g.Coords) }
func (g *Grid) NumTets() int  { return len(g.Tets) }
func (g *Grid) NumBnds() int  { return len(g.Bnds) }

// Validate checks the tag alignment and that every referenced node exists
func (g *Grid) Validate() error {
	if len(g.Tets) != len(g.TetTags) {
		return fmt.Errorf("have %d tets and %d tet tags", len(g.Tets), len(g.TetTags))
	}
	if len(g.Bnds) != len(g.BndTags) {
		return fmt.Errorf("have %d boundary faces and %d boundary tags", len(g.Bnds), len(g.BndTags))
	}
	nn := len(g.Coords)
	for k, tet := range g.Tets {
		for _, n := range tet {
			if n < 0 || n >= nn {
				return fmt.Errorf("tet %d refers to illegal node %d, have %d nodes", k, n, nn)
			}
		}
	}
	for k, tri := range g.Bnds {
		for _, n := range tri {
			if n < 0 || n >= nn {
				return fmt.Errorf("boundary face %d refers to illegal node %d, have %d nodes", k, n, nn)
			}
		}
	}
	return nil
}

// TetTagCounts returns the number of tets carrying each volume tag
func (g *Grid) TetTagCounts() map[int]int { return tagCounts(g.TetTags) }

// BndTagCounts returns the number of boundary faces carrying each boundary tag
func (g *Grid) BndTagCounts() map[int]int { return tagCounts(g.BndTags) }

func tagCounts(tags []int) (counts map[int]int) {
	counts = make(map[int]int)
	for _, t := range tags {
		counts[t]++
	}
	return
}

// BoundingBox returns the min and max corner of the node coordinates, zero for an empty grid
func (g *Grid) BoundingBox() (bb [2]types.NodeCoords) {
	if len(g.Coords) == 0 {
		return
	}
	for i := 0; i < 3; i++ {
		bb[0][i], bb[1][i] = math.Inf(1), math.Inf(-1)
	}
	for _, c := range g.Coords {
		for i := 0; i < 3; i++ {
			bb[0][i] = math.Min(bb[0][i], c[i])
			bb[1][i] = math.Max(bb[1][i], c[i])
		}
	}
	return
}

// LogStatistics writes the grid sizes and tag populations to the logger
func (g *Grid) LogStatistics(logger *zap.Logger) {
	bb := g.BoundingBox()
	logger.Info("grid statistics",
		zap.Int("nodes", g.NumNodes()),
		zap.Int("tets", g.NumTets()),
		zap.Int("boundaryFaces", g.NumBnds()),
		zap.Stringer("bboxMin", bb[0]),
		zap.Stringer("bboxMax", bb[1]),
	)
	for _, tc := range []struct {
		kind   string
		counts map[int]int
	}{
		{"volume", g.TetTagCounts()},
		{"boundary", g.BndTagCounts()},
	} {
		keys := make([]int, 0, len(tc.counts))
		for k := range tc.counts {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			logger.Debug("tag population",
				zap.String("kind", tc.kind), zap.Int("tag", k), zap.Int("count", tc.counts[k]))
		}
	}
}
