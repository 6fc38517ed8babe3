package mesh

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/starcsr/types"
)

// TestMeshes provides a collection of standard meshes shared by the grid, adjacency and reader tests
type TestMeshes struct {
	// One tet on nodes 0..3 plus node 4 that no tet uses
	SingleTet *Grid
	// Two tets sharing a face
	TwoTetMesh *Grid
	// Unit cube split into 6 tets around the 0-7 diagonal, with its 12 boundary triangles
	CubeMesh *Grid
	// Two tets with no node in common
	DisjointMesh *Grid
}

// GetStandardTestMeshes returns a fresh set of standard test meshes
func GetStandardTestMeshes() *TestMeshes {
	return &TestMeshes{
		SingleTet:    createSingleTet(),
		TwoTetMesh:   createTwoTetMesh(),
		CubeMesh:     createCubeMesh(),
		DisjointMesh: createDisjointMesh(),
	}
}

func createSingleTet() *Grid {
	return &Grid{
		Coords: []types.NodeCoords{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {2, 2, 2},
		},
		Tets:    []types.TetNodes{{0, 1, 2, 3}},
		TetTags: []int{7},
		Bnds:    []types.TriNodes{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}},
		BndTags: []int{1, 1, 2, 2},
	}
}

func createTwoTetMesh() *Grid {
	return &Grid{
		Coords: []types.NodeCoords{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1},
		},
		Tets:    []types.TetNodes{{0, 1, 2, 3}, {1, 2, 3, 4}},
		TetTags: []int{1, 2},
		Bnds: []types.TriNodes{
			{0, 2, 1}, {0, 1, 3}, {0, 3, 2},
			{1, 2, 4}, {1, 4, 3}, {2, 3, 4},
		},
		BndTags: []int{3, 3, 3, 4, 4, 4},
	}
}

func createCubeMesh() *Grid {
	// node index = i + 2j + 4k for corner (i,j,k)
	g := &Grid{}
	for k := 0; k < 2; k++ {
		for j := 0; j < 2; j++ {
			for i := 0; i < 2; i++ {
				g.Coords = append(g.Coords, types.NodeCoords{float64(i), float64(j), float64(k)})
			}
		}
	}
	g.Tets = []types.TetNodes{
		{0, 1, 3, 7}, {0, 1, 5, 7}, {0, 2, 3, 7},
		{0, 2, 6, 7}, {0, 4, 5, 7}, {0, 4, 6, 7},
	}
	g.TetTags = []int{1, 1, 1, 1, 1, 1}
	g.Bnds = []types.TriNodes{
		{0, 2, 6}, {0, 4, 6}, // x = 0
		{1, 3, 7}, {1, 5, 7}, // x = 1
		{0, 1, 5}, {0, 4, 5}, // y = 0
		{2, 3, 7}, {2, 6, 7}, // y = 1
		{0, 1, 3}, {0, 2, 3}, // z = 0
		{4, 5, 7}, {4, 6, 7}, // z = 1
	}
	g.BndTags = []int{1, 1, 2, 2, 3, 3, 3, 3, 4, 4, 5, 5}
	return g
}

func createDisjointMesh() *Grid {
	return &Grid{
		Coords: []types.NodeCoords{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			{5, 0, 0}, {6, 0, 0}, {5, 1, 0}, {5, 0, 1},
		},
		Tets:    []types.TetNodes{{0, 1, 2, 3}, {4, 5, 6, 7}},
		TetTags: []int{1, 1},
	}
}

// StarCDText renders a grid in the StarCD .vrt, .cel and .bnd layouts with 1-based node ids.
// Tets are written as degenerate hexes c0 c1 c2 c2 c3 c3 c3 c3.
func StarCDText(g *Grid, offsetBoundaries bool) (vrt, cel, bnd string) {
	var sb strings.Builder
	for n, c := range g.Coords {
		fmt.Fprintf(&sb, "%d %s\n", n+1, c)
	}
	vrt = sb.String()

	sb.Reset()
	for k, t := range g.Tets {
		fmt.Fprintf(&sb, "%d %d %d %d %d %d %d %d %d %d\n", k+1,
			t[0]+1, t[1]+1, t[2]+1, t[2]+1, t[3]+1, t[3]+1, t[3]+1, t[3]+1, g.TetTags[k])
	}
	cel = sb.String()

	sb.Reset()
	off := 0
	if offsetBoundaries {
		off = 1
	}
	for k, f := range g.Bnds {
		fmt.Fprintf(&sb, "%d %d %d %d 0 %d\n", k+1, f[0]+off, f[1]+off, f[2]+off, g.BndTags[k])
	}
	bnd = sb.String()
	return
}

// WriteStarCDFiles writes dir/name.vrt, dir/name.cel and dir/name.bnd and returns the basename
func WriteStarCDFiles(dir, name, vrt, cel, bnd string) (basename string, err error) {
	basename = filepath.Join(dir, name)
	for ext, content := range map[string]string{".vrt": vrt, ".cel": cel, ".bnd": bnd} {
		if err = os.WriteFile(basename+ext, []byte(content), 0644); err != nil {
			return
		}
	}
	return
}
