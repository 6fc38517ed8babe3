package readers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notargets/starcsr/mesh"
	"github.com/notargets/starcsr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Five nodes, node 4 is only referenced through the unused trailing cell slots
const (
	singleTetVrt = `1 0.0 0.0 0.0
2 1.0 0.0 0.0
3 0.0 1.0 0.0
4 0.0 0.0 1.0
5 2.0 2.0 2.0
`
	singleTetCel = "1 1 2 3 3 4 4 5 5 7\n"
	singleTetBnd = `1 1 3 2 0 10
2 1 2 4 0 10
3 2 3 4 0 11
4 1 4 3 0 11
`
)

func createTempStarCD(t *testing.T, vrt, cel, bnd string) string {
	t.Helper()
	basename, err := mesh.WriteStarCDFiles(t.TempDir(), "test", vrt, cel, bnd)
	if err != nil {
		t.Fatalf("Failed to create temp files: %v", err)
	}
	return basename
}

func TestReadStarCD_SingleTet(t *testing.T) {
	basename := createTempStarCD(t, singleTetVrt, singleTetCel, singleTetBnd)

	g, err := ReadStarCD(basename)
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 5, g.NumNodes())
	assert.Equal(t, types.NodeCoords{0, 1, 0}, g.Coords[2])
	assert.Equal(t, types.NodeCoords{2, 2, 2}, g.Coords[4])
	assert.Equal(t, []types.TetNodes{{0, 1, 2, 3}}, g.Tets)
	assert.Equal(t, []int{7}, g.TetTags)
	assert.Equal(t, []types.TriNodes{{0, 2, 1}, {0, 1, 3}, {1, 2, 3}, {0, 3, 2}}, g.Bnds)
	assert.Equal(t, []int{10, 10, 11, 11}, g.BndTags)

	c := mesh.BuildCSR(g)
	require.NoError(t, c.Validate())
	assert.Equal(t, []int{0, 4, 8, 12, 16, 17}, c.IA)
	assert.Equal(t, []int{4}, c.Neighbors(4))
}

func TestReadStarCD_StandardMeshes(t *testing.T) {
	tm := mesh.GetStandardTestMeshes()
	for name, want := range map[string]*mesh.Grid{
		"TwoTetMesh": tm.TwoTetMesh,
		"CubeMesh":   tm.CubeMesh,
		"SingleTet":  tm.SingleTet,
	} {
		t.Run(name, func(t *testing.T) {
			vrt, cel, bnd := mesh.StarCDText(want, true)
			g, err := ReadStarCD(createTempStarCD(t, vrt, cel, bnd))
			require.NoError(t, err)
			assert.Equal(t, want.Coords, g.Coords)
			assert.Equal(t, want.Tets, g.Tets)
			assert.Equal(t, want.TetTags, g.TetTags)
			assert.Equal(t, want.Bnds, g.Bnds)
			assert.Equal(t, want.BndTags, g.BndTags)
			assert.Equal(t, mesh.BuildCSR(want), mesh.BuildCSR(g))
		})
	}
}

func TestReadStarCD_Formatting(t *testing.T) {
	// Blank lines are skipped, extra tokens ignored, tabs and runs of spaces are separators
	vrt := "1 0 0 0 extra\n\n2\t1 0 0\n3   0 1 0 9 9\n4 0 0 1\n"
	cel := "\n1 1 2 3 3 4 4 4 4 3 trailing garbage\n"
	bnd := "1 1 2 3 0 5 0.5\n\n"
	g, err := ReadStarCD(createTempStarCD(t, vrt, cel, bnd))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, []types.TetNodes{{0, 1, 2, 3}}, g.Tets)
	assert.Equal(t, []int{3}, g.TetTags)
	assert.Equal(t, []types.TriNodes{{0, 1, 2}}, g.Bnds)
	assert.Equal(t, []int{5}, g.BndTags)
}

func TestReadStarCD_EmptyFiles(t *testing.T) {
	g, err := ReadStarCD(createTempStarCD(t, "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
	assert.Equal(t, 0, g.NumTets())
	assert.Equal(t, []int{0}, mesh.BuildCSR(g).IA)
}

func TestReadStarCD_BoundaryOffset(t *testing.T) {
	tm := mesh.GetStandardTestMeshes()
	vrt, cel, bnd := mesh.StarCDText(tm.TwoTetMesh, false)
	basename := createTempStarCD(t, vrt, cel, bnd)

	opts := DefaultOptions()
	opts.OffsetBoundaries = false
	g, err := ReadStarCDWithOptions(basename, opts)
	require.NoError(t, err)
	assert.Equal(t, tm.TwoTetMesh.Bnds, g.Bnds)

	// The same 0-based file read with the offset shifts node 0 to -1
	_, err = ReadStarCD(basename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, basename+".bnd", le.File)
}

func TestReadStarCD_Errors(t *testing.T) {
	tests := []struct {
		name          string
		vrt, cel, bnd string
		kind          error
		file          string
		line          int
		contains      string
	}{
		{
			name: "unsupported cell shape",
			vrt:  singleTetVrt, cel: "1 1 2 3 4 5 6 7 8 1\n", bnd: singleTetBnd,
			kind: ErrUnsupportedCellShape, file: ".cel", line: 1,
		},
		{
			name: "hex after a tet",
			vrt:  singleTetVrt, cel: singleTetCel + "2 1 2 3 4 1 2 3 4 1\n", bnd: singleTetBnd,
			kind: ErrUnsupportedCellShape, file: ".cel", line: 2,
		},
		{
			name: "cell refers past the last node",
			vrt:  singleTetVrt, cel: "1 1 2 3 3 6 6 6 6 1\n", bnd: singleTetBnd,
			kind: ErrIndexOutOfRange, file: ".cel", contains: "node 5, have 5 nodes",
		},
		{
			name: "unused cell slot refers past the last node",
			vrt:  singleTetVrt, cel: "1 1 2 3 3 4 4 9 9 1\n", bnd: singleTetBnd,
			kind: ErrIndexOutOfRange, file: ".cel",
		},
		{
			name: "zero id in a cell",
			vrt:  singleTetVrt, cel: "1 0 2 3 3 4 4 4 4 1\n", bnd: singleTetBnd,
			kind: ErrIndexOutOfRange, file: ".cel",
		},
		{
			name: "boundary refers past the last node",
			vrt:  singleTetVrt, cel: singleTetCel, bnd: singleTetBnd + "5 1 2 6 0 10\n",
			kind: ErrIndexOutOfRange, file: ".bnd",
		},
		{
			name: "short node record",
			vrt:  "1 0 0 0\n2 1 0\n", cel: "", bnd: "",
			kind: ErrStreamFailure, file: ".vrt", line: 2,
		},
		{
			name: "non numeric coordinate",
			vrt:  "1 0 0 zero\n", cel: "", bnd: "",
			kind: ErrStreamFailure, file: ".vrt", line: 1,
		},
		{
			name: "cell record missing its tag",
			vrt:  singleTetVrt, cel: "1 1 2 3 3 4 4 5 5\n", bnd: singleTetBnd,
			kind: ErrStreamFailure, file: ".cel", line: 1,
		},
		{
			name: "truncated cell record",
			vrt:  singleTetVrt, cel: "1 1 2 3\n", bnd: singleTetBnd,
			kind: ErrStreamFailure, file: ".cel", line: 1,
		},
		{
			name: "truncated boundary record",
			vrt:  singleTetVrt, cel: singleTetCel, bnd: "1 1 2 3 0\n",
			kind: ErrStreamFailure, file: ".bnd", line: 1,
		},
		{
			name: "over long line",
			vrt:  "1 0 0 0 " + strings.Repeat("9", 70*1024) + "\n", cel: "", bnd: "",
			kind: ErrStreamFailure, file: ".vrt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			basename := createTempStarCD(t, tt.vrt, tt.cel, tt.bnd)
			g, err := ReadStarCD(basename)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, basename+tt.file, le.File)
			if tt.line > 0 {
				assert.Equal(t, tt.line, le.Line)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestReadStarCD_OpenFailure(t *testing.T) {
	dir := t.TempDir()
	basename := createTempStarCD(t, singleTetVrt, singleTetCel, singleTetBnd)

	_, err := ReadStarCD(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpenFailure))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, os.Remove(basename+".bnd"))
	_, err = ReadStarCD(basename)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOpenFailure))
	assert.Contains(t, err.Error(), ".bnd")
}

func TestReadStarCD_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	basename := createTempStarCD(t, singleTetVrt, singleTetCel, singleTetBnd)
	_, err := ReadStarCDWithOptions(basename, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, logs.FilterMessage("success reading").Len())

	_, err = ReadStarCDWithOptions(filepath.Join(t.TempDir(), "missing"), opts)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("mesh load aborted").Len())

	// A nil logger is replaced by a no-op logger
	_, err = ReadStarCDWithOptions(basename, Options{IndexOffset: 1, OffsetBoundaries: true})
	assert.NoError(t, err)
}

func TestReadMeshFile(t *testing.T) {
	basename := createTempStarCD(t, singleTetVrt, singleTetCel, singleTetBnd)
	for _, name := range []string{basename, basename + ".vrt", basename + ".cel", basename + ".bnd"} {
		g, err := ReadMeshFile(name)
		require.NoError(t, err, name)
		assert.Equal(t, 1, g.NumTets())
	}
	_, err := ReadMeshFile(basename + ".neu")
	assert.ErrorContains(t, err, "unsupported mesh format")
}
