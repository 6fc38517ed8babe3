package types

import (
	"fmt"
	"math"
)

/*
EdgeKey stores an undirected edge between two node indices as a single comparable value.
An edge between nodes [4] and [0] is always stored as [0,4], ascending by index.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// Packs the two node indices into the low and high 32 bits
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices() (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	return
}

func (ek EdgeKey) String() string {
	v := ek.GetVertices()
	return fmt.Sprintf("[%d,%d]", v[0], v[1])
}

// TetEdges returns the 6 edges of a tetrahedron
func TetEdges(tet TetNodes) (edges [6]EdgeKey) {
	var e int
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			edges[e] = NewEdgeKey([2]int{tet[i], tet[j]})
			e++
		}
	}
	return
}
