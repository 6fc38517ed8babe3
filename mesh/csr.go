package mesh

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/notargets/starcsr/types"
	"github.com/notargets/starcsr/utils"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

/*
CSR is the node adjacency graph in compressed sparse row form.
The neighbors of node n are JA[IA[n]:IA[n+1]], ascending, and always include n itself.
len(IA) is the number of nodes plus one and IA[len(IA)-1] == len(JA).
*/
type CSR struct {
	IA []int
	JA []int
}

func (c CSR) NumNodes() int {
	if len(c.IA) == 0 {
		return 0
	}
	return len(c.IA) - 1
}

func (c CSR) NNZ() int { return len(c.JA) }

func (c CSR) Degree(n int) int { return c.IA[n+1] - c.IA[n] }

// Neighbors returns a view into JA, callers must not modify it
func (c CSR) Neighbors(n int) []int { return c.JA[c.IA[n]:c.IA[n+1]] }

func (c CSR) MaxDegree() (maxDeg int) {
	for n := 0; n < c.NumNodes(); n++ {
		maxDeg = max(maxDeg, c.Degree(n))
	}
	return
}

// Validate checks the structural guarantees of the node adjacency
func (c CSR) Validate() error {
	if len(c.IA) == 0 {
		return fmt.Errorf("row offsets are empty, need at least one entry")
	}
	if c.IA[0] != 0 {
		return fmt.Errorf("first row offset is %d, should be 0", c.IA[0])
	}
	nn := c.NumNodes()
	if c.IA[nn] != len(c.JA) {
		return fmt.Errorf("last row offset %d does not match neighbor count %d", c.IA[nn], len(c.JA))
	}
	for n := 0; n < nn; n++ {
		if c.IA[n+1] < c.IA[n] {
			return fmt.Errorf("row offsets decrease at node %d", n)
		}
		if c.IA[n+1] > len(c.JA) {
			return fmt.Errorf("row offset %d of node %d is past the neighbor count %d", c.IA[n+1], n, len(c.JA))
		}
		var hasSelf bool
		nbrs := c.Neighbors(n)
		for i, m := range nbrs {
			if m < 0 || m >= nn {
				return fmt.Errorf("node %d has illegal neighbor %d", n, m)
			}
			if i > 0 && nbrs[i-1] >= m {
				return fmt.Errorf("neighbors of node %d are not strictly ascending: %v", n, nbrs)
			}
			if m == n {
				hasSelf = true
			}
		}
		if !hasSelf {
			return fmt.Errorf("node %d is missing from its own neighbor list", n)
		}
	}
	return nil
}

// Adjacent reports whether b is in the neighbor list of a
func (c CSR) Adjacent(a, b int) bool {
	nbrs := c.Neighbors(a)
	i := sort.SearchInts(nbrs, b)
	return i < len(nbrs) && nbrs[i] == b
}

// Edges returns each undirected edge once, self adjacency excluded, in node order
func (c CSR) Edges() (edges []types.EdgeKey) {
	edges = make([]types.EdgeKey, 0, max(0, c.NNZ()-c.NumNodes())/2)
	for n := 0; n < c.NumNodes(); n++ {
		for _, m := range c.Neighbors(n) {
			if m > n {
				edges = append(edges, types.NewEdgeKey([2]int{n, m}))
			}
		}
	}
	return
}

// Pattern returns a square sparse matrix of ones with the adjacency as its structure
func (c CSR) Pattern() (utils.CSR, error) {
	nn := c.NumNodes()
	return utils.NewCSRPattern(nn, nn, c.IA, c.JA)
}

// Graph returns the adjacency as a gonum undirected graph, node IDs are node indices
func (c CSR) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for n := 0; n < c.NumNodes(); n++ {
		g.AddNode(simple.Node(n))
	}
	for _, e := range c.Edges() {
		v := e.GetVertices()
		g.SetEdge(g.NewEdge(simple.Node(v[0]), simple.Node(v[1])))
	}
	return g
}

// ConnectedComponents counts the disjoint pieces of the mesh, isolated nodes count as one each
func (c CSR) ConnectedComponents() int {
	return len(topo.ConnectedComponents(c.Graph()))
}

// Write emits "nodes nnz", then IA and JA each on one line, as plain text
func (c CSR) Write(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)
	if _, err = fmt.Fprintf(bw, "%d %d\n", c.NumNodes(), c.NNZ()); err != nil {
		return
	}
	for _, arr := range [][]int{c.IA, c.JA} {
		buf := make([]byte, 0, 16*len(arr))
		for i, v := range arr {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = strconv.AppendInt(buf, int64(v), 10)
		}
		buf = append(buf, '\n')
		if _, err = bw.Write(buf); err != nil {
			return
		}
	}
	return bw.Flush()
}
