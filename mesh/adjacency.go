package mesh

import (
	"fmt"

	"github.com/notargets/starcsr/types"
	"github.com/notargets/starcsr/utils"
	"golang.org/x/sync/errgroup"
)

// Typical node degree in a tet mesh, used to size the neighbor sets
const neighborCapacity = 24

// BuildCSR builds the node to node adjacency of the grid in compressed sparse row form.
// Two nodes are adjacent when they share a tet, and every node is adjacent to itself.
// Boundary faces are not used, every boundary face is assumed to be a face of some tet.
// The grid must satisfy Validate, BuildCSRParallel checks this and returns an error instead.
func BuildCSR(g *Grid) CSR {
	nn := g.NumNodes()
	sets := make([]*utils.SortedSet[int], nn)
	for n := 0; n < nn; n++ {
		sets[n] = utils.NewSortedSet[int](neighborCapacity)
		sets[n].Insert(n)
	}
	for _, tet := range g.Tets {
		insertTetNeighbors(sets, tet)
	}
	return flatten(sets)
}

// insertTetNeighbors makes every pair of tet nodes mutually adjacent, 12 ordered insertions
func insertTetNeighbors(sets []*utils.SortedSet[int], tet types.TetNodes) {
	for _, a := range tet {
		for _, b := range tet {
			if a != b {
				sets[a].Insert(b)
			}
		}
	}
}

func flatten(sets []*utils.SortedSet[int]) (c CSR) {
	var total int
	for _, s := range sets {
		total += s.Len()
	}
	c.IA = make([]int, len(sets)+1)
	c.JA = make([]int, 0, total)
	for n, s := range sets {
		c.JA = append(c.JA, s.Values()...)
		c.IA[n+1] = c.IA[n] + s.Len()
	}
	return
}

/*
BuildCSRParallel produces the same result as BuildCSR using parallelDegree workers.

The node range is split into contiguous buckets. Each worker owns the neighbor sets for its
bucket and visits only the tets incident on its nodes, found through a node to tet incidence
index, so no set is shared between workers. The per node degrees are then prefix summed and
each worker copies its sets into its own disjoint range of JA.
*/
func BuildCSRParallel(g *Grid, parallelDegree int) (c CSR, err error) {
	if parallelDegree < 1 {
		err = fmt.Errorf("parallel degree must be at least 1, got %d", parallelDegree)
		return
	}
	if err = g.Validate(); err != nil {
		return
	}
	var (
		nn       = g.NumNodes()
		pm       = utils.NewPartitionMap(parallelDegree, nn)
		incident = nodeToTet(g)
		buckets  = make([][]*utils.SortedSet[int], pm.ParallelDegree)
		build    errgroup.Group
		fill     errgroup.Group
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		build.Go(func() error {
			nMin, nMax := pm.GetBucketRange(np)
			sets := make([]*utils.SortedSet[int], pm.GetBucketDimension(np))
			for n := nMin; n < nMax; n++ {
				s := utils.NewSortedSet[int](neighborCapacity)
				s.Insert(n)
				sets[n-nMin] = s
				for _, k := range incident.Neighbors(n) {
					tet := g.Tets[k]
					for _, b := range tet {
						if b != n {
							s.Insert(b)
						}
					}
				}
			}
			buckets[np] = sets
			return nil
		})
	}
	if err = build.Wait(); err != nil {
		return
	}

	c.IA = make([]int, nn+1)
	for n := 0; n < nn; n++ {
		bn, nMin, _ := pm.GetBucket(n)
		c.IA[n+1] = c.IA[n] + buckets[bn][n-nMin].Len()
	}
	c.JA = make([]int, c.IA[nn])
	for np := 0; np < pm.ParallelDegree; np++ {
		fill.Go(func() error {
			nMin, _ := pm.GetBucketRange(np)
			for i, s := range buckets[np] {
				copy(c.JA[c.IA[nMin+i]:], s.Values())
			}
			return nil
		})
	}
	err = fill.Wait()
	return
}

// nodeToTet returns, in CSR form, the tets incident on each node
func nodeToTet(g *Grid) (c CSR) {
	nn := g.NumNodes()
	c.IA = make([]int, nn+1)
	for _, tet := range g.Tets {
		for _, n := range tet {
			c.IA[n+1]++
		}
	}
	for n := 0; n < nn; n++ {
		c.IA[n+1] += c.IA[n]
	}
	var (
		fill = make([]int, nn)
	)
	c.JA = make([]int, c.IA[nn])
	for k, tet := range g.Tets {
		for _, n := range tet {
			c.JA[c.IA[n]+fill[n]] = k
			fill[n]++
		}
	}
	return
}
