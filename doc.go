/*
Package hashgrid provides a uniform 3D spatial hash grid for radius-bounded neighbor queries.

A Storage buckets a dynamic set of point-like elements into fixed-size cells
over a bounded domain. The domain's minimum corner sits at the world origin;
elements outside it are clamped into the nearest boundary cell. Positions are
read through a caller-supplied function, so elements can move freely between
calls to Update.

Core Concepts:

  - Hash: The grid geometry, mapping positions and cell coordinates to cell ids.
  - Bucket: The elements currently assigned to one cell.
  - Tag: A capability attached to an element, used to narrow neighbor queries.
  - Query: A combination of tags evaluated against each candidate.

Basic Usage:

	type Boid struct{ Pos r3.Vec }

	sto, _ := hashgrid.FactoryNewStorage(nil, func(b *Boid) r3.Vec { return b.Pos }, 1, 10, 10, 10)

	leader := hashgrid.FactoryNewTag[Leader]()
	sto.Add(&Boid{Pos: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}}, leader)
	sto.Add(&Boid{Pos: r3.Vec{X: 9.5, Y: 9.5, Z: 9.5}})

	for b := range sto.Neighbors(r3.Vec{}, 1) {
		fmt.Println(b.Pos)
	}

	// After elements move
	sto.Update()

Elements are removed from the bucket they were last indexed into, so Remove
works even when an element moved since the last Update. Neighbor queries
always test the live position.

Update recomputes positions on several goroutines (see Config) and then
fills buckets on the calling goroutine. Storage is not safe for concurrent
mutation; concurrent Neighbors and Find calls are fine while no mutation runs.
*/
package hashgrid
