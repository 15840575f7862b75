package hashgrid_test

import (
	"fmt"

	"github.com/TheBitDrifter/hashgrid"
	"github.com/TheBitDrifter/table"
	"gonum.org/v1/gonum/spatial/r3"
)

// Particle is a simple tracked element
type Particle struct {
	Name string
	Pos  r3.Vec
}

// Charged marks particles that respond to fields
type Charged struct{}

func particlePosition(p *Particle) r3.Vec {
	return p.Pos
}

// Example_basic shows adding elements and querying around a point
func Example_basic() {
	storage, err := hashgrid.FactoryNewStorage[*Particle](nil, particlePosition, 1, 10, 10, 10)
	if err != nil {
		fmt.Println(err)
		return
	}

	storage.Add(&Particle{Name: "a", Pos: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}})
	storage.Add(&Particle{Name: "b", Pos: r3.Vec{X: 9.5, Y: 9.5, Z: 9.5}})

	for p := range storage.Neighbors(r3.Vec{}, 1) {
		fmt.Println("near origin:", p.Name)
	}

	count := 0
	for range storage.Neighbors(r3.Vec{X: 5, Y: 5, Z: 5}, 20) {
		count++
	}
	fmt.Println("within 20 of center:", count)

	// Output:
	// near origin: a
	// within 20 of center: 2
}

// Example_moving shows re-indexing after elements move
func Example_moving() {
	storage, _ := hashgrid.FactoryNewStorage[*Particle](nil, particlePosition, 2, 5, 5, 5)

	p := &Particle{Name: "drifter", Pos: r3.Vec{X: 1, Y: 1, Z: 1}}
	storage.Add(p)
	fmt.Println("cell at start:", storage.StatAt(r3.Vec{X: 1, Y: 1, Z: 1}))

	p.Pos = r3.Vec{X: 9, Y: 9, Z: 9}
	storage.Update()
	fmt.Println("cell at start after update:", storage.StatAt(r3.Vec{X: 1, Y: 1, Z: 1}))
	fmt.Println("cell at end after update:", storage.StatAt(p.Pos))

	// Output:
	// cell at start: 1
	// cell at start after update: 0
	// cell at end after update: 1
}

// Example_tags shows narrowing a neighbor search with tag queries
func Example_tags() {
	schema := table.Factory.NewSchema()
	storage, _ := hashgrid.FactoryNewStorage[*Particle](schema, particlePosition, 1, 4, 4, 4)
	charged := hashgrid.FactoryNewTag[Charged]()

	storage.Add(&Particle{Name: "proton", Pos: r3.Vec{X: 1, Y: 1, Z: 1}}, charged)
	storage.Add(&Particle{Name: "neutron", Pos: r3.Vec{X: 1.2, Y: 1, Z: 1}})

	query := hashgrid.Factory.NewQuery()
	neutral := query.Not(charged)

	for p := range storage.NeighborsMatching(r3.Vec{X: 1, Y: 1, Z: 1}, 1, neutral) {
		fmt.Println("neutral:", p.Name)
	}
	for p := range storage.NeighborsMatching(r3.Vec{X: 1, Y: 1, Z: 1}, 1, hashgrid.Factory.NewFilter(charged)) {
		fmt.Println("charged:", p.Name)
	}

	// Output:
	// neutral: neutron
	// charged: proton
}
