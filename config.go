package hashgrid

import "runtime"

// Config holds global configuration for grid re-indexing.
// The setters are not synchronized; call them before any storage is in use,
// never while an Update may be running.
var Config config = config{
	workers:     runtime.GOMAXPROCS(0),
	minParallel: 2048,
}

type config struct {
	workers     int
	minParallel int
}

// SetWorkers caps the number of goroutines used by Update. Values below one are ignored.
func (c *config) SetWorkers(n int) {
	if n > 0 {
		c.workers = n
	}
}

// SetMinParallel sets the tracked element count below which Update runs inline.
func (c *config) SetMinParallel(n int) {
	if n >= 0 {
		c.minParallel = n
	}
}

func (c *config) Workers() int {
	return c.workers
}

func (c *config) MinParallel() int {
	return c.minParallel
}

// workersFor returns how many partitions an update over n elements is split into.
func (c *config) workersFor(n int) int {
	if n < c.minParallel || c.workers <= 1 {
		return 1
	}
	return min(c.workers, n)
}
