package asset

import "slices"

// Collector receives the records of one contributor during collection. Each
// contributor gets its own collector, so no contributor can see, remove or
// reorder what another one submitted.
type Collector struct {
	records []Record
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends records in the given order
func (c *Collector) Add(records ...Record) {
	c.records = append(c.records, records...)
}

// Len returns the number of records added so far
func (c *Collector) Len() int {
	return len(c.records)
}

// Records returns a copy of the added records in submission order
func (c *Collector) Records() []Record {
	return slices.Clone(c.records)
}
