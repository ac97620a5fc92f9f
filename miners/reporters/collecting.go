package reporters

import ()

import (
	"github.com/timtadh/maxsets/types/itemset"
)

type Collector struct {
	Levels []*itemset.Maximal
	Closed bool
}

func (c *Collector) Report(m *itemset.Maximal) error {
	c.Levels = append(c.Levels, m)
	return nil
}

func (c *Collector) Close() error {
	c.Closed = true
	return nil
}
