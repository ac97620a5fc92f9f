package baskets

import ()

import (
	"github.com/timtadh/maxsets/types/itemset"
)

type Memory struct {
	baskets []itemset.Set
}

func NewMemory(baskets ...itemset.Set) *Memory {
	m := &Memory{baskets: make([]itemset.Set, 0, len(baskets))}
	for _, b := range baskets {
		m.Add(b)
	}
	return m
}

func (m *Memory) Add(basket itemset.Set) error {
	m.baskets = append(m.baskets, itemset.New(basket...))
	return nil
}

func (m *Memory) Size() int {
	return len(m.baskets)
}

func (m *Memory) Iterate() (Iterator, error) {
	i := 0
	var it Iterator
	it = func() (int32, itemset.Set, error, Iterator) {
		if i >= len(m.baskets) {
			return 0, nil, nil, nil
		}
		tx := i
		i++
		return int32(tx), m.baskets[tx], nil, it
	}
	return it, nil
}

func (m *Memory) Close() error {
	return nil
}
