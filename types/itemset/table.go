package itemset

import (
	"sort"
)

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

type Entry struct {
	Items   Set
	Support int
}

// Table holds the frequent itemsets of one level keyed by Set.Key().
type Table struct {
	Level   int
	entries map[string]*Entry
}

func NewTable(level int) *Table {
	return &Table{
		Level:   level,
		entries: make(map[string]*Entry),
	}
}

func (t *Table) Add(items Set, support int) {
	t.entries[items.Key()] = &Entry{Items: items, Support: support}
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Has(items Set) bool {
	return t.HasKey(items.Key())
}

func (t *Table) HasKey(key string) bool {
	_, has := t.entries[key]
	return has
}

func (t *Table) Support(items Set) (int, bool) {
	e, has := t.entries[items.Key()]
	if !has {
		return 0, false
	}
	return e.Support, true
}

// Entries returns the table's entries ordered by itemset.
func (t *Table) Entries() []*Entry {
	entries := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Items.Less(entries[j].Items)
	})
	return entries
}

// Alive is the set of items which occur in at least one entry. Any item
// outside of it cannot be part of a frequent itemset at the next level.
func (t *Table) Alive() *set.SortedSet {
	alive := set.NewSortedSet(len(t.entries))
	for _, e := range t.entries {
		for _, item := range e.Items {
			alive.Add(types.String(item))
		}
	}
	return alive
}

func (t *Table) Maximal() *Maximal {
	m := &Maximal{Level: t.Level}
	for _, e := range t.entries {
		if e.Support > m.Support {
			m.Support = e.Support
			m.Sets = m.Sets[:0]
		}
		if e.Support == m.Support {
			m.Sets = append(m.Sets, e.Items)
		}
	}
	sort.Slice(m.Sets, func(i, j int) bool {
		return m.Sets[i].Less(m.Sets[j])
	})
	return m
}

// Counts are raw support counts keyed by Set.Key(). Absent means zero.
type Counts map[string]*Entry

func (c Counts) Inc(key string, items Set) {
	if e, has := c[key]; has {
		e.Support++
		return
	}
	c[key] = &Entry{Items: items, Support: 1}
}

// Merge adds the counts in o into c.
func (c Counts) Merge(o Counts) {
	for key, e := range o {
		if mine, has := c[key]; has {
			mine.Support += e.Support
		} else {
			c[key] = &Entry{Items: e.Items, Support: e.Support}
		}
	}
}

// Threshold builds the level table from every count >= support.
func (c Counts) Threshold(level, support int) *Table {
	t := NewTable(level)
	for key, e := range c {
		if e.Support >= support {
			t.entries[key] = e
		}
	}
	return t
}
