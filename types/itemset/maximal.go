package itemset

import (
	"fmt"
)

// Maximal is the result of one level: every frequent itemset of that size
// whose support equals the level's maximum support.
type Maximal struct {
	Level   int
	Support int
	Sets    []Set
}

func (m *Maximal) Empty() bool {
	return m == nil || len(m.Sets) == 0
}

func (m *Maximal) Example() Set {
	if m.Empty() {
		return nil
	}
	return m.Sets[0]
}

func (m *Maximal) String() string {
	return fmt.Sprintf("<Maximal k=%d support=%d sets=%d>", m.Level, m.Support, len(m.Sets))
}
