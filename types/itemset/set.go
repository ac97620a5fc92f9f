package itemset

import (
	"encoding/binary"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

// Set is a canonical itemset: sorted, without duplicates. Two sets with
// the same members are identical slices regardless of how they were built.
type Set []string

func New(items ...string) Set {
	s := make(Set, len(items))
	copy(s, items)
	return canonical(s)
}

func canonical(s Set) Set {
	if len(s) <= 1 {
		return s
	}
	sort.Strings(s)
	j := 1
	for i := 1; i < len(s); i++ {
		if s[i] != s[j-1] {
			s[j] = s[i]
			j++
		}
	}
	return s[:j]
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) Has(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

func (s Set) Equals(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Set) Less(o Set) bool {
	for i := 0; i < len(s) && i < len(o); i++ {
		if s[i] != o[i] {
			return s[i] < o[i]
		}
	}
	return len(s) < len(o)
}

// SubsetOf reports whether every item of s is in o. Both sets are sorted
// so this is a single merge walk.
func (s Set) SubsetOf(o Set) bool {
	if len(s) > len(o) {
		return false
	}
	j := 0
	for _, item := range s {
		for j < len(o) && o[j] < item {
			j++
		}
		if j >= len(o) || o[j] != item {
			return false
		}
		j++
	}
	return true
}

func (s Set) Union(o Set) Set {
	u := make(Set, 0, len(s)+len(o))
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		switch {
		case s[i] < o[j]:
			u = append(u, s[i])
			i++
		case s[i] > o[j]:
			u = append(u, o[j])
			j++
		default:
			u = append(u, s[i])
			i++
			j++
		}
	}
	u = append(u, s[i:]...)
	u = append(u, o[j:]...)
	return u
}

// Without returns the subset of s missing the item at position i.
func (s Set) Without(i int) Set {
	w := make(Set, 0, len(s)-1)
	w = append(w, s[:i]...)
	return append(w, s[i+1:]...)
}

// Subsets returns the len(s) subsets of size len(s)-1.
func (s Set) Subsets() []Set {
	subs := make([]Set, 0, len(s))
	for i := range s {
		subs = append(subs, s.Without(i))
	}
	return subs
}

// Filter keeps the items accepted by keep, preserving order.
func (s Set) Filter(keep func(string) bool) Set {
	f := make(Set, 0, len(s))
	for _, item := range s {
		if keep(item) {
			f = append(f, item)
		}
	}
	return f
}

// Label is the binary encoding of the set: the big endian item count
// followed by each item as a length prefixed byte string.
func (s Set) Label() []byte {
	size := 4
	for _, item := range s {
		size += 4 + len(item)
	}
	bytes := make([]byte, size)
	binary.BigEndian.PutUint32(bytes[0:4], uint32(len(s)))
	off := 4
	for _, item := range s {
		binary.BigEndian.PutUint32(bytes[off:off+4], uint32(len(item)))
		off += 4
		off += copy(bytes[off:], item)
	}
	return bytes
}

func (s Set) Key() string {
	return string(s.Label())
}

func FromLabel(bytes []byte) (Set, error) {
	if len(bytes) < 4 {
		return nil, errors.Errorf("label too short (%d bytes)", len(bytes))
	}
	n := int(binary.BigEndian.Uint32(bytes[0:4]))
	s := make(Set, 0, n)
	off := 4
	for i := 0; i < n; i++ {
		if off+4 > len(bytes) {
			return nil, errors.Errorf("label truncated at item %d", i)
		}
		l := int(binary.BigEndian.Uint32(bytes[off : off+4]))
		off += 4
		if off+l > len(bytes) {
			return nil, errors.Errorf("label truncated at item %d", i)
		}
		s = append(s, string(bytes[off:off+l]))
		off += l
	}
	return s, nil
}

func (s Set) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}
