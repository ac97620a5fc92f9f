package itemset

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"strings"
)

import (
	"github.com/timtadh/data-structures/types"
)

type builder struct {
	baskets []Set
}

func (b *builder) Add(s Set) error {
	b.baskets = append(b.baskets, s)
	return nil
}

func TestCanonical(x *testing.T) {
	t := assert.New(x)
	a := New("c", "a", "b", "a")
	b := New("b", "c", "a")
	t.Equal(Set{"a", "b", "c"}, a)
	t.True(a.Equals(b))
	t.Equal(a.Key(), b.Key())
	t.Equal(0, New().Len())
}

func TestKeyDistinguishesSeparators(x *testing.T) {
	t := assert.New(x)
	t.NotEqual(New("a,b").Key(), New("a", "b").Key())
	t.NotEqual(New("ab").Key(), New("a", "b").Key())
}

func TestLabelRoundTrip(x *testing.T) {
	t := assert.New(x)
	s := New("Knuth, D.", "Lamport, L.", "")
	back, err := FromLabel(s.Label())
	t.Nil(err)
	t.True(s.Equals(back), "%v != %v", s, back)
	_, err = FromLabel([]byte{0, 0})
	t.NotNil(err)
	_, err = FromLabel([]byte{0, 0, 0, 2, 0, 0, 0, 9, 'a'})
	t.NotNil(err)
}

func TestSubsetOf(x *testing.T) {
	t := assert.New(x)
	b := New("a", "b", "d", "f")
	t.True(New("a", "d").SubsetOf(b))
	t.True(New().SubsetOf(b))
	t.True(b.SubsetOf(b))
	t.False(New("a", "c").SubsetOf(b))
	t.False(New("g").SubsetOf(b))
	t.False(New("a", "b", "d", "f", "g").SubsetOf(b))
}

func TestUnionAndSubsets(x *testing.T) {
	t := assert.New(x)
	u := New("a", "c").Union(New("b", "c"))
	t.Equal(Set{"a", "b", "c"}, u)
	subs := u.Subsets()
	t.Len(subs, 3)
	t.Equal(Set{"b", "c"}, subs[0])
	t.Equal(Set{"a", "c"}, subs[1])
	t.Equal(Set{"a", "b"}, subs[2])
	t.Equal(Set{"a", "b", "c"}, u, "Subsets must not modify the receiver")
}

func TestTableMaximal(x *testing.T) {
	t := assert.New(x)
	tbl := NewTable(2)
	tbl.Add(New("a", "b"), 4)
	tbl.Add(New("c", "d"), 4)
	tbl.Add(New("a", "c"), 2)
	m := tbl.Maximal()
	t.Equal(2, m.Level)
	t.Equal(4, m.Support)
	t.Equal([]Set{{"a", "b"}, {"c", "d"}}, m.Sets)
	t.Equal(Set{"a", "b"}, m.Example())
	t.True(NewTable(3).Maximal().Empty())
}

func TestTableAlive(x *testing.T) {
	t := assert.New(x)
	tbl := NewTable(2)
	tbl.Add(New("a", "b"), 4)
	tbl.Add(New("b", "e"), 4)
	alive := tbl.Alive()
	t.Equal(3, alive.Size())
	t.True(alive.Has(types.String("e")))
	t.False(alive.Has(types.String("c")))
}

func TestCountsThreshold(x *testing.T) {
	t := assert.New(x)
	c := make(Counts)
	ab := New("a", "b")
	ac := New("a", "c")
	for i := 0; i < 3; i++ {
		c.Inc(ab.Key(), ab)
	}
	c.Inc(ac.Key(), ac)
	c.Inc(ac.Key(), ac)
	other := make(Counts)
	other.Inc(ac.Key(), ac)
	c.Merge(other)

	tbl := c.Threshold(2, 3)
	t.Equal(2, tbl.Len())
	sup, has := tbl.Support(ab)
	t.True(has)
	t.Equal(3, sup)
	sup, has = tbl.Support(ac)
	t.True(has)
	t.Equal(3, sup)

	tbl = c.Threshold(2, 4)
	t.Equal(0, tbl.Len())
}

func TestLoad(x *testing.T) {
	t := assert.New(x)
	input := "A,B\n B , A,A\n\nC,,D,E\n"
	b := &builder{}
	d, err := NewLoader(",").Load(strings.NewReader(input), b)
	t.Nil(err)
	t.Equal([]Set{{"A", "B"}, {"A", "B"}, {}, {"C", "D", "E"}}, b.baskets)
	t.Equal(4, d.Baskets)
	t.Equal(5, d.Items)
	t.Equal(3, d.Largest)
	t.InDelta(1.75, d.Mean(), 1e-9)
}

func TestLoadWhitespace(x *testing.T) {
	t := assert.New(x)
	b := &builder{}
	_, err := NewLoader(" ").Load(strings.NewReader("10 1  5\t7\n"), b)
	t.Nil(err)
	t.Equal([]Set{{"1", "10", "5", "7"}}, b.baskets)
}

func TestFormatMaximal(x *testing.T) {
	t := assert.New(x)
	var out strings.Builder
	m := &Maximal{Level: 2, Support: 5, Sets: []Set{{"a", "b"}, {"c", "d"}}}
	t.Nil(Formatter{}.FormatMaximal(&out, m))
	t.Equal("2\t5\ta,b\n2\t5\tc,d\n", out.String())
}
