package baskets

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"errors"
	"path/filepath"
	"strings"
)

import (
	"github.com/timtadh/maxsets/types/itemset"
)

const corpus = `Knuth,Lamport
Lamport,Knuth,Dijkstra

Hoare
`

func collect(t *assert.Assertions, s Store) ([]int32, []itemset.Set) {
	txs := make([]int32, 0, 10)
	sets := make([]itemset.Set, 0, 10)
	err := Each(s, func(tx int32, b itemset.Set) error {
		txs = append(txs, tx)
		sets = append(sets, b)
		return nil
	})
	t.Nil(err)
	return txs, sets
}

func checkStore(t *assert.Assertions, s Writable) {
	d, err := Load(strings.NewReader(corpus), itemset.NewLoader(","), s)
	t.Nil(err)
	t.Equal(4, d.Baskets)
	t.Equal(4, d.Items)
	t.Equal(4, s.Size())
	expected := []itemset.Set{
		{"Knuth", "Lamport"},
		{"Dijkstra", "Knuth", "Lamport"},
		{},
		{"Hoare"},
	}
	for i := 0; i < 2; i++ {
		txs, sets := collect(t, s)
		t.Equal([]int32{0, 1, 2, 3}, txs)
		t.Equal(len(expected), len(sets))
		for j := range expected {
			t.True(expected[j].Equals(sets[j]), "%v != %v", expected[j], sets[j])
		}
	}
}

func TestMemory(x *testing.T) {
	t := assert.New(x)
	s := NewMemory()
	checkStore(t, s)
	t.Nil(s.Close())
}

func TestAnonBpTree(x *testing.T) {
	t := assert.New(x)
	s, err := AnonBpTree()
	t.Nil(err)
	checkStore(t, s)
	t.Nil(s.Delete())
}

func TestFileBpTree(x *testing.T) {
	t := assert.New(x)
	s, err := NewBpTree(filepath.Join(x.TempDir(), "baskets.bptree"))
	t.Nil(err)
	checkStore(t, s)
	t.Nil(s.Delete())
}

func TestEachPassesCallbackErrors(x *testing.T) {
	t := assert.New(x)
	s := NewMemory(itemset.New("a"), itemset.New("b"))
	stop := errors.New("stop")
	err := Each(s, func(tx int32, b itemset.Set) error {
		return stop
	})
	t.Equal(stop, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestLoadError(x *testing.T) {
	t := assert.New(x)
	_, err := Load(failingReader{}, itemset.NewLoader(","), NewMemory())
	var le *LoadError
	t.True(errors.As(err, &le), "%v is not a LoadError", err)
	t.Equal("read", le.Op)
}

func TestSerializeTxOrder(x *testing.T) {
	t := assert.New(x)
	t.Equal(int32(258), DeserializeTx(SerializeTx(258)))
	t.True(string(SerializeTx(2)) < string(SerializeTx(256)))
}
