package baskets

import (
	"sync"
)

import (
	"github.com/timtadh/fs2"
	"github.com/timtadh/fs2/bptree"
	"github.com/timtadh/fs2/fmap"
)

import (
	"github.com/timtadh/maxsets/types/itemset"
)

// BpTree keeps the baskets in an fs2 B+ tree keyed by transaction id. An
// anonymous tree lives in an anonymous memory map; a named tree is backed
// by a file in the cache directory.
type BpTree struct {
	bf    *fmap.BlockFile
	bpt   *bptree.BpTree
	next  int32
	mutex sync.Mutex
}

func AnonBpTree() (*BpTree, error) {
	bf, err := fmap.Anonymous(fmap.BLOCKSIZE)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func NewBpTree(path string) (*BpTree, error) {
	bf, err := fmap.CreateBlockFile(path)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func newBpTree(bf *fmap.BlockFile) (*BpTree, error) {
	bpt, err := bptree.New(bf, txSize, -1)
	if err != nil {
		return nil, err
	}
	b := &BpTree{
		bf:  bf,
		bpt: bpt,
	}
	return b, nil
}

func (b *BpTree) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bf.Close()
}

// Delete closes the tree and removes its backing file (if it has one).
func (b *BpTree) Delete() error {
	err := b.Close()
	if err != nil {
		return err
	}
	if b.bf.Path() != "" {
		return b.bf.Remove()
	}
	return nil
}

func (b *BpTree) Size() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Size()
}

func (b *BpTree) Add(basket itemset.Set) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	err := b.bpt.Add(SerializeTx(b.next), SerializeBasket(itemset.New(basket...)))
	if err != nil {
		return err
	}
	b.next++
	return nil
}

func (b *BpTree) Iterate() (it Iterator, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	raw, err := b.bpt.Iterate()
	if err != nil {
		return nil, err
	}
	return b.kvIter(raw), nil
}

func (b *BpTree) kvIter(kvi fs2.Iterator) (it Iterator) {
	it = func() (tx int32, basket itemset.Set, err error, _ Iterator) {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		var k, v []byte
		k, v, err, kvi = kvi()
		if err != nil {
			return 0, nil, err, nil
		}
		if kvi == nil {
			return 0, nil, nil, nil
		}
		basket, err = DeserializeBasket(v)
		if err != nil {
			return 0, nil, err, nil
		}
		return DeserializeTx(k), basket, nil, it
	}
	return it
}
