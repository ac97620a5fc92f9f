package baskets

import (
	"encoding/binary"
	"fmt"
)

import (
	"github.com/timtadh/maxsets/types/itemset"
)

const txSize = 4

func SerializeTx(tx int32) []byte {
	bytes := make([]byte, txSize)
	binary.BigEndian.PutUint32(bytes, uint32(tx))
	return bytes
}

func DeserializeTx(bytes []byte) int32 {
	return int32(binary.BigEndian.Uint32(bytes))
}

func SerializeBasket(basket itemset.Set) []byte {
	return basket.Label()
}

func DeserializeBasket(bytes []byte) (itemset.Set, error) {
	return itemset.FromLabel(bytes)
}

// LoadError reports that the baskets could not be supplied. Loading is
// never retried.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError wraps err as a *LoadError for the operation op. It returns
// nil for a nil err and leaves an existing *LoadError alone.
func NewLoadError(op string, err error) error {
	return loadError(op, err)
}

func loadError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, is := err.(*LoadError); is {
		return err
	}
	return &LoadError{Op: op, Err: err}
}
