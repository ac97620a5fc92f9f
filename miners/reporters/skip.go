package reporters

import ()

import (
	"github.com/timtadh/maxsets/miners"
	"github.com/timtadh/maxsets/types/itemset"
)

// Skip passes on only the levels of size Below or larger.
type Skip struct {
	Below    int
	Reporter miners.Reporter
}

func NewSkip(below int, rptr miners.Reporter) *Skip {
	return &Skip{
		Below:    below,
		Reporter: rptr,
	}
}

func (r *Skip) Report(m *itemset.Maximal) error {
	if m.Level < r.Below {
		return nil
	}
	return r.Reporter.Report(m)
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
