package reporters

import ()

import (
	"github.com/timtadh/maxsets/miners"
	"github.com/timtadh/maxsets/types/itemset"
)

type Chain struct {
	Reporters []miners.Reporter
}

func (r *Chain) Report(m *itemset.Maximal) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(m)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Chain) Close() error {
	for _, rpt := range r.Reporters {
		err := rpt.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
