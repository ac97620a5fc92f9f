package reporters

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/maxsets/miners"
	"github.com/timtadh/maxsets/types/itemset"
)

type Log struct {
	fmtr   itemset.Formatter
	level  string
	prefix string
	count  int
}

func NewLog(fmtr itemset.Formatter, level, prefix string) *Log {
	if level == "" {
		level = "INFO"
	}
	return &Log{fmtr: fmtr, level: level, prefix: prefix}
}

func (lr *Log) Report(m *itemset.Maximal) error {
	lr.count++
	example := lr.fmtr.FormatSet(m.Example())
	if lr.prefix != "" {
		errors.Logf(lr.level, "%s k=%d max support %d, %d sets, e.g. {%s}", lr.prefix, m.Level, m.Support, len(m.Sets), example)
	} else {
		errors.Logf(lr.level, "k=%d max support %d, %d sets, e.g. {%s}", m.Level, m.Support, len(m.Sets), example)
	}
	return nil
}

func (lr *Log) Close() error {
	errors.Logf(lr.level, "%d levels reported", lr.count)
	return nil
}

// LogObserver logs the work counters of every level as it finishes.
type LogObserver struct {
	Level string
}

func (o *LogObserver) Observe(e *miners.Event) {
	level := o.Level
	if level == "" {
		level = "DEBUG"
	}
	errors.Logf(level, "%v", e)
}
