package reporters

import (
	"fmt"
	"os"
	"path/filepath"
)

import ()

import (
	"github.com/timtadh/maxsets/config"
	"github.com/timtadh/maxsets/types/itemset"
)

// Dir writes each level to its own directory:
//
//	<dir>/<k>/support
//	<dir>/<k>/count
//	<dir>/<k>/maximal.items
//
// and the number of levels to <dir>/count on Close.
type Dir struct {
	config *config.Config
	fmt    itemset.Formatter
	dir    string
	count  int
}

func NewDir(c *config.Config, fmt itemset.Formatter, dirname string) (*Dir, error) {
	levels := c.OutputFile(dirname)
	err := os.MkdirAll(levels, 0775)
	if err != nil {
		return nil, err
	}
	r := &Dir{
		config: c,
		fmt:    fmt,
		dir:    levels,
	}
	return r, nil
}

func (r *Dir) Report(m *itemset.Maximal) error {
	dir := filepath.Join(r.dir, fmt.Sprintf("%d", m.Level))
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return err
	}
	r.count++
	err = writeLine(filepath.Join(dir, "support"), m.Support)
	if err != nil {
		return err
	}
	err = writeLine(filepath.Join(dir, "count"), len(m.Sets))
	if err != nil {
		return err
	}
	sets, err := os.Create(filepath.Join(dir, "maximal"+r.fmt.FileExt()))
	if err != nil {
		return err
	}
	defer sets.Close()
	return r.fmt.FormatMaximal(sets, m)
}

func (r *Dir) Close() error {
	return writeLine(filepath.Join(r.dir, "count"), r.count)
}

func writeLine(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = fmt.Fprintf(f, "%v\n", v)
	return err
}
