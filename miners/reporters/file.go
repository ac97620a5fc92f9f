package reporters

import (
	"io"
	"os"
)

import ()

import (
	"github.com/timtadh/maxsets/config"
	"github.com/timtadh/maxsets/types/itemset"
)

// File appends every level's maximal sets to one file in the output
// directory, one "k<TAB>support<TAB>items" line per set.
type File struct {
	config *config.Config
	fmt    itemset.Formatter
	sets   io.WriteCloser
}

func NewFile(c *config.Config, fmt itemset.Formatter, filename string) (*File, error) {
	sets, err := os.Create(c.OutputFile(filename + fmt.FileExt()))
	if err != nil {
		return nil, err
	}
	r := &File{
		config: c,
		fmt:    fmt,
		sets:   sets,
	}
	return r, nil
}

func (r *File) Report(m *itemset.Maximal) error {
	return r.fmt.FormatMaximal(r.sets, m)
}

func (r *File) Close() error {
	return r.sets.Close()
}
