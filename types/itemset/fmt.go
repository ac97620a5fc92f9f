package itemset

import (
	"fmt"
	"io"
	"strings"
)

type Formatter struct {
	Separator string
}

func (f Formatter) FileExt() string {
	return ".items"
}

func (f Formatter) sep() string {
	if f.Separator == "" {
		return ","
	}
	return f.Separator
}

func (f Formatter) FormatSet(s Set) string {
	return strings.Join(s, f.sep())
}

// FormatMaximal writes one line per maximal set: k, support and the items.
func (f Formatter) FormatMaximal(w io.Writer, m *Maximal) error {
	for _, s := range m.Sets {
		_, err := fmt.Fprintf(w, "%d\t%d\t%s\n", m.Level, m.Support, f.FormatSet(s))
		if err != nil {
			return err
		}
	}
	return nil
}
