package itemset

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const maxLineSize = 64 * 1024 * 1024

type Builder interface {
	Add(basket Set) error
}

// Loader reads one basket per line. Items are separated by Separator; a
// single space means any run of whitespace.
type Loader struct {
	Separator string
}

func NewLoader(separator string) *Loader {
	if separator == "" {
		separator = ","
	}
	return &Loader{Separator: separator}
}

// Description summarizes a loaded corpus.
type Description struct {
	Baskets     int
	Items       int
	Largest     int
	Memberships int
}

func (d *Description) Mean() float64 {
	if d.Baskets == 0 {
		return 0
	}
	return float64(d.Memberships) / float64(d.Baskets)
}

func (d *Description) String() string {
	return fmt.Sprintf("baskets %d, distinct items %d, largest basket %d, mean basket %.2f",
		d.Baskets, d.Items, d.Largest, d.Mean())
}

func (l *Loader) split(line string) []string {
	if l.Separator == " " {
		return strings.Fields(line)
	}
	return strings.Split(line, l.Separator)
}

// Parse turns one line into a basket. Empty lines give empty baskets.
func (l *Loader) Parse(line string) Set {
	cols := l.split(line)
	items := make(Set, 0, len(cols))
	for _, col := range cols {
		col = strings.TrimSpace(col)
		if col == "" {
			continue
		}
		items = append(items, col)
	}
	return canonical(items)
}

func (l *Loader) Load(input io.Reader, b Builder) (*Description, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	seen := make(map[string]struct{})
	d := &Description{}
	for scanner.Scan() {
		basket := l.Parse(scanner.Text())
		for _, item := range basket {
			seen[item] = struct{}{}
		}
		if len(basket) > d.Largest {
			d.Largest = len(basket)
		}
		d.Memberships += len(basket)
		d.Baskets++
		if err := b.Add(basket); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	d.Items = len(seen)
	return d, nil
}
