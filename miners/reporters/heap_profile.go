package reporters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
)

import ()

import (
	"github.com/timtadh/maxsets/types/itemset"
)

// HeapProfile writes a heap profile after every level. With a directory
// each level gets its own file, otherwise the profiles are appended to one
// file.
type HeapProfile struct {
	f   io.WriteCloser
	dir string
}

func NewHeapProfile(path string) (*HeapProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	hp := &HeapProfile{f: f}
	return hp, nil
}

func NewHeapProfileDir(dir string) (*HeapProfile, error) {
	err := os.MkdirAll(dir, 0775)
	if err != nil {
		return nil, err
	}
	return &HeapProfile{dir: dir}, nil
}

func (hp *HeapProfile) Report(m *itemset.Maximal) error {
	if hp.dir == "" {
		return pprof.WriteHeapProfile(hp.f)
	}
	f, err := os.Create(filepath.Join(hp.dir, fmt.Sprintf("level-%d.heap", m.Level)))
	if err != nil {
		return err
	}
	defer f.Close()
	return pprof.WriteHeapProfile(f)
}

func (hp *HeapProfile) Close() error {
	if hp.f == nil {
		return nil
	}
	return hp.f.Close()
}
