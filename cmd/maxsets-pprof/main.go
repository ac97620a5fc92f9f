package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2016, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/combos"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/dot"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/maxsets/cmd"
)

func init() {
	cmd.UsageMessage = "maxsets-pprof --help"
	cmd.ExtendedMessage = `
maxsets-pprof - tidy the call graph of a maxsets cpu profile

$ maxsets --cpu-profile=run.pprof --support=10 ./authors.txt
$ go tool pprof -dot -output run.dot $(which maxsets) run.pprof
$ maxsets-pprof -i run.dot -o run-clean.dot --focus=maxsets/miners

Options
    -h, --help                view this message
    -i, --input=<path>        the dot file written by pprof (default stdin)
    -o, --output=<path>       where to write the cleaned graph (default stdout)
    -f, --focus=<string>      highlight functions whose name contains this
                              (default maxsets)
    --only-focus              drop every function outside the focus
    --cpu-profile=<path>      profile this program
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hi:o:f:",
		[]string{
			"help",
			"input=",
			"output=",
			"focus=",
			"only-focus",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if len(args) != 0 {
		fmt.Fprintf(os.Stderr, "trailing args: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	cpuProfile := ""
	inputPath := ""
	outputPath := ""
	focus := "maxsets"
	onlyFocus := false
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		case "-i", "--input":
			inputPath = cmd.AssertFileOrDirExists(oa.Arg())
		case "-o", "--output":
			outputPath = cmd.AssertFile(oa.Arg())
		case "-f", "--focus":
			focus = oa.Arg()
		case "--only-focus":
			onlyFocus = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	var inputf io.ReadCloser = os.Stdin
	if inputPath == "" {
		inputPath = "stdin"
	} else {
		inputf, err = os.Open(inputPath)
		if err != nil {
			errors.Logf("ERROR", "could not open %v : %v", inputPath, err)
			return 1
		}
	}
	input, err := ioutil.ReadAll(inputf)
	inputf.Close()
	if err != nil {
		errors.Logf("ERROR", "could not read input %v : %v", inputPath, err)
		return 1
	}

	var output io.WriteCloser = os.Stdout
	if outputPath == "" {
		outputPath = "stdout"
	} else {
		output, err = os.Create(outputPath)
		if err != nil {
			errors.Logf("ERROR", "could not create output %v : %v", outputPath, err)
			return 1
		}
	}
	defer output.Close()

	errors.Logf("INFO", "cleaning %v writing to %v (focus %q)", inputPath, outputPath, focus)
	c := &cleaner{
		output:    output,
		focus:     focus,
		onlyFocus: onlyFocus,
		kept:      make(map[string]bool),
	}
	err = dot.StreamParse(input, c)
	if err != nil {
		errors.Logf("ERROR", "error cleaning profile %v", err)
		return 1
	}
	errors.Logf("INFO", "kept %d functions, %d in focus", len(c.kept), c.focused)
	return 0
}

// cleaner rewrites the pprof call graph with one line labels. Subgraphs
// (the legend) are dropped. Edges are written only between kept nodes.
type cleaner struct {
	output    io.Writer
	focus     string
	onlyFocus bool
	subgraph  int
	kept      map[string]bool
	focused   int
}

func (c *cleaner) Enter(name string, n *combos.Node) error {
	if name == "SubGraph" {
		c.subgraph++
		return nil
	}
	graphName := n.Get(1).Value.(string)
	_, err := fmt.Fprintf(c.output, "digraph \"%v\" {\n", escape(graphName))
	return err
}

func (c *cleaner) Stmt(n *combos.Node) error {
	if c.subgraph > 0 {
		return nil
	}
	switch n.Label {
	case "Node":
		return c.node(n)
	case "Edge":
		return c.edge(n)
	}
	return nil
}

func (c *cleaner) Exit(name string) error {
	if name == "SubGraph" {
		c.subgraph--
		return nil
	}
	_, err := fmt.Fprintln(c.output, "}")
	return err
}

func (c *cleaner) node(n *combos.Node) error {
	sid := n.Get(0).Value.(string)
	attrs := make(map[string]string)
	for _, attr := range n.Get(1).Children {
		attrs[attr.Get(0).Value.(string)] = attr.Get(1).Value.(string)
	}
	label := sid
	if l, has := attrs["label"]; has {
		label = l
	}
	fn := strings.SplitN(label, `\n`, 2)[0]
	inFocus := c.focus != "" && strings.Contains(fn, c.focus)
	if c.onlyFocus && !inFocus {
		return nil
	}
	c.kept[sid] = true
	attrs["original_label"] = label
	attrs["label"] = fn
	if inFocus {
		c.focused++
		attrs["style"] = "filled"
		attrs["fillcolor"] = "lightblue"
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	sattrs := make([]string, 0, len(attrs))
	for _, name := range names {
		sattrs = append(sattrs, fmt.Sprintf(`"%v"="%v"`, escape(name), escape(attrs[name])))
	}
	_, err := fmt.Fprintf(c.output, "\t%v [%v];\n", sid, strings.Join(sattrs, ", "))
	return err
}

func (c *cleaner) edge(n *combos.Node) error {
	src := n.Get(0).Value.(string)
	targ := n.Get(1).Value.(string)
	if !c.kept[src] || !c.kept[targ] {
		return nil
	}
	_, err := fmt.Fprintf(c.output, "\t%v -> %v;\n", src, targ)
	return err
}

// escape quotes bare double quotes and leaves existing escapes alone.
func escape(s string) string {
	bytes := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			bytes = append(bytes, s[i], s[i+1])
			i++
		} else if s[i] == '"' {
			bytes = append(bytes, '\\', s[i])
		} else {
			bytes = append(bytes, s[i])
		}
	}
	return string(bytes)
}
