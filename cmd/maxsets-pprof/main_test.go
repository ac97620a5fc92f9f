package main

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"bytes"
	"strings"
)

import (
	"github.com/timtadh/combos"
	"github.com/timtadh/dot"
)

const profile = `digraph "maxsets" {
node [style=filled fillcolor="#f8f8f8"]
subgraph cluster_L { "File: maxsets" [shape=box fontsize=16 label="File: maxsets\lType: cpu\l"] }
N1 [label="runtime\nmain\n0 of 10ms (100%)" fontsize=8 shape=box]
N2 [label="maxsets/miners/apriori.scan\n10ms (100%)" fontsize=24 shape=box]
N3 [label="runtime.mallocgc\n2ms" fontsize=8 shape=box]
N1 -> N2 [label=" 10ms" weight=100]
N2 -> N3 [label=" 2ms"]
}
`

func clean(t *assert.Assertions, focus string, onlyFocus bool) (*cleaner, string) {
	var buf bytes.Buffer
	c := &cleaner{
		output:    &buf,
		focus:     focus,
		onlyFocus: onlyFocus,
		kept:      make(map[string]bool),
	}
	t.Nil(dot.StreamParse([]byte(profile), c))
	return c, buf.String()
}

func TestCleanKeepsEveryFunction(x *testing.T) {
	t := assert.New(x)
	c, out := clean(t, "maxsets", false)
	t.True(strings.HasPrefix(out, "digraph \"maxsets\" {\n"), out)
	t.True(strings.HasSuffix(out, "}\n"), out)
	t.Equal(3, len(c.kept))
	t.Equal(1, c.focused)
	t.Equal(0, c.subgraph)
	t.NotContains(out, "File: maxsets")
	t.Contains(out, `"label"="runtime"`)
	t.Contains(out, `"label"="runtime.mallocgc"`)
	t.Contains(out, "\tN1 -> N2;\n")
	t.Contains(out, "\tN2 -> N3;\n")
	t.Equal(1, strings.Count(out, `"fillcolor"="lightblue"`))
}

func TestCleanOnlyFocus(x *testing.T) {
	t := assert.New(x)
	c, out := clean(t, "apriori", true)
	t.Equal(map[string]bool{"N2": true}, c.kept)
	t.Equal(1, c.focused)
	t.Contains(out, "\tN2 [")
	t.NotContains(out, "N1")
	t.NotContains(out, "N3")
	t.NotContains(out, "->")
}

func TestCleanNoFocus(x *testing.T) {
	t := assert.New(x)
	c, out := clean(t, "", true)
	t.Len(c.kept, 0)
	t.Equal("digraph \"maxsets\" {\n}\n", out)
}

func attr(name, value string) *combos.Node {
	return combos.NewNode("Attr").
		AddKid(combos.NewValueNode("ID", name)).
		AddKid(combos.NewValueNode("ID", value))
}

func TestCleanNode(x *testing.T) {
	t := assert.New(x)
	var buf bytes.Buffer
	c := &cleaner{output: &buf, focus: "maxsets", onlyFocus: true, kept: make(map[string]bool)}
	graph := combos.NewNode("Graph").
		AddKid(combos.NewValueNode("ID", "digraph")).
		AddKid(combos.NewValueNode("ID", `say "hi"`))
	t.Nil(c.Enter("Graph", graph))
	t.Nil(c.Enter("SubGraph", combos.NewNode("SubGraph")))
	t.Nil(c.Stmt(combos.NewNode("Node").
		AddKid(combos.NewValueNode("ID", "L")).
		AddKid(combos.NewNode("Attrs").AddKid(attr("label", "maxsets legend")))))
	t.Nil(c.Exit("SubGraph"))
	t.Nil(c.Stmt(combos.NewNode("Node").
		AddKid(combos.NewValueNode("ID", "N1")).
		AddKid(combos.NewNode("Attrs").AddKid(attr("label", `runtime.main\n1s`)))))
	t.Nil(c.Stmt(combos.NewNode("Node").
		AddKid(combos.NewValueNode("ID", "N2")).
		AddKid(combos.NewNode("Attrs").AddKid(attr("label", `maxsets/miners/apriori.scan\n10s`)))))
	t.Nil(c.Stmt(combos.NewNode("Edge").
		AddKid(combos.NewValueNode("ID", "N1")).
		AddKid(combos.NewValueNode("ID", "N2")).
		AddKid(combos.NewNode("Attrs"))))
	t.Nil(c.Exit("Graph"))
	t.Equal(
		"digraph \"say \\\"hi\\\"\" {\n"+
			"\tN2 ["+`"fillcolor"="lightblue", "label"="maxsets/miners/apriori.scan", "original_label"="maxsets/miners/apriori.scan\n10s", "style"="filled"`+"];\n"+
			"}\n",
		buf.String())
}

func TestEscape(x *testing.T) {
	t := assert.New(x)
	t.Equal(`a\"b`, escape(`a"b`))
	t.Equal(`a\nb`, escape(`a\nb`))
	t.Equal(`\"`, escape(`\"`))
	t.Equal(`end\`, escape(`end\`))
}
