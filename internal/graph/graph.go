// Package graph renders the dependency graph of a compiled template in DOT
// or Mermaid format.
package graph

import (
	"io"
	"sort"
	"strings"

	"github.com/emicklei/dot"
	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator renders dependency graphs from compiled templates.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format
}

// Generate renders the template's dependency graph and writes it to w.
func (g *Generator) Generate(t *cfnlite.Template, w io.Writer) error {
	graph := g.buildGraph(t)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(t *cfnlite.Template) (string, error) {
	var sb strings.Builder
	if err := g.Generate(t, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// edge is one dependency: GetAtt references are styled differently from
// plain Refs and DependsOn entries.
type edge struct {
	target string
	getAtt bool
}

func (g *Generator) buildGraph(t *cfnlite.Template) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	names := make([]string, 0, len(t.Resources))
	for name := range t.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		n := graph.Node(name)
		n.Label(name + "\\n[" + t.Resources[name].Type + "]")
	}

	for _, name := range names {
		for _, dep := range dependencies(t.Resources[name]) {
			if _, ok := t.Resources[dep.target]; !ok {
				continue
			}
			e := graph.Edge(graph.Node(name), graph.Node(dep.target))
			if dep.getAtt {
				e.Attr("color", "blue")
			}
		}
	}

	return graph
}

// dependencies collects the outgoing edges of one resource: every Ref and
// GetAtt in its properties plus its DependsOn entries, deduplicated and
// sorted.
func dependencies(def cfnlite.ResourceDef) []edge {
	seen := map[edge]bool{}

	for _, value := range def.Properties {
		walkRefs(value, seen)
	}
	for _, dep := range def.DependsOn {
		seen[edge{target: dep}] = true
	}

	edges := make([]edge, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].target != edges[j].target {
			return edges[i].target < edges[j].target
		}
		return !edges[i].getAtt && edges[j].getAtt
	})
	return edges
}

func walkRefs(v any, seen map[edge]bool) {
	switch val := v.(type) {
	case intrinsics.Ref:
		seen[edge{target: val.LogicalName}] = true
	case intrinsics.GetAtt:
		seen[edge{target: val.LogicalName, getAtt: true}] = true
	case intrinsics.Tag:
		walkRefs(val.Value, seen)
	case []any:
		for _, item := range val {
			walkRefs(item, seen)
		}
	case map[string]any:
		for _, item := range val {
			walkRefs(item, seen)
		}
	}
}
