// Package assemble orchestrates compilation of one cfnlite document into a
// CloudFormation template.
//
// The pipeline is strictly ordered: index every declaration, derive the
// dependency order from ref tokens, build each resource with ref tokens left
// in place, resolve every token now that all logical IDs exist, then
// synthesize companion resources. Compilation is pure; the first error aborts
// the document.
package assemble

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/builders"
	"github.com/cfnlite/cfnlite/internal/catalog"
	"github.com/cfnlite/cfnlite/internal/litefile"
	"github.com/cfnlite/cfnlite/internal/props"
	"github.com/cfnlite/cfnlite/internal/resolve"
	"github.com/cfnlite/cfnlite/internal/synth"
)

const templateFormatVersion = "2010-09-09"

// Assembler compiles cfnlite documents. Zero state is shared between calls;
// one Assembler may compile many documents.
type Assembler struct {
	log *zap.Logger
}

// New creates an Assembler. A nil logger disables logging.
func New(log *zap.Logger) *Assembler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembler{log: log}
}

// declaration is one resource entry from the input document, joined with its
// catalog entry and logical ID.
type declaration struct {
	humanName string
	entry     catalog.Entry
	raw       map[string]any
	logicalID string
}

// Assemble compiles a parsed document into a CloudFormation template.
func (a *Assembler) Assemble(doc *litefile.Document) (*cfnlite.Template, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("a cfnlite file must have a name field")
	}

	decls, ix, err := a.index(doc)
	if err != nil {
		return nil, err
	}

	order, err := a.order(decls, ix)
	if err != nil {
		return nil, err
	}

	resources, contexts, byKind, err := a.build(decls, ix, order)
	if err != nil {
		return nil, err
	}

	if err := a.resolveRefs(resources, contexts, ix); err != nil {
		return nil, err
	}

	companions, err := synth.Companions(ix, byKind)
	if err != nil {
		return nil, err
	}
	for _, c := range companions {
		resources[c.LogicalID] = c.Def
	}
	a.log.Debug("synthesized companions", zap.Int("count", len(companions)))

	return &cfnlite.Template{
		AWSTemplateFormatVersion: templateFormatVersion,
		Description:              doc.Description,
		Resources:                resources,
	}, nil
}

// index validates every declared kind and registers each declaration's
// logical ID. Keys are walked in sorted order so errors are deterministic.
func (a *Assembler) index(doc *litefile.Document) (map[string]*declaration, *resolve.Index, error) {
	ix := resolve.NewIndex(doc.Name)
	decls := make(map[string]*declaration, len(doc.Resources))

	names := make([]string, 0, len(doc.Resources))
	for name := range doc.Resources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := catalog.Lookup(name)
		if err != nil {
			return nil, nil, err
		}

		id, err := ix.Add(name, string(entry.Kind))
		if err != nil {
			return nil, nil, err
		}

		raw := doc.Resources[name]
		if raw == nil {
			raw = map[string]any{}
		}

		decls[keyOf(name)] = &declaration{
			humanName: name,
			entry:     entry,
			raw:       raw,
			logicalID: id,
		}
	}

	a.log.Debug("indexed declarations", zap.Int("count", len(decls)))
	return decls, ix, nil
}

// order topologically sorts the declarations by their ref tokens, so a
// resource is built after everything it references. Kahn's algorithm with a
// sorted ready queue keeps the order deterministic. Undeclared targets and
// reference cycles surface here, before anything is built.
func (a *Assembler) order(decls map[string]*declaration, ix *resolve.Index) ([]string, error) {
	dependents := make(map[string][]string, len(decls))
	indegree := make(map[string]int, len(decls))
	for key := range decls {
		indegree[key] = 0
	}

	for key, decl := range decls {
		var targets []string
		var err error
		for _, value := range decl.raw {
			if targets, err = resolve.RefTargets(value, targets); err != nil {
				return nil, err
			}
		}

		for _, target := range targets {
			if _, err := ix.LogicalID(target); err != nil {
				return nil, err
			}
			dep := keyOf(target)
			dependents[dep] = append(dependents[dep], key)
			indegree[key]++
		}
	}

	var ready []string
	for key, n := range indegree {
		if n == 0 {
			ready = append(ready, key)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(decls))
	for len(ready) > 0 {
		key := ready[0]
		ready = ready[1:]
		order = append(order, key)

		next := dependents[key]
		sort.Strings(next)
		for _, dependent := range next {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
		sort.Strings(ready)
	}

	if len(order) != len(decls) {
		var stuck []string
		for key, n := range indegree {
			if n > 0 {
				stuck = append(stuck, decls[key].humanName)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("reference cycle between resources: %v", stuck)
	}

	return order, nil
}

// build runs pass one: normalize each declaration's properties and hand them
// to the kind's builder. Ref tokens stay in place.
func (a *Assembler) build(
	decls map[string]*declaration,
	ix *resolve.Index,
	order []string,
) (map[string]cfnlite.ResourceDef, map[string]map[string]string, map[catalog.Kind][]string, error) {
	resources := make(map[string]cfnlite.ResourceDef, len(decls))
	contexts := make(map[string]map[string]string)
	byKind := make(map[catalog.Kind][]string, len(decls))

	for _, key := range order {
		decl := decls[key]

		normalized, err := props.Normalize(decl.entry, decl.raw)
		if err != nil {
			return nil, nil, nil, err
		}

		fn, err := builders.For(decl.entry.Kind)
		if err != nil {
			return nil, nil, nil, err
		}

		built, err := fn(builders.Input{
			LogicalID: decl.logicalID,
			Entry:     decl.entry,
			Props:     normalized,
			Index:     ix,
		})
		if err != nil {
			return nil, nil, nil, err
		}

		for _, b := range built {
			resources[b.LogicalID] = b.Def
			if len(b.AttrContexts) > 0 {
				contexts[b.LogicalID] = b.AttrContexts
			}
		}
		byKind[decl.entry.Kind] = append(byKind[decl.entry.Kind], decl.logicalID)

		a.log.Debug("built resource",
			zap.String("kind", string(decl.entry.Kind)),
			zap.String("logicalId", decl.logicalID),
			zap.Int("resources", len(built)))
	}

	return resources, contexts, byKind, nil
}

// resolveRefs runs pass two: every remaining ref token becomes a Ref or,
// where the owning builder declared an attribute context for the property, a
// GetAtt on that attribute.
func (a *Assembler) resolveRefs(
	resources map[string]cfnlite.ResourceDef,
	contexts map[string]map[string]string,
	ix *resolve.Index,
) error {
	for id, def := range resources {
		for name, value := range def.Properties {
			resolved, err := ix.ResolveValue(value, contexts[id][name])
			if err != nil {
				return err
			}
			def.Properties[name] = resolved
		}
	}
	return nil
}

// keyOf is the canonical graph key for a human name, matching the index's
// case folding.
func keyOf(name string) string {
	return strings.ToLower(name)
}
