// Package builders holds the kind-specific expansion logic: one builder per
// supported resource kind. A builder merges catalog defaults with the
// normalized user properties, expands cfnlite shorthands (protocol presets,
// flattened policy statements) and emits schema-shaped resource definitions.
//
// Builders leave "ref <name>" tokens untouched; the assembler resolves them
// in a second pass once every logical ID is known.
package builders

import (
	"fmt"
	"sort"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
	"github.com/cfnlite/cfnlite/internal/props"
	"github.com/cfnlite/cfnlite/internal/resolve"
)

// ReservedTagKey is the key of the implicit identifying tag every taggable
// resource receives. Users may not set it.
const ReservedTagKey = "default-cfnlite-resource-name"

// Input is everything a builder needs for one declaration.
type Input struct {
	LogicalID string
	Entry     catalog.Entry

	// Props are the user's properties after normalization, resource
	// attributes included.
	Props map[string]any

	// Index is complete: every declaration in the document is registered.
	Index *resolve.Index
}

// Built is one resource produced by a builder. The declaration's primary
// resource comes first; expansions (e.g. network ACL entries) follow.
type Built struct {
	LogicalID string
	Def       cfnlite.ResourceDef

	// AttrContexts names properties whose ref tokens resolve to attribute
	// access instead of a plain identifier, and the attribute to fetch.
	AttrContexts map[string]string
}

// Func builds the resources for one declaration.
type Func func(in Input) ([]Built, error)

var registry = map[catalog.Kind]Func{
	catalog.KindEC2:             buildGeneric,
	catalog.KindVPC:             buildGeneric,
	catalog.KindSubnet:          buildGeneric,
	catalog.KindSecurityGroups:  buildSecurityGroups,
	catalog.KindNetworkACL:      buildNetworkACL,
	catalog.KindRouteTable:      buildGeneric,
	catalog.KindInternetGateway: buildGeneric,
	catalog.KindRole:            buildRole,
	catalog.KindPolicy:          buildPolicy,
}

// For returns the builder for a kind.
func For(kind catalog.Kind) (Func, error) {
	fn, ok := registry[kind]
	if !ok {
		return nil, &cfnlite.UnknownResourceKindError{HumanName: string(kind)}
	}
	return fn, nil
}

// assemble is the common tail of every builder: validate shapes, merge
// defaults under the user's values, prune to user-set plus required, attach
// tags and split off resource attributes.
func assemble(in Input, userProps map[string]any) (cfnlite.ResourceDef, error) {
	attrs, properties := splitAttributes(userProps)

	if err := validateShapes(in.Entry, properties); err != nil {
		return cfnlite.ResourceDef{}, err
	}

	merged := merge(in.Entry.Defaults(), properties)
	pruned := prune(merged, properties, in.Entry.Required)

	if in.Entry.Taggable {
		tagged, err := buildTags(in, properties["Tags"])
		if err != nil {
			return cfnlite.ResourceDef{}, err
		}
		pruned["Tags"] = tagged
	}

	for _, required := range in.Entry.Required {
		if _, ok := pruned[required]; !ok {
			return cfnlite.ResourceDef{}, &cfnlite.MissingRequiredPropertyError{
				Kind: string(in.Entry.Kind), Property: required,
			}
		}
	}

	def := cfnlite.ResourceDef{
		Type:       in.Entry.TargetType,
		Properties: pruned,
	}
	if err := applyAttributes(&def, in.Index, attrs); err != nil {
		return cfnlite.ResourceDef{}, err
	}

	return def, nil
}

// buildGeneric covers the kinds with no expansion logic beyond the common
// merge/prune/tags path.
func buildGeneric(in Input) ([]Built, error) {
	def, err := assemble(in, in.Props)
	if err != nil {
		return nil, err
	}
	return []Built{{LogicalID: in.LogicalID, Def: def}}, nil
}

// splitAttributes separates resource attributes (DependsOn and friends) from
// schema properties.
func splitAttributes(userProps map[string]any) (attrs, properties map[string]any) {
	attrs = map[string]any{}
	properties = map[string]any{}
	for k, v := range userProps {
		if props.AttributeNames[k] {
			attrs[k] = v
		} else {
			properties[k] = v
		}
	}
	return attrs, properties
}

// applyAttributes copies the resource attributes onto the definition.
// DependsOn entries resolve to logical IDs; ref tokens inside the mapping
// attributes resolve here too, since the declaration index is complete.
func applyAttributes(def *cfnlite.ResourceDef, ix *resolve.Index, attrs map[string]any) error {
	dependsOn, err := resolveDependsOn(ix, attrs["DependsOn"])
	if err != nil {
		return err
	}
	def.DependsOn = dependsOn

	if def.CreationPolicy, err = attrMapping(ix, attrs, "CreationPolicy"); err != nil {
		return err
	}
	if def.Metadata, err = attrMapping(ix, attrs, "Metadata"); err != nil {
		return err
	}
	if def.UpdatePolicy, err = attrMapping(ix, attrs, "UpdatePolicy"); err != nil {
		return err
	}
	if def.DeletionPolicy, err = attrString(attrs, "DeletionPolicy"); err != nil {
		return err
	}
	if def.UpdateReplacePolicy, err = attrString(attrs, "UpdateReplacePolicy"); err != nil {
		return err
	}
	return nil
}

func attrMapping(ix *resolve.Index, attrs map[string]any, name string) (map[string]any, error) {
	v, ok := attrs[name]
	if !ok {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &cfnlite.InvalidPropertyValueError{
			Property: name, Reason: "expected a mapping",
		}
	}
	resolved, err := ix.ResolveValue(m, "")
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]any), nil
}

func attrString(attrs map[string]any, name string) (string, error) {
	v, ok := attrs[name]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &cfnlite.InvalidPropertyValueError{
			Property: name, Reason: "expected a string",
		}
	}
	return s, nil
}

// resolveDependsOn turns a dependsOn attribute into logical IDs. Ref tokens
// resolve against the declaration index; literal strings are taken as
// logical IDs verbatim.
func resolveDependsOn(ix *resolve.Index, v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &cfnlite.InvalidPropertyValueError{
				Property: "DependsOn", Reason: "entries must be strings",
			}
		}
		if resolve.IsRefToken(s) {
			target, err := resolve.RefTarget(s)
			if err != nil {
				return nil, err
			}
			id, err := ix.LogicalID(target)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
			continue
		}
		out = append(out, s)
	}

	sort.Strings(out)
	return out, nil
}

// merge lays user values over defaults: shallow per top-level key, recursive
// where both sides are mappings so nested defaults (policy documents) keep
// their untouched siblings.
func merge(defaults, user map[string]any) map[string]any {
	out := make(map[string]any, len(defaults)+len(user))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range user {
		out[k] = mergeValue(out[k], v)
	}
	return out
}

func mergeValue(def, user any) any {
	defMap, defOK := def.(map[string]any)
	userMap, userOK := user.(map[string]any)
	if defOK && userOK {
		return merge(defMap, userMap)
	}
	return user
}

// prune drops defaults the user never asked for, keeping required properties
// so the emitted resource is always structurally complete.
func prune(merged, userProps map[string]any, required []string) map[string]any {
	keep := make(map[string]bool, len(userProps)+len(required))
	for k := range userProps {
		keep[k] = true
	}
	for _, k := range required {
		keep[k] = true
	}

	out := make(map[string]any, len(keep))
	for k, v := range merged {
		if keep[k] {
			out[k] = v
		}
	}
	return out
}

// validateShapes type-checks the scalar properties the catalog knows the
// shape of. Ref tokens are exempt; they resolve to intrinsics later.
func validateShapes(entry catalog.Entry, properties map[string]any) error {
	for name, v := range properties {
		if resolve.IsRefToken(v) {
			continue
		}
		if entry.IntProps[name] {
			if !isInt(v) {
				return &cfnlite.InvalidPropertyValueError{
					Kind: string(entry.Kind), Property: name,
					Reason: fmt.Sprintf("expected an integer, got %T", v),
				}
			}
		}
		if entry.BoolProps[name] {
			if _, ok := v.(bool); !ok {
				return &cfnlite.InvalidPropertyValueError{
					Kind: string(entry.Kind), Property: name,
					Reason: fmt.Sprintf("expected a boolean, got %T", v),
				}
			}
		}
	}
	return nil
}

func isInt(v any) bool {
	switch v.(type) {
	case int, int64, uint64:
		return true
	default:
		return false
	}
}
