// Package resolve derives logical IDs for declared resources and resolves
// "ref <name>" tokens into CloudFormation intrinsic references.
//
// Resolution is two-phase by design: builders leave ref tokens in place while
// every declaration is built, then the assembler walks the finished
// properties and swaps each token for a Ref or GetAtt node. Forward
// references therefore cost nothing.
package resolve

import (
	"strings"

	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
)

const refKeyword = "ref"

// LogicalID derives the CloudFormation logical ID for a declaration: the
// template name with the upper-cased human name appended. Deterministic and
// pure; collisions are a compile error, never auto-renamed.
func LogicalID(templateName, humanName string) string {
	return templateName + strings.ToUpper(humanName)
}

// Index maps the human names of one compilation unit onto their logical IDs.
type Index struct {
	templateName string
	ids          map[string]string // lower(humanName) -> logicalID
	kinds        map[string]bool   // declared kinds
	taken        map[string]bool   // committed logical IDs
}

// NewIndex creates an empty declaration index for one template.
func NewIndex(templateName string) *Index {
	return &Index{
		templateName: templateName,
		ids:          map[string]string{},
		kinds:        map[string]bool{},
		taken:        map[string]bool{},
	}
}

// Add registers a declaration and returns its logical ID. A kind declared
// twice (typically the same name in two casings) and logical-ID collisions
// are both fatal.
func (ix *Index) Add(humanName, kind string) (string, error) {
	if ix.kinds[kind] {
		return "", &cfnlite.DuplicateResourceKindError{Kind: kind}
	}

	id := LogicalID(ix.templateName, humanName)
	if ix.taken[id] {
		return "", &cfnlite.DuplicateLogicalIDError{LogicalID: id}
	}

	ix.kinds[kind] = true
	ix.taken[id] = true
	ix.ids[strings.ToLower(humanName)] = id
	return id, nil
}

// Reserve claims a logical ID for a synthesized resource.
func (ix *Index) Reserve(id string) error {
	if ix.taken[id] {
		return &cfnlite.DuplicateLogicalIDError{LogicalID: id}
	}
	ix.taken[id] = true
	return nil
}

// LogicalID looks up the logical ID for a declared human name.
func (ix *Index) LogicalID(humanName string) (string, error) {
	id, ok := ix.ids[strings.ToLower(humanName)]
	if !ok {
		return "", &cfnlite.UnresolvedReferenceError{Target: humanName}
	}
	return id, nil
}

// IsRefToken reports whether a value is a "ref <name>" token. A bare "ref"
// counts so that the malformed token is reported instead of passed through
// as a literal.
func IsRefToken(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(s)
	return trimmed == refKeyword || strings.HasPrefix(trimmed, refKeyword+" ")
}

// RefTarget parses the target name out of a ref token. The keyword must be
// followed by exactly one argument.
func RefTarget(token string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(token))
	if len(fields) != 2 || fields[0] != refKeyword {
		return "", &cfnlite.InvalidPropertyValueError{
			Property: token,
			Reason:   "keyword 'ref' must be followed by exactly one argument",
		}
	}
	return fields[1], nil
}

// Resolve turns a ref token into a plain-identifier reference.
func (ix *Index) Resolve(token string) (intrinsics.Ref, error) {
	target, err := RefTarget(token)
	if err != nil {
		return intrinsics.Ref{}, err
	}
	id, err := ix.LogicalID(target)
	if err != nil {
		return intrinsics.Ref{}, err
	}
	return intrinsics.Ref{LogicalName: id}, nil
}

// ResolveAttr turns a ref token into an attribute-access reference, for
// properties that need an attribute of the target rather than its identity.
func (ix *Index) ResolveAttr(token, attribute string) (intrinsics.GetAtt, error) {
	target, err := RefTarget(token)
	if err != nil {
		return intrinsics.GetAtt{}, err
	}
	id, err := ix.LogicalID(target)
	if err != nil {
		return intrinsics.GetAtt{}, err
	}
	return intrinsics.GetAtt{LogicalName: id, Attribute: attribute}, nil
}

// ResolveValue walks a property value and replaces every ref token. The
// attribute context comes from the builder that owns the property: empty
// means plain Ref, otherwise tokens resolve to GetAtt on that attribute.
func (ix *Index) ResolveValue(v any, attribute string) (any, error) {
	switch val := v.(type) {
	case string:
		if !IsRefToken(val) {
			return v, nil
		}
		if attribute != "" {
			return ix.ResolveAttr(val, attribute)
		}
		return ix.Resolve(val)

	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			resolved, err := ix.ResolveValue(item, attribute)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			resolved, err := ix.ResolveValue(item, attribute)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil

	default:
		// scalars and already-built intrinsic nodes pass through
		return v, nil
	}
}

// RefTargets collects the targets of every ref token reachable in a value.
// Used to build the dependency graph before anything is built.
func RefTargets(v any, out []string) ([]string, error) {
	switch val := v.(type) {
	case string:
		if !IsRefToken(val) {
			return out, nil
		}
		target, err := RefTarget(val)
		if err != nil {
			return nil, err
		}
		return append(out, target), nil

	case []any:
		var err error
		for _, item := range val {
			if out, err = RefTargets(item, out); err != nil {
				return nil, err
			}
		}
		return out, nil

	case map[string]any:
		var err error
		for _, item := range val {
			if out, err = RefTargets(item, out); err != nil {
				return nil, err
			}
		}
		return out, nil

	default:
		return out, nil
	}
}
