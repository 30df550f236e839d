// Package props normalizes user-supplied property keys onto the canonical
// CloudFormation names for a resource kind.
//
// Users do not have to match CloudFormation's PascalCase: "securitygroups",
// "securityGroups" and "SECURITYGROUPS" all normalize to "SecurityGroups".
// Spelling still matters; keys that cannot be reassembled from the kind's
// word language are rejected rather than passed through.
package props

import (
	"sort"
	"strings"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/catalog"
)

// Resource-level attribute words. These sit outside a kind's properties but
// are valid on any resource, so the matcher always includes them.
var resourceAttrWords = []string{
	"Creation", "Deletion", "Depends", "Metadata", "On",
	"Policy", "Replace", "Update",
}

// AttributeNames are the resource attributes cfnlite accepts alongside
// properties. They are split off the property map before building.
var AttributeNames = map[string]bool{
	"CreationPolicy":      true,
	"DeletionPolicy":      true,
	"DependsOn":           true,
	"Metadata":            true,
	"UpdatePolicy":        true,
	"UpdateReplacePolicy": true,
}

// MatchKey breaks a raw key into the canonical words it is made of, using
// backtracking over the kind's word language. Returns nil when the key is
// not expressible in the language.
func MatchKey(key string, lang []string) []string {
	words := append([]string{}, lang...)
	words = append(words, resourceAttrWords...)

	memo := map[string]bool{}
	var matches []string

	var backtrack func(s string) bool
	backtrack = func(s string) bool {
		if done, ok := memo[s]; ok {
			return done
		}
		if s == "" {
			return true
		}

		res := false
		for _, word := range words {
			if strings.HasPrefix(s, strings.ToLower(word)) && backtrack(s[len(word):]) {
				matches = append(matches, word)
				res = true
				break
			}
		}

		memo[s] = res
		return res
	}

	if !backtrack(strings.ToLower(key)) {
		return nil
	}

	// matches were appended innermost-first
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches
}

// CanonicalName maps a raw key onto the canonical property (or resource
// attribute) name for the kind. Word-combination alone is not enough: the
// reassembled name must be a property the kind actually supports.
func CanonicalName(key string, entry catalog.Entry) (string, error) {
	words := MatchKey(key, entry.Lang)
	if words == nil {
		return "", &cfnlite.UnknownPropertyError{Kind: string(entry.Kind), Key: key}
	}

	name := strings.Join(words, "")
	if AttributeNames[name] {
		return name, nil
	}
	for _, p := range entry.Props {
		if p == name {
			return name, nil
		}
	}
	return "", &cfnlite.UnknownPropertyError{Kind: string(entry.Kind), Key: key}
}

// Normalize maps every raw key onto its canonical name and coerces scalar
// values into single-element lists where the property expects a list. It
// resolves no references and applies no defaults.
func Normalize(entry catalog.Entry, raw map[string]any) (map[string]any, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	seen := make(map[string]bool, len(raw))

	for _, key := range keys {
		name, err := CanonicalName(key, entry)
		if err != nil {
			return nil, err
		}
		if seen[strings.ToLower(name)] {
			return nil, &cfnlite.DuplicatePropertyError{Kind: string(entry.Kind), Key: key}
		}
		seen[strings.ToLower(name)] = true

		out[name] = coerce(entry, name, raw[key])
	}

	return out, nil
}

// coerce wraps scalars in a list for list-shaped properties; lists and
// mappings pass through unchanged.
func coerce(entry catalog.Entry, name string, value any) any {
	if !entry.ListProps[name] {
		return value
	}
	switch value.(type) {
	case []any, map[string]any, nil:
		return value
	default:
		return []any{value}
	}
}
