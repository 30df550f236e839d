package builders

import (
	"sort"

	"github.com/lex00/cloudformation-schema-go/intrinsics"

	"github.com/cfnlite/cfnlite"
	"github.com/cfnlite/cfnlite/internal/resolve"
)

// buildTags produces the Tags list for a resource: the implicit identifying
// tag first, then the user's tags sorted by key. Tag values may be ref
// tokens; they resolve here because the tag nodes are opaque to the
// assembler's second pass, and the declaration index is already complete.
func buildTags(in Input, userTags any) ([]any, error) {
	tags := []any{intrinsics.Tag{Key: ReservedTagKey, Value: in.LogicalID}}

	if userTags == nil {
		return tags, nil
	}

	mapping, ok := userTags.(map[string]any)
	if !ok {
		return nil, &cfnlite.InvalidPropertyValueError{
			Kind: string(in.Entry.Kind), Property: "Tags",
			Reason: "tags must be a mapping of key to value",
		}
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		if k == ReservedTagKey {
			return nil, &cfnlite.InvalidPropertyValueError{
				Kind: string(in.Entry.Kind), Property: "Tags",
				Reason: ReservedTagKey + " is a reserved tag key",
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		value := mapping[k]
		if resolve.IsRefToken(value) {
			ref, err := in.Index.Resolve(value.(string))
			if err != nil {
				return nil, err
			}
			value = ref
		}
		tags = append(tags, intrinsics.Tag{Key: k, Value: value})
	}
	return tags, nil
}
