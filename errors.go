package cfnlite

import "fmt"

// Compilation failures are all fatal to the current document: the engine
// either emits one complete template or the first of these errors. Each error
// carries the offending name/kind/key so users can find the bad declaration.

// UnknownResourceKindError reports a declaration whose kind is not supported.
type UnknownResourceKindError struct {
	HumanName string
}

func (e *UnknownResourceKindError) Error() string {
	return fmt.Sprintf("%s is not a supported resource", e.HumanName)
}

// UnknownPropertyError reports a property key that does not map onto any
// canonical property of the resource kind.
type UnknownPropertyError struct {
	Kind string
	Key  string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("%s is not a valid property for %s", e.Key, e.Kind)
}

// DuplicatePropertyError reports the same property declared twice, usually
// under two different casings of the key.
type DuplicatePropertyError struct {
	Kind string
	Key  string
}

func (e *DuplicatePropertyError) Error() string {
	return fmt.Sprintf("each property can only be used once, offending prop: %s", e.Key)
}

// UnknownProtocolPresetError reports a protocol preset name missing from the
// catalog.
type UnknownProtocolPresetError struct {
	Name string
}

func (e *UnknownProtocolPresetError) Error() string {
	return fmt.Sprintf("%s is not a known protocol preset", e.Name)
}

// MissingRequiredPropertyError reports a required property that is still
// unset after defaulting.
type MissingRequiredPropertyError struct {
	Kind     string
	Property string
}

func (e *MissingRequiredPropertyError) Error() string {
	return fmt.Sprintf("%s requires property %s", e.Kind, e.Property)
}

// InvalidPropertyValueError reports a property value of the wrong shape.
type InvalidPropertyValueError struct {
	Kind     string
	Property string
	Reason   string
}

func (e *InvalidPropertyValueError) Error() string {
	return fmt.Sprintf("invalid value for %s.%s: %s", e.Kind, e.Property, e.Reason)
}

// UnresolvedReferenceError reports a "ref <name>" token whose target is not
// declared in the document.
type UnresolvedReferenceError struct {
	Target string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("undefined resource: %s", e.Target)
}

// DuplicateResourceKindError reports two declarations of the same kind in one
// document.
type DuplicateResourceKindError struct {
	Kind string
}

func (e *DuplicateResourceKindError) Error() string {
	return fmt.Sprintf("resource kind %s is declared more than once", e.Kind)
}

// DuplicateLogicalIDError reports two declarations deriving the same logical
// ID. IDs are never auto-renamed.
type DuplicateLogicalIDError struct {
	LogicalID string
}

func (e *DuplicateLogicalIDError) Error() string {
	return fmt.Sprintf("duplicate logical ID: %s", e.LogicalID)
}

// AmbiguousCompanionLinkError reports a companion rule that matched more than
// one candidate pair and refused to guess.
type AmbiguousCompanionLinkError struct {
	Companion string
	Kind      string
	Count     int
}

func (e *AmbiguousCompanionLinkError) Error() string {
	return fmt.Sprintf(
		"cannot synthesize %s: %d resources of kind %s are candidates for the link",
		e.Companion, e.Count, e.Kind)
}
