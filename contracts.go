// Package cfnlite provides the shared contract types for the cfnlite
// CloudFormation generator.
//
// cfnlite compiles a short, flat resource description:
//
//	name: myStack
//	resources:
//	  vpc:
//	    tags:
//	      team: platform
//	  internetgateway: {}
//
// into a complete CloudFormation template, filling in required fields,
// normalizing property names, resolving "ref <name>" tokens and synthesizing
// the attachment/association resources the schema needs but users should not
// have to spell out.
//
// The engine lives under internal/; the cfnlite CLI drives it.
package cfnlite

// Template represents a CloudFormation template.
type Template struct {
	AWSTemplateFormatVersion string                 `json:"AWSTemplateFormatVersion" yaml:"AWSTemplateFormatVersion"`
	Description              string                 `json:"Description,omitempty" yaml:"Description,omitempty"`
	Resources                map[string]ResourceDef `json:"Resources" yaml:"Resources"`
}

// ResourceDef is a single resource in the CloudFormation template. Besides
// Type and Properties it carries the resource attributes cfnlite accepts in
// declarations.
type ResourceDef struct {
	Type                string         `json:"Type" yaml:"Type"`
	Properties          map[string]any `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	CreationPolicy      map[string]any `json:"CreationPolicy,omitempty" yaml:"CreationPolicy,omitempty"`
	DeletionPolicy      string         `json:"DeletionPolicy,omitempty" yaml:"DeletionPolicy,omitempty"`
	Metadata            map[string]any `json:"Metadata,omitempty" yaml:"Metadata,omitempty"`
	UpdatePolicy        map[string]any `json:"UpdatePolicy,omitempty" yaml:"UpdatePolicy,omitempty"`
	UpdateReplacePolicy string         `json:"UpdateReplacePolicy,omitempty" yaml:"UpdateReplacePolicy,omitempty"`
	DependsOn           []string       `json:"DependsOn,omitempty" yaml:"DependsOn,omitempty"`
}

// BuildResult is the JSON output from `cfnlite build`.
type BuildResult struct {
	Success   bool     `json:"success"`
	Template  Template `json:"template,omitempty"`
	Resources []string `json:"resources,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// KindDescription is the output of `cfnlite explain <kind>`: the target
// CloudFormation type plus the properties and defaults the kind supports.
type KindDescription struct {
	Kind       string         `json:"kind"`
	TargetType string         `json:"targetType"`
	Properties []string       `json:"properties"`
	Defaults   map[string]any `json:"defaults"`
}
