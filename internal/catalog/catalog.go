// Package catalog holds the static lookup tables the engine compiles against:
// resource-kind metadata (CloudFormation target type, defaults, required
// properties), protocol presets for network rules, and the companion rules
// used to wire declared resources together.
//
// Everything here is immutable after process start; callers get fresh copies
// of any mutable-looking structure.
package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cfnlite/cfnlite"
)

// Kind identifies a supported cfnlite resource kind.
type Kind string

const (
	KindEC2             Kind = "ec2"
	KindVPC             Kind = "vpc"
	KindSubnet          Kind = "subnet"
	KindSecurityGroups  Kind = "securitygroups"
	KindNetworkACL      Kind = "networkacl"
	KindRouteTable      Kind = "routetable"
	KindInternetGateway Kind = "internetgateway"
	KindRole            Kind = "role"
	KindPolicy          Kind = "policy"
)

// IP protocol numbers used in network ACL entries.
const (
	ProtocolNumberTCP  = 6
	ProtocolNumberICMP = 1
)

// Entry describes one supported resource kind.
type Entry struct {
	Kind       Kind
	TargetType string

	// Props are the canonical property names users may set, including
	// cfnlite-only pseudo properties such as networkacl ingress/egress.
	Props []string

	// Lang is the word language the normalizer matches raw keys against.
	// Derived from Props at init.
	Lang []string

	// Required properties are always emitted, defaulted when the user does
	// not set them.
	Required []string

	// ListProps expect list values; scalars are wrapped on the way in.
	ListProps map[string]bool

	// IntProps and BoolProps get basic shape validation.
	IntProps  map[string]bool
	BoolProps map[string]bool

	// Taggable kinds carry a Tags property and receive the implicit
	// identifying tag.
	Taggable bool

	defaults func() map[string]any
}

// Defaults returns a fresh copy of the kind's default properties.
func (e Entry) Defaults() map[string]any {
	if e.defaults == nil {
		return map[string]any{}
	}
	return e.defaults()
}

var kinds = map[Kind]Entry{}

func register(e Entry) {
	e.Lang = buildLang(e.Props)
	kinds[e.Kind] = e
}

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func init() {
	register(Entry{
		Kind:       KindEC2,
		TargetType: "AWS::EC2::Instance",
		Props: []string{
			"AdditionalInfo", "Affinity", "AvailabilityZone",
			"BlockDeviceMappings", "DisableApiTermination", "EbsOptimized",
			"HostId", "HostResourceGroupArn", "IamInstanceProfile", "ImageId",
			"InstanceInitiatedShutdownBehavior", "InstanceType", "KernelId",
			"KeyName", "Monitoring", "NetworkInterfaces", "PlacementGroupName",
			"PrivateIpAddress", "SecurityGroupIds", "SecurityGroups",
			"SubnetId", "Tags", "Tenancy", "Volumes",
		},
		Required: []string{"ImageId", "InstanceType", "SecurityGroups"},
		ListProps: setOf(
			"BlockDeviceMappings", "NetworkInterfaces", "SecurityGroupIds",
			"SecurityGroups", "Tags", "Volumes"),
		BoolProps: setOf("DisableApiTermination", "EbsOptimized", "Monitoring"),
		Taggable:  true,
		defaults: func() map[string]any {
			return map[string]any{
				"ImageId":        "ami-0b45ae66668865cd6",
				"InstanceType":   "t2.micro",
				"SecurityGroups": []any{"default"},
			}
		},
	})

	register(Entry{
		Kind:       KindVPC,
		TargetType: "AWS::EC2::VPC",
		Props: []string{
			"CidrBlock", "EnableDnsHostnames", "EnableDnsSupport",
			"InstanceTenancy", "Ipv4IpamPoolId", "Ipv4NetmaskLength", "Tags",
		},
		Required:  []string{"CidrBlock"},
		ListProps: setOf("Tags"),
		IntProps:  setOf("Ipv4NetmaskLength"),
		BoolProps: setOf("EnableDnsHostnames", "EnableDnsSupport"),
		Taggable:  true,
		defaults: func() map[string]any {
			return map[string]any{
				"CidrBlock":          "10.0.0.0/16",
				"EnableDnsHostnames": false,
				"EnableDnsSupport":   false,
				"InstanceTenancy":    "default",
			}
		},
	})

	register(Entry{
		Kind:       KindSubnet,
		TargetType: "AWS::EC2::Subnet",
		Props: []string{
			"AssignIpv6AddressOnCreation", "AvailabilityZone",
			"AvailabilityZoneId", "CidrBlock", "EnableDns64",
			"EnableLniAtDeviceIndex", "Ipv4IpamPoolId", "Ipv4NetmaskLength",
			"Ipv6CidrBlock", "Ipv6IpamPoolId", "Ipv6Native",
			"Ipv6NetmaskLength", "MapPublicIpOnLaunch", "OutpostArn", "Tags",
			"VpcId",
		},
		Required:  []string{"AvailabilityZone", "CidrBlock", "VpcId"},
		ListProps: setOf("Tags"),
		IntProps: setOf(
			"EnableLniAtDeviceIndex", "Ipv4NetmaskLength", "Ipv6NetmaskLength"),
		BoolProps: setOf(
			"AssignIpv6AddressOnCreation", "EnableDns64", "Ipv6Native",
			"MapPublicIpOnLaunch"),
		Taggable: true,
		defaults: func() map[string]any {
			return map[string]any{
				"AvailabilityZone": "eu-west-2a",
				"CidrBlock":        "10.0.1.0/24",
				"VpcId":            "fake-vpc-id",
			}
		},
	})

	register(Entry{
		Kind:       KindSecurityGroups,
		TargetType: "AWS::EC2::SecurityGroup",
		Props: []string{
			"GroupDescription", "GroupName", "SecurityGroupEgress",
			"SecurityGroupIngress", "Tags", "VpcId",
		},
		Required: []string{
			"GroupDescription", "SecurityGroupEgress", "SecurityGroupIngress",
		},
		ListProps: setOf("SecurityGroupEgress", "SecurityGroupIngress", "Tags"),
		Taggable:  true,
		defaults: func() map[string]any {
			return map[string]any{
				"GroupDescription":     "",
				"GroupName":            "default-group-name",
				"SecurityGroupEgress":  []any{},
				"SecurityGroupIngress": []any{},
			}
		},
	})

	register(Entry{
		Kind:       KindNetworkACL,
		TargetType: "AWS::EC2::NetworkAcl",
		// Ingress and Egress are cfnlite pseudo properties: lists of protocol
		// presets expanded into separate NetworkAclEntry resources.
		Props:     []string{"Egress", "Ingress", "Tags", "VpcId"},
		Required:  []string{"VpcId"},
		ListProps: setOf("Egress", "Ingress", "Tags"),
		Taggable:  true,
		defaults: func() map[string]any {
			return map[string]any{"VpcId": "id-example-vpc"}
		},
	})

	register(Entry{
		Kind:       KindRouteTable,
		TargetType: "AWS::EC2::RouteTable",
		Props:      []string{"Tags", "VpcId"},
		Required:   []string{"VpcId"},
		ListProps:  setOf("Tags"),
		Taggable:   true,
		defaults: func() map[string]any {
			return map[string]any{"VpcId": "id-example-vpc"}
		},
	})

	register(Entry{
		Kind:       KindInternetGateway,
		TargetType: "AWS::EC2::InternetGateway",
		Props:      []string{"Tags"},
		ListProps:  setOf("Tags"),
		Taggable:   true,
		defaults: func() map[string]any {
			return map[string]any{}
		},
	})

	register(Entry{
		Kind:       KindRole,
		TargetType: "AWS::IAM::Role",
		Props: []string{
			"AssumeRolePolicyDocument", "Description", "ManagedPolicyArns",
			"MaxSessionDuration", "Path", "PermissionsBoundary", "Policies",
			"RoleName", "Tags",
		},
		Required:  []string{"AssumeRolePolicyDocument", "RoleName"},
		ListProps: setOf("ManagedPolicyArns", "Policies", "Tags"),
		IntProps:  setOf("MaxSessionDuration"),
		Taggable:  true,
		defaults: func() map[string]any {
			return map[string]any{
				"AssumeRolePolicyDocument": map[string]any{},
				"Description":              "A test role",
				"MaxSessionDuration":       1,
				"Path":                     "/",
				"RoleName":                 "TestRole",
			}
		},
	})

	register(Entry{
		Kind:       KindPolicy,
		TargetType: "AWS::IAM::Policy",
		// Statement is a cfnlite shorthand: a flattened statement list that
		// expands into the nested PolicyDocument structure.
		Props: []string{
			"Groups", "PolicyDocument", "PolicyName", "Roles", "Statement",
			"Users",
		},
		Required:  []string{"PolicyDocument", "PolicyName"},
		ListProps: setOf("Groups", "Roles", "Statement", "Users"),
		defaults: func() map[string]any {
			return map[string]any{
				"PolicyName": "Example cfnlite policy",
				"PolicyDocument": map[string]any{
					"Version":   "2012-10-17",
					"Statement": []any{},
				},
			}
		},
	})
}

// StatementEntry is the pseudo entry for flattened IAM policy statements.
// Role and policy builders normalize each statement against it the same way
// top-level properties are normalized against their kind.
func StatementEntry() Entry {
	e := Entry{
		Kind:      "statement",
		Props:     []string{"Action", "Effect", "Principal", "Resources", "Sid"},
		Required:  []string{"Action", "Effect", "Resources"},
		ListProps: setOf("Action", "Resources"),
		defaults: func() map[string]any {
			return map[string]any{
				"Action":    []any{},
				"Effect":    "Allow",
				"Resources": []any{"*"},
			}
		},
	}
	e.Lang = buildLang(e.Props)
	return e
}

// Lookup returns the catalog entry for a kind name (case insensitive).
func Lookup(name string) (Entry, error) {
	e, ok := kinds[Kind(strings.ToLower(name))]
	if !ok {
		return Entry{}, &cfnlite.UnknownResourceKindError{HumanName: name}
	}
	return e, nil
}

// Kinds returns the supported kind names, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Describe returns the explain view of a kind: target type, supported
// properties and defaults. Read only, sourced from the same tables the
// builders compile against.
func Describe(name string) (cfnlite.KindDescription, error) {
	e, err := Lookup(name)
	if err != nil {
		return cfnlite.KindDescription{}, err
	}

	props := make([]string, len(e.Props))
	copy(props, e.Props)
	sort.Strings(props)

	return cfnlite.KindDescription{
		Kind:       string(e.Kind),
		TargetType: e.TargetType,
		Properties: props,
		Defaults:   e.Defaults(),
	}, nil
}

// buildLang splits canonical property names into their word tokens, the
// "language" the normalizer reassembles user keys from.
// e.g. "AssumeRolePolicyDocument" -> Assume, Role, Policy, Document.
func buildLang(props []string) []string {
	seen := map[string]bool{}
	var lang []string

	add := func(word string) {
		if word != "" && !seen[word] {
			seen[word] = true
			lang = append(lang, word)
		}
	}

	for _, prop := range props {
		var word strings.Builder
		for _, r := range prop {
			if unicode.IsUpper(r) && word.Len() > 0 {
				add(word.String())
				word.Reset()
			}
			word.WriteRune(r)
		}
		add(word.String())
	}

	sort.Strings(lang)
	return lang
}
