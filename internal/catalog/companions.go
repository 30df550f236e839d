package catalog

// CompanionRule declares an auxiliary resource the engine synthesizes when
// two kinds are both present and not already linked. The primary kind names
// the companion (its logical ID plus Suffix); both sides are referenced from
// the companion's properties and listed in its DependsOn.
type CompanionRule struct {
	Suffix        string
	Primary       Kind
	Secondary     Kind
	TargetType    string
	PrimaryProp   string
	SecondaryProp string

	// Extra holds static properties the companion always carries.
	Extra map[string]any
}

// Rules fire in this order; later companions may be referenced by nothing,
// but a route must come after the gateway attachment it depends on exists in
// the rule set, so the order is part of the contract.
var companionRules = []CompanionRule{
	{
		Suffix:        "SubnetToRouteTable",
		Primary:       KindSubnet,
		Secondary:     KindRouteTable,
		TargetType:    "AWS::EC2::SubnetRouteTableAssociation",
		PrimaryProp:   "SubnetId",
		SecondaryProp: "RouteTableId",
	},
	{
		Suffix:        "SubnetToNACL",
		Primary:       KindSubnet,
		Secondary:     KindNetworkACL,
		TargetType:    "AWS::EC2::SubnetNetworkAclAssociation",
		PrimaryProp:   "SubnetId",
		SecondaryProp: "NetworkAclId",
	},
	{
		Suffix:        "RouteToIGW",
		Primary:       KindRouteTable,
		Secondary:     KindInternetGateway,
		TargetType:    "AWS::EC2::Route",
		PrimaryProp:   "RouteTableId",
		SecondaryProp: "GatewayId",
		Extra:         map[string]any{"DestinationCidrBlock": "0.0.0.0/0"},
	},
	{
		Suffix:        "Attachment",
		Primary:       KindInternetGateway,
		Secondary:     KindVPC,
		TargetType:    "AWS::EC2::VPCGatewayAttachment",
		PrimaryProp:   "InternetGatewayId",
		SecondaryProp: "VpcId",
	},
}

// CompanionRules returns the rule set in firing order.
func CompanionRules() []CompanionRule {
	rules := make([]CompanionRule, len(companionRules))
	copy(rules, companionRules)
	return rules
}

// CompanionKinds returns the kinds a given kind is checked against by the
// rule set.
func CompanionKinds(k Kind) []Kind {
	var out []Kind
	for _, r := range companionRules {
		switch k {
		case r.Primary:
			out = append(out, r.Secondary)
		case r.Secondary:
			out = append(out, r.Primary)
		}
	}
	return out
}
