package logline

import (
	"fmt"
	"sort"
	"strings"
)

// FieldKind is the value shape of one schema field.
type FieldKind string

const (
	FieldFloat     FieldKind = "float"
	FieldRange     FieldKind = "range"     // lo-hi
	FieldBook      FieldKind = "book"      // name:f f f f
	FieldDirection FieldKind = "direction" // Long|Short
	FieldAction    FieldKind = "action"    // Open|Close
)

// Role says which event attribute a field fills.
type Role string

const (
	RoleMid    Role = "mid"
	RoleOpen   Role = "open"
	RoleSpread Role = "spread"
	RoleBook   Role = "book"
	RoleAux    Role = "aux"
	RoleHint   Role = "hint"

	RolePrice     Role = "price"
	RoleVolume    Role = "volume"
	RoleDirection Role = "direction"
	RoleAction    Role = "action"
)

// FieldSpec describes one positional name:value field.
type FieldSpec struct {
	Name string    `json:"name" yaml:"name"`
	Kind FieldKind `json:"kind" yaml:"kind"`
	Role Role      `json:"role" yaml:"role"`
}

// Schema is the ordered list of fields following the type tag.
type Schema []FieldSpec

type roleRule struct {
	kind     FieldKind
	required bool
}

var roleRules = map[Kind]map[Role]roleRule{
	KindPrice: {
		RoleMid:    {FieldFloat, true},
		RoleOpen:   {FieldRange, false},
		RoleSpread: {FieldFloat, false},
		RoleBook:   {FieldBook, false},
		RoleAux:    {FieldFloat, false},
		RoleHint:   {FieldFloat, false},
	},
	KindOrder: {
		RolePrice:     {FieldFloat, true},
		RoleVolume:    {FieldFloat, true},
		RoleDirection: {FieldDirection, true},
		RoleAction:    {FieldAction, true},
	},
}

// Validate checks that s can describe lines of the given kind.
func (s Schema) Validate(kind Kind) error {
	rules, ok := roleRules[kind]
	if !ok {
		return fmt.Errorf("no schema rules for %s lines", kind)
	}
	seen := make(map[Role]bool, len(s))
	for i, f := range s {
		if f.Name == "" || strings.ContainsAny(f.Name, ": ") {
			return fmt.Errorf("%s field %d: invalid name %q", kind, i+1, f.Name)
		}
		rule, ok := rules[f.Role]
		if !ok {
			return fmt.Errorf("%s field %q: role %q not allowed", kind, f.Name, f.Role)
		}
		if f.Kind != rule.kind {
			return fmt.Errorf("%s field %q: role %q needs kind %q, got %q", kind, f.Name, f.Role, rule.kind, f.Kind)
		}
		if seen[f.Role] {
			return fmt.Errorf("%s field %q: duplicate role %q", kind, f.Name, f.Role)
		}
		seen[f.Role] = true
	}

	var missing []string
	for role, rule := range rules {
		if rule.required && !seen[role] {
			missing = append(missing, string(role))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s schema missing roles: %s", kind, strings.Join(missing, ", "))
	}
	return nil
}

// OrderSchema is the order layout shared by every known engine version.
var OrderSchema = Schema{
	{Name: "price", Kind: FieldFloat, Role: RolePrice},
	{Name: "volume", Kind: FieldFloat, Role: RoleVolume},
	{Name: "direction", Kind: FieldDirection, Role: RoleDirection},
	{Name: "action", Kind: FieldAction, Role: RoleAction},
}

// DefaultVariant names the price layout used when none is configured.
const DefaultVariant = "v1"

var priceVariants = map[string]Schema{
	"v1": {
		{Name: "mid", Kind: FieldFloat, Role: RoleMid},
		{Name: "open", Kind: FieldRange, Role: RoleOpen},
		{Name: "std", Kind: FieldFloat, Role: RoleSpread},
		{Name: "lob", Kind: FieldBook, Role: RoleBook},
		{Name: "profit", Kind: FieldFloat, Role: RoleAux},
	},
	"v2": {
		{Name: "mid", Kind: FieldFloat, Role: RoleMid},
		{Name: "open", Kind: FieldRange, Role: RoleOpen},
		{Name: "spread", Kind: FieldFloat, Role: RoleSpread},
		{Name: "lob", Kind: FieldBook, Role: RoleBook},
		{Name: "volume", Kind: FieldFloat, Role: RoleAux},
	},
	"v3": {
		{Name: "mid", Kind: FieldFloat, Role: RoleMid},
		{Name: "open", Kind: FieldRange, Role: RoleOpen},
		{Name: "spread", Kind: FieldFloat, Role: RoleSpread},
		{Name: "lob", Kind: FieldBook, Role: RoleBook},
		{Name: "volume", Kind: FieldFloat, Role: RoleAux},
		{Name: "direction", Kind: FieldFloat, Role: RoleHint},
	},
}

// Variant returns a copy of a built-in price schema.
func Variant(name string) (Schema, error) {
	s, ok := priceVariants[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema variant %q (known: %s)", name, strings.Join(Variants(), ", "))
	}
	return append(Schema(nil), s...), nil
}

// Variants lists the built-in price schema names.
func Variants() []string {
	names := make([]string, 0, len(priceVariants))
	for name := range priceVariants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
