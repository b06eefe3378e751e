package schema

import (
	"iter"
	"regexp"
	"slices"
	"strings"
)

// FieldType is the variant tag of a schema node.
type FieldType string

const (
	FieldTypeDirect FieldType = "direct"
	FieldTypeObject FieldType = "object"
	FieldTypeArray  FieldType = "array"
	FieldTypeMap    FieldType = "map"
)

// SupportedFieldTypes returns all valid field types.
func SupportedFieldTypes() []FieldType {
	return []FieldType{FieldTypeDirect, FieldTypeObject, FieldTypeArray, FieldTypeMap}
}

// IsValid reports whether t is a known field type.
func (t FieldType) IsValid() bool {
	return slices.Contains(SupportedFieldTypes(), t)
}

// IsContainer reports whether nodes of this type hold children.
func (t FieldType) IsContainer() bool {
	return t == FieldTypeObject || t == FieldTypeArray || t == FieldTypeMap
}

// String returns the string representation of the field type.
func (t FieldType) String() string {
	return string(t)
}

// Pattern is a compiled regular expression that must match a whole value.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles expr so that MatchString only succeeds when the
// entire value matches, regardless of the anchors present in expr.
func CompilePattern(expr string) (*Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, err
	}
	return &Pattern{expr: expr, re: re}, nil
}

// MatchString reports whether the whole of s matches the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the expression as written in the schema.
func (p *Pattern) String() string {
	return p.expr
}

// Constraint is the required/pattern/enum triple applied to a cell value.
type Constraint struct {
	Required        bool
	Pattern         *Pattern
	AvailableValues []string
}

// IsZero reports whether the constraint checks nothing.
func (c Constraint) IsZero() bool {
	return !c.Required && c.Pattern == nil && len(c.AvailableValues) == 0
}

// Allows reports whether v is a member of AvailableValues. A constraint
// without available values allows everything.
func (c Constraint) Allows(v string) bool {
	return len(c.AvailableValues) == 0 || slices.Contains(c.AvailableValues, v)
}

// Field is a single node of the schema tree.
type Field struct {
	// Key identifies the field within its parent.
	Key string
	// Path is the dotted key path from the schema root.
	Path string

	// Type is the informational type name from the document (e.g. "string").
	Type           string
	FieldType      FieldType
	FlatFileHeader string

	Required        bool
	Pattern         *Pattern
	AvailableValues []string
	CustomValidator []string

	// PrimaryKeyField names the child whose value discriminates array
	// elements. Only set on array fields.
	PrimaryKeyField string
	// DependentFieldValidation holds the conditional rules declared on an
	// array field, in document order.
	DependentFieldValidation []*DependentRule

	// Children holds child fields in document order.
	Children []*Field
}

// Constraint returns the field's own unconditional constraint.
func (f *Field) Constraint() Constraint {
	return Constraint{
		Required:        f.Required,
		Pattern:         f.Pattern,
		AvailableValues: f.AvailableValues,
	}
}

// IsLeaf reports whether the field is a direct value.
func (f *Field) IsLeaf() bool {
	return f.FieldType == FieldTypeDirect
}

// IsBound reports whether the field binds to a dataset column.
func (f *Field) IsBound() bool {
	return f.IsLeaf() && f.FlatFileHeader != ""
}

// Child returns the direct child with the given key.
func (f *Field) Child(key string) *Field {
	for _, c := range f.Children {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Descendant resolves a dotted key path relative to f.
func (f *Field) Descendant(path string) *Field {
	cur := f
	for _, key := range strings.Split(path, ".") {
		if cur = cur.Child(key); cur == nil {
			return nil
		}
	}
	return cur
}

// Condition restricts a dependent rule to elements whose discriminator
// value is one of Values.
type Condition struct {
	// Key is the discriminator path within the array element.
	Key    string
	Values []string

	field *Field
}

// Field returns the resolved discriminator field.
func (c Condition) Field() *Field {
	return c.field
}

// Matches reports whether v selects the rule.
func (c Condition) Matches(v string) bool {
	return slices.Contains(c.Values, v)
}

// DependentRule applies Constraint to the field at Key only for array
// elements selected by When.
type DependentRule struct {
	// Key is the constrained field path within the array element.
	Key        string
	Constraint Constraint
	When       Condition

	// Owner is the array field declaring the rule.
	Owner *Field
	field *Field
}

// Field returns the resolved constrained field.
func (r *DependentRule) Field() *Field {
	return r.field
}

// Schema is an immutable, loaded field-mapping schema.
type Schema struct {
	// Source names where the schema was loaded from, if known.
	Source string

	root     *Field
	byHeader map[string]*Field
	rules    map[*Field][]*DependentRule
}

// New assembles a Schema from top-level fields, resolving headers and
// dependent rules. It returns a SchemaError when the tree is inconsistent.
// Load is the usual way to obtain a Schema; New serves callers that build
// fields in code.
func New(fields ...*Field) (*Schema, error) {
	c := &checker{}
	root := &Field{FieldType: FieldTypeObject, Children: fields}
	s := c.assemble(root)
	if err := c.err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Fields returns the top-level fields in document order.
func (s *Schema) Fields() []*Field {
	return s.root.Children
}

// Walk yields every field of the tree in pre-order.
func (s *Schema) Walk() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		walk(s.root.Children, yield)
	}
}

func walk(fields []*Field, yield func(*Field) bool) bool {
	for _, f := range fields {
		if !yield(f) {
			return false
		}
		if !walk(f.Children, yield) {
			return false
		}
	}
	return true
}

// Leaves yields, in pre-order, every direct field bound to a column.
func (s *Schema) Leaves() iter.Seq[*Field] {
	return func(yield func(*Field) bool) {
		for f := range s.Walk() {
			if f.IsBound() && !yield(f) {
				return
			}
		}
	}
}

// Headers returns the expected flat headers in pre-order.
func (s *Schema) Headers() []string {
	var headers []string
	for f := range s.Leaves() {
		headers = append(headers, f.FlatFileHeader)
	}
	return headers
}

// Lookup returns the leaf bound to header.
func (s *Schema) Lookup(header string) (*Field, bool) {
	f, ok := s.byHeader[header]
	return f, ok
}

// RulesFor returns the dependent rules constraining f, in declaration order.
func (s *Schema) RulesFor(f *Field) []*DependentRule {
	return s.rules[f]
}
