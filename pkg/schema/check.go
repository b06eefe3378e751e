package schema

import (
	"fmt"
	"strings"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// Problem is one structural defect found while loading a schema.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// checker accumulates structural problems so that a single load reports all
// of them at once.
type checker struct {
	problems []Problem
}

func (c *checker) add(path, format string, args ...any) {
	c.problems = append(c.problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) err() error {
	if len(c.problems) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("schema structure validation failed:")
	details := make([]string, 0, len(c.problems))
	for _, p := range c.problems {
		b.WriteString("\n  - ")
		b.WriteString(p.String())
		details = append(details, p.String())
	}

	return ffverrors.WrapWithContext(ffverrors.ErrCodeSchema, b.String(), nil,
		map[string]any{"problems": details})
}

// assemble sets paths, checks invariants and builds the header and rule
// indexes for the tree below root.
func (c *checker) assemble(root *Field) *Schema {
	s := &Schema{
		root:     root,
		byHeader: make(map[string]*Field),
		rules:    make(map[*Field][]*DependentRule),
	}
	c.visit(s, root.Children, "")
	return s
}

func (c *checker) visit(s *Schema, fields []*Field, parent string) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == nil {
			c.add(parent, "nil field")
			continue
		}

		f.Path = f.Key
		if parent != "" {
			f.Path = parent + "." + f.Key
		}

		if f.Key == "" {
			c.add(f.Path, "field key cannot be empty")
		}
		if seen[f.Key] {
			c.add(f.Path, "duplicate field key %q", f.Key)
		}
		seen[f.Key] = true

		c.checkField(f)

		if f.IsBound() {
			if prev, dup := s.byHeader[f.FlatFileHeader]; dup {
				c.add(f.Path, "flatFileHeader %q is already bound to %q", f.FlatFileHeader, prev.Path)
			} else {
				s.byHeader[f.FlatFileHeader] = f
			}
		}

		c.visit(s, f.Children, f.Path)

		for _, r := range f.DependentFieldValidation {
			if c.resolveRule(f, r) {
				s.rules[r.field] = append(s.rules[r.field], r)
			}
		}
	}
}

func (c *checker) checkField(f *Field) {
	if !f.FieldType.IsValid() {
		c.add(f.Path, "unknown fieldType %q, supported values: %v", f.FieldType, SupportedFieldTypes())
		return
	}

	if f.FieldType.IsContainer() && f.Children == nil {
		c.add(f.Path, "fieldType %q requires properties", f.FieldType)
	}
	if f.IsLeaf() && len(f.Children) > 0 {
		c.add(f.Path, "fieldType %q cannot have properties", f.FieldType)
	}

	if f.FieldType != FieldTypeArray {
		if f.PrimaryKeyField != "" {
			c.add(f.Path, "primaryKeyField is only allowed on array fields")
		}
		if len(f.DependentFieldValidation) > 0 {
			c.add(f.Path, "dependentFieldValidation is only allowed on array fields")
		}
		return
	}

	if f.PrimaryKeyField != "" {
		pk := f.Descendant(f.PrimaryKeyField)
		switch {
		case pk == nil:
			c.add(f.Path, "primaryKeyField %q does not name a child field", f.PrimaryKeyField)
		case !pk.IsBound():
			c.add(f.Path, "primaryKeyField %q must be a direct field with a flatFileHeader", f.PrimaryKeyField)
		}
	}
}

// resolveRule binds the rule's field and discriminator within owner.
func (c *checker) resolveRule(owner *Field, r *DependentRule) bool {
	if owner.FieldType != FieldTypeArray {
		return false
	}

	r.Owner = owner
	path := owner.Path + ".dependentFieldValidation[" + r.Key + "]"
	ok := true

	if r.When.Key == "" {
		r.When.Key = owner.PrimaryKeyField
	}
	if r.When.Key == "" {
		c.add(path, "target key is required when the array declares no primaryKeyField")
		ok = false
	} else if disc := owner.Descendant(r.When.Key); disc == nil || !disc.IsBound() {
		c.add(path, "target key %q must name a direct child with a flatFileHeader", r.When.Key)
		ok = false
	} else {
		r.When.field = disc
	}

	if len(r.When.Values) == 0 {
		c.add(path, "target availableValues cannot be empty")
		ok = false
	}

	if r.Key == "" {
		c.add(path, "rule key cannot be empty")
		ok = false
	} else if target := owner.Descendant(r.Key); target == nil || !target.IsBound() {
		c.add(path, "rule key %q must name a direct child with a flatFileHeader", r.Key)
		ok = false
	} else {
		r.field = target
	}

	if r.Constraint.IsZero() {
		c.add(path, "source declares no constraint")
		ok = false
	}

	return ok
}
