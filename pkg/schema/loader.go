package schema

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	ffverrors "github.com/NVIDIA/flatfile-validator/pkg/errors"
)

// FromFile loads a schema from a JSON or YAML file.
func FromFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ffverrors.WrapWithContext(ffverrors.ErrCodeSchema, "failed to read schema file", err,
			map[string]any{"path": path})
	}

	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema from %q: %w", path, err)
	}
	s.Source = path

	return s, nil
}

// Read loads a schema from r.
func Read(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ffverrors.Wrap(ffverrors.ErrCodeSchema, "failed to read schema", err)
	}
	return Load(data)
}

// Load parses a JSON or YAML schema document. JSON is read through the YAML
// parser, which keeps mapping keys in document order; that order defines the
// pre-order of the resulting tree.
func Load(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ffverrors.Wrap(ffverrors.ErrCodeSchema, "schema is not a valid JSON or YAML document", err)
	}
	if len(doc.Content) == 0 {
		return nil, ffverrors.New(ffverrors.ErrCodeSchema, "schema document is empty")
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ffverrors.New(ffverrors.ErrCodeSchema, "schema document must be a mapping")
	}

	props := mappingValue(root, "properties")
	if props == nil {
		return nil, ffverrors.New(ffverrors.ErrCodeSchema, `schema is missing required top-level "properties"`)
	}

	c := &checker{}
	fields := c.parseProperties(props, "")
	s := c.assemble(&Field{FieldType: FieldTypeObject, Children: fields})
	if err := c.err(); err != nil {
		return nil, err
	}

	slog.Debug("schema loaded",
		"fields", len(fields),
		"headers", len(s.byHeader),
		"rules", len(s.rules))

	return s, nil
}

func (c *checker) parseProperties(n *yaml.Node, path string) []*Field {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		c.add(path, "properties must be a mapping")
		return []*Field{}
	}

	fields := make([]*Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		fields = append(fields, c.parseField(key, n.Content[i+1], joinPath(path, key)))
	}
	return fields
}

func (c *checker) parseField(key string, n *yaml.Node, path string) *Field {
	f := &Field{Key: key, FieldType: FieldTypeDirect}

	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		c.add(path, "field definition must be a mapping")
		return f
	}

	var fieldType string
	var props, items, rules *yaml.Node

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1]
		switch k {
		case "type":
			f.Type = c.scalar(v, path, k)
		case "flatFileHeader":
			f.FlatFileHeader = c.scalar(v, path, k)
		case "pattern":
			f.Pattern = c.pattern(v, path)
		case "customValidator":
			f.CustomValidator = c.strings(v, path, k)
		case "required":
			f.Required = c.boolean(v, path, k)
		case "fieldType":
			fieldType = c.scalar(v, path, k)
		case "availableValues":
			f.AvailableValues = c.strings(v, path, k)
		case "primaryKeyField":
			f.PrimaryKeyField = c.scalar(v, path, k)
		case "dependentFieldValidation":
			rules = v
		case "properties":
			props = v
		case "items":
			items = v
		default:
			slog.Debug("ignoring unknown schema key", "path", path, "key", k)
		}
	}

	switch {
	case fieldType != "":
		f.FieldType = FieldType(fieldType)
	case items != nil:
		f.FieldType = FieldTypeArray
	case props != nil:
		f.FieldType = FieldTypeObject
	}

	if items != nil {
		switch {
		case f.FieldType != FieldTypeArray:
			c.add(path, "fieldType %q cannot have items", f.FieldType)
		case props == nil:
			props = c.itemProperties(items, path)
		}
	}
	if props != nil {
		f.Children = c.parseProperties(props, path)
	}
	if rules != nil {
		f.DependentFieldValidation = c.parseRules(rules, path)
	}

	return f
}

// itemProperties returns the properties of an array's items mapping, or nil
// when there are none; the array is then reported as childless.
func (c *checker) itemProperties(items *yaml.Node, path string) *yaml.Node {
	items = resolve(items)
	if items.Kind != yaml.MappingNode {
		c.add(path, "items must be a mapping")
		return nil
	}
	return mappingValue(items, "properties")
}

func (c *checker) parseRules(n *yaml.Node, path string) []*DependentRule {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		c.add(path, "dependentFieldValidation must be a list")
		return nil
	}

	rules := make([]*DependentRule, 0, len(n.Content))
	for i, item := range n.Content {
		item = resolve(item)
		rulePath := fmt.Sprintf("%s.dependentFieldValidation[%d]", path, i)
		if item.Kind != yaml.MappingNode {
			c.add(rulePath, "rule must be a mapping")
			continue
		}

		r := &DependentRule{}
		for j := 0; j+1 < len(item.Content); j += 2 {
			k, v := item.Content[j].Value, item.Content[j+1]
			switch k {
			case "key":
				r.Key = c.scalar(v, rulePath, k)
			case "source":
				r.Constraint = c.constraint(v, rulePath+".source")
			case "target":
				r.When = c.condition(v, rulePath+".target")
			default:
				slog.Debug("ignoring unknown rule key", "path", rulePath, "key", k)
			}
		}
		rules = append(rules, r)
	}
	return rules
}

func (c *checker) constraint(n *yaml.Node, path string) Constraint {
	var con Constraint
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		c.add(path, "must be a mapping")
		return con
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1]
		switch k {
		case "required":
			con.Required = c.boolean(v, path, k)
		case "pattern":
			con.Pattern = c.pattern(v, path)
		case "availableValues":
			con.AvailableValues = c.strings(v, path, k)
		}
	}
	return con
}

func (c *checker) condition(n *yaml.Node, path string) Condition {
	var cond Condition
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		c.add(path, "must be a mapping")
		return cond
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i].Value, n.Content[i+1]
		switch k {
		case "key":
			cond.Key = c.scalar(v, path, k)
		case "availableValues":
			cond.Values = c.strings(v, path, k)
		}
	}
	return cond
}

func (c *checker) scalar(n *yaml.Node, path, key string) string {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode {
		c.add(path, "%s must be a scalar", key)
		return ""
	}
	if n.Tag == "!!null" {
		return ""
	}
	return n.Value
}

func (c *checker) strings(n *yaml.Node, path, key string) []string {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		c.add(path, "%s must be a list", key)
		return nil
	}

	values := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		values = append(values, c.scalar(item, path, key))
	}
	return values
}

// boolean accepts YAML/JSON booleans as well as the strings "true" and "false".
func (c *checker) boolean(n *yaml.Node, path, key string) bool {
	v := c.scalar(n, path, key)
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true
	case "false", "":
		return false
	default:
		c.add(path, "%s must be \"true\" or \"false\", got %q", key, v)
		return false
	}
}

func (c *checker) pattern(n *yaml.Node, path string) *Pattern {
	expr := c.scalar(n, path, "pattern")
	if expr == "" {
		return nil
	}

	p, err := CompilePattern(expr)
	if err != nil {
		c.add(path, "invalid pattern %q: %v", expr, err)
		return nil
	}
	return p
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
