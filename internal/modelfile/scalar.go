package modelfile

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/ssflowgo/internal/algebra"
)

// Scalar is one raw matrix entry before algebraic parsing: a number literal
// or an expression string.
type Scalar struct {
	num    float64
	expr   string
	isExpr bool
}

// UnmarshalYAML accepts integer, float, or string scalars.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: matrix entry must be a number or expression string", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		return node.Decode(&s.num)
	case "!!str":
		s.isExpr = true
		return node.Decode(&s.expr)
	default:
		return fmt.Errorf("line %d: matrix entry has unsupported type %s", node.Line, node.Tag)
	}
}

// UnmarshalJSON accepts JSON numbers and strings.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		s.num = v
		return nil
	case string:
		s.isExpr = true
		s.expr = v
		return nil
	default:
		return fmt.Errorf("matrix entry must be a number or expression string, got %T", raw)
	}
}

// value parses the scalar against the declared free-variable set.
func (s *Scalar) value(vars []string) (algebra.Value, error) {
	if s.isExpr {
		return algebra.Parse(s.expr, vars)
	}
	return algebra.Number(s.num), nil
}

// Entry is a vector element that the document may give either flat or as a
// single-element row (a column written in matrix form).
type Entry struct {
	Scalar
}

// UnmarshalYAML flattens `[v]` rows into the scalar v.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		if len(node.Content) != 1 {
			return fmt.Errorf("line %d: vector entry must be a scalar or single-element list", node.Line)
		}
		node = node.Content[0]
	}
	return e.Scalar.UnmarshalYAML(node)
}

// UnmarshalJSON flattens `[v]` rows into the scalar v.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		if len(items) != 1 {
			return fmt.Errorf("vector entry must be a scalar or single-element list")
		}
		data = items[0]
	}
	return e.Scalar.UnmarshalJSON(data)
}
