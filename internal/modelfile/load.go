package modelfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vk/ssflowgo/internal/algebra"
	"github.com/vk/ssflowgo/internal/model"
)

// Document is the raw model file schema: matrices with numeric or expression
// entries, an optional feedthrough scalar, and the declared free variables
// the expressions may reference.
type Document struct {
	Name      string     `yaml:"name" json:"name"`
	A         [][]Scalar `yaml:"A" json:"A" validate:"required,min=1,dive,min=1"`
	B         []Entry    `yaml:"b" json:"b" validate:"required,min=1"`
	C         []Entry    `yaml:"c" json:"c" validate:"required,min=1"`
	D         *Scalar    `yaml:"d" json:"d"`
	Variables []string   `yaml:"variables" json:"variables" validate:"omitempty,dive,required"`
}

var validate = validator.New()

// Load reads a model document from path, detecting YAML or JSON by file
// extension, and returns the validated realisation.
func Load(path string) (*model.Realisation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: %w", err)
	}
	var doc Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &doc)
	case ".json":
		err = decodeJSON(data, &doc)
	default:
		return nil, fmt.Errorf("modelfile: unsupported input extension %q (want .yaml, .yml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("modelfile: %s: %w", path, err)
	}
	r, err := doc.Realisation()
	if err != nil {
		return nil, fmt.Errorf("modelfile: %s: %w", path, err)
	}
	return r, nil
}

func decodeYAML(data []byte, doc *Document) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}
	return nil
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("document is empty")
		}
		return err
	}
	return nil
}

// Realisation validates the document shape and parses every entry into an
// algebra.Value against the declared variable set.
func (d *Document) Realisation() (*model.Realisation, error) {
	if err := validate.Struct(d); err != nil {
		return nil, fmt.Errorf("document validation failed: %w", err)
	}

	n := len(d.A)
	a := make([][]algebra.Value, n)
	for i, row := range d.A {
		if len(row) != n {
			return nil, fmt.Errorf("matrix A must be square: row %d has %d columns, want %d", i+1, len(row), n)
		}
		a[i] = make([]algebra.Value, n)
		for j := range row {
			v, err := row[j].value(d.Variables)
			if err != nil {
				return nil, fmt.Errorf("A[%d,%d]: %w", i+1, j+1, err)
			}
			a[i][j] = v
		}
	}

	b, err := parseVector(d.B, n, "b", d.Variables)
	if err != nil {
		return nil, err
	}
	c, err := parseVector(d.C, n, "c", d.Variables)
	if err != nil {
		return nil, err
	}

	dv := algebra.Zero
	if d.D != nil {
		dv, err = d.D.value(d.Variables)
		if err != nil {
			return nil, fmt.Errorf("d: %w", err)
		}
	}

	return model.New(d.Name, a, b, c, dv)
}

func parseVector(entries []Entry, n int, location string, vars []string) ([]algebra.Value, error) {
	if len(entries) != n {
		return nil, fmt.Errorf("vector %s must have length %d, got %d", location, n, len(entries))
	}
	out := make([]algebra.Value, n)
	for i := range entries {
		v, err := entries[i].value(vars)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", location, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
