package comma

import (
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// viewsFile is the YAML document read by DeclareYAML:
//
//	views:
//	  - name: default
//	    columns:
//	      - id
//	      - name: email
//	        header: E-Mail
//	      - name: orders
//	        columns: [id, total]
//	  - name: short
//	    reset: true
//	    columns: [id]
type viewsFile struct {
	Views []viewSpec `yaml:"views"`
}

type viewSpec struct {
	Name    string       `yaml:"name"`
	Reset   bool         `yaml:"reset"`
	Columns []columnSpec `yaml:"columns"`
}

// columnSpec is either a bare column name
// or a mapping with name, header and nested columns.
type columnSpec struct {
	Name    string       `yaml:"name"`
	Header  string       `yaml:"header"`
	Columns []columnSpec `yaml:"columns"`
}

func (s *columnSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		return nil
	}
	type plain columnSpec
	return node.Decode((*plain)(s))
}

func (s *columnSpec) column() *Column {
	col := Col(s.Name, Header(s.Header))
	if s.Columns != nil {
		children := make([]*Column, len(s.Columns))
		for i := range s.Columns {
			children[i] = s.Columns[i].column()
		}
		Children(children...)(col)
	}
	return col
}

// DeclareYAML declares the views of a YAML document for typ.
// Columns declared with YAML can't have a Deriver,
// they are looked up by name with the Accessor of the export.
// All views are validated before any of them is declared.
func (r *Registry) DeclareYAML(typ reflect.Type, data []byte) error {
	var file viewsFile
	err := yaml.Unmarshal(data, &file)
	if err != nil {
		return newInvalidColumnSpecError("", fmt.Sprintf("can't parse YAML views: %s", err))
	}
	views := make([][]*Column, len(file.Views))
	for i, view := range file.Views {
		if view.Name == "" {
			return newInvalidColumnSpecError("", fmt.Sprintf("YAML view %d has no name", i))
		}
		views[i] = make([]*Column, len(view.Columns))
		for j := range view.Columns {
			col := view.Columns[j].column()
			if err := col.Validate(); err != nil {
				return fmt.Errorf("YAML view %q: %w", view.Name, err)
			}
			views[i][j] = col
		}
	}
	for i, view := range file.Views {
		if view.Reset {
			err = r.Redeclare(typ, view.Name, views[i]...)
		} else {
			err = r.Declare(typ, view.Name, views[i]...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DeclareYAMLReader is like DeclareYAML but reads the document from reader.
func (r *Registry) DeclareYAMLReader(typ reflect.Type, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	return r.DeclareYAML(typ, data)
}
