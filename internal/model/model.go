// Package model contains the data structures produced by the analyzer and
// consumed by the generators.
package model

// ElementKind classifies a discovered code element.
type ElementKind string

const (
	KindModel      ElementKind = "model"
	KindSerializer ElementKind = "serializer"
	KindView       ElementKind = "view"
)

// RelationKind labels a relation field between two model elements.
type RelationKind string

const (
	RelationForeignKey RelationKind = "foreign_key"
	RelationOneToOne   RelationKind = "one_to_one"
	RelationManyToMany RelationKind = "many_to_many"
)

// Field describes one struct field of a model or serializer.
type Field struct {
	Name         string       `json:"name"`
	Column       string       `json:"column,omitempty"`
	Type         string       `json:"type"`
	Nullable     bool         `json:"nullable"`
	Unique       bool         `json:"unique"`
	HelpText     string       `json:"help_text,omitempty"`
	RelatedModel string       `json:"related_model,omitempty"`
	Relation     RelationKind `json:"relation,omitempty"`
}

// Method is a named method with its doc comment, attached to a model or a
// handler type.
type Method struct {
	Name      string `json:"name"`
	Signature string `json:"signature,omitempty"`
	Doc       string `json:"doc,omitempty"`
}

// ViewType distinguishes free handler functions from handler types whose
// methods serve requests.
type ViewType string

const (
	ViewFunction    ViewType = "handler_func"
	ViewHandlerType ViewType = "handler_type"
)

// Element is one discovered unit: a model struct, a serializer (DTO) struct
// or a view (handler). Elements are immutable once extracted; every analysis
// run rebuilds the full set.
type Element struct {
	Name      string      `json:"name"`
	Kind      ElementKind `json:"kind"`
	App       string      `json:"app"`
	File      string      `json:"file"`
	Line      int         `json:"line"`
	Doc       string      `json:"doc,omitempty"`
	Signature string      `json:"signature,omitempty"`

	// model
	TableName string  `json:"table_name,omitempty"`
	Fields    []Field `json:"fields,omitempty"`
	Methods   []Method `json:"methods,omitempty"`

	// serializer
	RelatedModel string `json:"related_model,omitempty"`

	// view
	ViewType  ViewType `json:"view_type,omitempty"`
	BaseTypes []string `json:"base_types,omitempty"`
}

// Relationship is a directed edge between two model elements, derived from a
// relation field on the source model.
type Relationship struct {
	From      string       `json:"from"`
	To        string       `json:"to"`
	FieldName string       `json:"field_name"`
	Kind      RelationKind `json:"kind"`
}

// Analysis is the complete normalized description of one target project.
// Element order follows app declaration order, then file name, then source
// order, so regenerated documents are diff-stable.
type Analysis struct {
	Title         string         `json:"title,omitempty"`
	ModulePath    string         `json:"module_path"`
	TargetPath    string         `json:"target_path"`
	SettingsFile  string         `json:"settings_file"`
	Apps          []string       `json:"apps"`
	Elements      []Element      `json:"elements"`
	Relationships []Relationship `json:"relationships"`
	Warnings      []string       `json:"warnings,omitempty"`
}

// ByKind returns the elements of one kind, preserving order.
func (a *Analysis) ByKind(kind ElementKind) []Element {
	var out []Element
	for _, e := range a.Elements {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Counts returns the number of models, serializers and views.
func (a *Analysis) Counts() (models, serializers, views int) {
	for _, e := range a.Elements {
		switch e.Kind {
		case KindModel:
			models++
		case KindSerializer:
			serializers++
		case KindView:
			views++
		}
	}
	return
}
