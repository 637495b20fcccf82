package generator

import (
	"fmt"
	"strings"

	"github.com/aiwiki/aiwiki/internal/model"
)

// simplified Go-type to diagram-type labels
var diagramTypes = map[string]string{
	"string":        "string",
	"int":           "int",
	"int8":          "int",
	"int16":         "int",
	"int32":         "int",
	"int64":         "bigint",
	"uint":          "int",
	"uint8":         "int",
	"uint16":        "int",
	"uint32":        "int",
	"uint64":        "bigint",
	"float32":       "float",
	"float64":       "float",
	"bool":          "boolean",
	"[]byte":        "bytes",
	"time.Time":     "datetime",
	"*time.Time":    "datetime",
	"time.Duration": "duration",
	"uuid.UUID":     "uuid",
}

func diagramType(f model.Field) string {
	switch f.Relation {
	case model.RelationForeignKey:
		return "fk"
	case model.RelationOneToOne:
		return "o2o"
	case model.RelationManyToMany:
		return "m2m"
	}
	t := strings.TrimPrefix(f.Type, "*")
	if s, ok := diagramTypes[t]; ok {
		return s
	}
	if s, ok := diagramTypes[f.Type]; ok {
		return s
	}
	// Mermaid attribute types must be bare words
	var b strings.Builder
	for _, r := range strings.ToLower(t) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "string"
	}
	return b.String()
}

// RenderERD produces the fenced Mermaid entity-relationship diagram: one
// entity per model, one edge per unique relation. Symmetric relations
// reported from both endpoints collapse to the first-encountered direction.
func RenderERD(a *model.Analysis) string {
	models := a.ByKind(model.KindModel)
	if len(models) == 0 {
		return "```mermaid\nerDiagram\n    NO_MODELS {\n        string message \"No models found\"\n    }\n```"
	}

	var b strings.Builder
	b.WriteString("```mermaid\nerDiagram\n")

	for _, m := range models {
		fmt.Fprintf(&b, "    %s {\n", m.Name)
		for _, f := range m.Fields {
			var constraints []string
			if f.Unique {
				constraints = append(constraints, "UK")
			}
			if !f.Nullable {
				constraints = append(constraints, "NOT NULL")
			}
			if len(constraints) > 0 {
				fmt.Fprintf(&b, "        %s %s \"%s\"\n", diagramType(f), f.Column, strings.Join(constraints, " "))
			} else {
				fmt.Fprintf(&b, "        %s %s\n", diagramType(f), f.Column)
			}
		}
		b.WriteString("    }\n")
	}

	for _, r := range dedupeEdges(a.Relationships) {
		switch r.Kind {
		case model.RelationForeignKey:
			fmt.Fprintf(&b, "    %s ||--o{ %s : %s\n", r.From, r.To, r.FieldName)
		case model.RelationOneToOne:
			fmt.Fprintf(&b, "    %s ||--|| %s : %s\n", r.From, r.To, r.FieldName)
		case model.RelationManyToMany:
			fmt.Fprintf(&b, "    %s }o--o{ %s : %s\n", r.From, r.To, r.FieldName)
		}
	}

	b.WriteString("```")
	return b.String()
}

// RenderDiagramDocument wraps the ERD in the diagram artifact document.
func RenderDiagramDocument(a *model.Analysis) string {
	return fmt.Sprintf("# Entity Relationship Diagram\n\n%s\n", RenderERD(a))
}

// dedupeEdges keeps one edge per unique (source, target, relation type)
// triple. Symmetric kinds (one-to-one, many-to-many) compare endpoints
// unordered, so a relation declared on both models renders once, in the
// direction encountered first.
func dedupeEdges(rels []model.Relationship) []model.Relationship {
	seen := map[string]bool{}
	var out []model.Relationship
	for _, r := range rels {
		from, to := r.From, r.To
		if r.Kind != model.RelationForeignKey && to < from {
			from, to = to, from
		}
		key := from + "|" + to + "|" + string(r.Kind)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
