// Package generator assembles the three documentation artifacts from an
// analysis result. All generation is pure: same analysis in, byte-identical
// text out. The caller supplies the timestamp so a single run stamps every
// artifact identically.
package generator

import (
	"time"

	"github.com/aiwiki/aiwiki/internal/model"
)

// Artifacts holds the three generated documents.
type Artifacts struct {
	Markdown string
	Diagram  string
	HTML     string
}

// Generate renders all artifacts for one analysis.
func Generate(a *model.Analysis, now time.Time) Artifacts {
	return Artifacts{
		Markdown: RenderMarkdown(a, now),
		Diagram:  RenderDiagramDocument(a),
		HTML:     RenderHTML(a, now),
	}
}

// groupByApp buckets elements by app, keeping first-seen app order and
// element order inside each bucket.
func groupByApp(elems []model.Element) ([]string, map[string][]model.Element) {
	var apps []string
	byApp := map[string][]model.Element{}
	for _, e := range elems {
		if _, ok := byApp[e.App]; !ok {
			apps = append(apps, e.App)
		}
		byApp[e.App] = append(byApp[e.App], e)
	}
	return apps, byApp
}

func relationLabel(kind model.RelationKind) string {
	switch kind {
	case model.RelationForeignKey:
		return "ForeignKey"
	case model.RelationOneToOne:
		return "OneToOne"
	case model.RelationManyToMany:
		return "ManyToMany"
	}
	return string(kind)
}

func viewTypeLabel(vt model.ViewType) string {
	if vt == model.ViewHandlerType {
		return "Handler Type"
	}
	return "Handler Function"
}
