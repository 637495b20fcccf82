package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/aiwiki/aiwiki/internal/model"
)

// categoryStyle is the static icon/color lookup for category-based visual
// grouping in the HTML artifact.
type categoryStyle struct {
	Icon  string
	Color string
}

var categoryStyles = map[model.ElementKind]categoryStyle{
	model.KindModel:      {Icon: "🗃️", Color: "#007bff"},
	model.KindSerializer: {Icon: "🔄", Color: "#28a745"},
	model.KindView:       {Icon: "🌐", Color: "#6f42c1"},
}

var relationIcons = map[model.RelationKind]string{
	model.RelationForeignKey: "🔗",
	model.RelationOneToOne:   "🔐",
	model.RelationManyToMany: "🔀",
}

const htmlStyle = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto; padding: 20px;
  background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); min-height: 100vh; }
.container { background: white; border-radius: 15px; box-shadow: 0 20px 40px rgba(0,0,0,0.1);
  padding: 40px; margin: 20px 0; }
.header { text-align: center; margin-bottom: 40px; padding: 30px;
  background: linear-gradient(135deg, #4facfe 0%, #00f2fe 100%); border-radius: 15px; color: white; }
.header h1 { margin: 0; font-size: 2.5em; font-weight: 700; }
.section { margin: 40px 0; padding: 30px; background: #f8f9fa; border-radius: 10px; }
.section h2 { margin-top: 0; font-size: 2em; }
.section h3 { color: #495057; border-bottom: 2px solid #e9ecef; padding-bottom: 10px; }
.section h4 { color: #6c757d; margin-top: 25px; padding: 15px; background: white;
  border-radius: 8px; }
.info-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
  gap: 20px; margin: 20px 0; }
.info-card { background: white; padding: 20px; border-radius: 10px;
  box-shadow: 0 4px 6px rgba(0,0,0,0.1); border-left: 4px solid #17a2b8; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; background: white;
  border-radius: 8px; overflow: hidden; }
th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #e9ecef; }
th { background: #007bff; color: white; }
.badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 0.8em;
  font-weight: 600; margin: 2px; }
.badge-success { background: #d4edda; color: #155724; }
.badge-danger { background: #f8d7da; color: #721c24; }
.badge-info { background: #d1ecf1; color: #0c5460; }
.apps-list { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr));
  gap: 15px; margin: 20px 0; }
.app-item { background: white; padding: 15px; border-radius: 8px; text-align: center;
  border: 2px solid #e9ecef; }
.relationships { background: #e8f4fd; padding: 15px; border-radius: 8px; margin: 15px 0; }
.relationship-item { margin: 8px 0; padding: 8px; background: white; border-radius: 6px; }
.methods { background: #f0f8f0; padding: 15px; border-radius: 8px; margin: 15px 0; }
.method-item { background: white; padding: 10px; margin: 8px 0; border-radius: 6px;
  border-left: 3px solid #28a745; }
.doc { background: #e8f4fd; padding: 15px; border-radius: 8px; margin: 15px 0; }
.timestamp { text-align: center; margin-top: 40px; padding: 20px; background: #f8f9fa;
  border-radius: 10px; color: #6c757d; font-style: italic; }
code { background: #f8f9fa; padding: 2px 6px; border-radius: 4px;
  font-family: 'Monaco', 'Consolas', monospace; color: #e83e8c; }
`

func esc(s string) string { return html.EscapeString(s) }

// RenderHTML produces the styled HTML artifact: the same content as the
// markdown document with category-based visual grouping.
func RenderHTML(a *model.Analysis, now time.Time) string {
	var b strings.Builder

	title := a.Title
	if title == "" {
		title = a.ModulePath
	}
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s Documentation</title>
<style>%s</style>
</head>
<body>
<div class="container">
<div class="header"><h1>🤖 %s</h1><p>Auto-generated API Documentation</p></div>
`, esc(title), htmlStyle, esc(title))

	writeOverviewHTML(&b, a)
	writeModelsHTML(&b, a)
	writeSerializersHTML(&b, a)
	writeViewsHTML(&b, a)

	fmt.Fprintf(&b, `<div class="timestamp">📅 Documentation generated on %s</div>
</div>
</body>
</html>`, now.Format("2006-01-02 at 15:04:05"))
	return b.String()
}

func sectionHeader(b *strings.Builder, kind model.ElementKind, name string) {
	st := categoryStyles[kind]
	fmt.Fprintf(b, `<div class="section" style="border-left: 5px solid %s">
<h2 style="color: %s">%s %s</h2>
`, st.Color, st.Color, st.Icon, name)
}

func writeOverviewHTML(b *strings.Builder, a *model.Analysis) {
	b.WriteString(`<div class="section" style="border-left: 5px solid #17a2b8"><h2>📋 Project Overview</h2><div class="info-grid">`)
	fmt.Fprintf(b, `<div class="info-card"><strong>📦 Module</strong><code>%s</code></div>`, esc(a.ModulePath))
	fmt.Fprintf(b, `<div class="info-card"><strong>📁 Project Path</strong><code>%s</code></div>`, esc(a.TargetPath))
	fmt.Fprintf(b, `<div class="info-card"><strong>⚙️ Settings</strong><code>%s</code></div>`, esc(a.SettingsFile))
	fmt.Fprintf(b, `<div class="info-card"><strong>📱 Total Apps</strong><span style="font-size: 1.5em; font-weight: bold;">%d</span></div>`, len(a.Apps))
	b.WriteString(`</div><h3>Declared Apps</h3><div class="apps-list">`)
	for _, app := range a.Apps {
		fmt.Fprintf(b, `<div class="app-item"><strong>%s</strong></div>`, esc(app))
	}
	b.WriteString("</div></div>\n")
}

func writeModelsHTML(b *strings.Builder, a *model.Analysis) {
	models := a.ByKind(model.KindModel)
	sectionHeader(b, model.KindModel, "Models")
	if len(models) == 0 {
		b.WriteString("<p><em>No models found in this project.</em></p></div>\n")
		return
	}
	apps, byApp := groupByApp(models)
	for _, app := range apps {
		fmt.Fprintf(b, "<h3>📦 %s</h3>\n", esc(app))
		for _, m := range byApp[app] {
			fmt.Fprintf(b, "<h4>🏷️ %s</h4>\n", esc(m.Name))
			if m.Doc != "" {
				fmt.Fprintf(b, `<p class="doc"><strong>Description:</strong> %s</p>`+"\n", esc(m.Doc))
			}
			fmt.Fprintf(b, `<div class="info-card"><strong>🗂️ Database Table</strong><code>%s</code></div>`+"\n", esc(m.TableName))

			if len(m.Fields) > 0 {
				b.WriteString("<table><thead><tr><th>Field</th><th>Column</th><th>Type</th><th>Constraints</th><th>Description</th></tr></thead><tbody>\n")
				for _, f := range m.Fields {
					var constraints []string
					if !f.Nullable {
						constraints = append(constraints, `<span class="badge badge-danger">NOT NULL</span>`)
					}
					if f.Unique {
						constraints = append(constraints, `<span class="badge badge-info">UNIQUE</span>`)
					}
					cons := strings.Join(constraints, " ")
					if cons == "" {
						cons = `<span class="badge badge-success">None</span>`
					}
					help := esc(f.HelpText)
					if help == "" {
						help = "<em>No description</em>"
					}
					fmt.Fprintf(b, "<tr><td><strong>%s</strong></td><td><code>%s</code></td><td><code>%s</code></td><td>%s</td><td>%s</td></tr>\n",
						esc(f.Name), esc(f.Column), esc(f.Type), cons, help)
				}
				b.WriteString("</tbody></table>\n")
			}

			var rels []model.Field
			for _, f := range m.Fields {
				if f.Relation != "" {
					rels = append(rels, f)
				}
			}
			if len(rels) > 0 {
				b.WriteString(`<div class="relationships"><strong>🔗 Relationships</strong>` + "\n")
				for _, f := range rels {
					fmt.Fprintf(b, `<div class="relationship-item">%s <strong>%s</strong> <span class="badge badge-info">%s</span> → <code>%s</code></div>`+"\n",
						relationIcons[f.Relation], esc(f.Name), relationLabel(f.Relation), esc(f.RelatedModel))
				}
				b.WriteString("</div>\n")
			}

			writeMethodsHTML(b, "⚙️ Methods", m.Methods)
		}
	}
	b.WriteString("</div>\n")
}

func writeSerializersHTML(b *strings.Builder, a *model.Analysis) {
	serializers := a.ByKind(model.KindSerializer)
	sectionHeader(b, model.KindSerializer, "Serializers")
	if len(serializers) == 0 {
		b.WriteString("<p><em>No serializers found in this project.</em></p></div>\n")
		return
	}
	apps, byApp := groupByApp(serializers)
	for _, app := range apps {
		fmt.Fprintf(b, "<h3>📦 %s</h3>\n", esc(app))
		for _, s := range byApp[app] {
			fmt.Fprintf(b, "<h4>🔄 %s</h4>\n", esc(s.Name))
			if s.Doc != "" {
				fmt.Fprintf(b, `<p class="doc"><strong>Description:</strong> %s</p>`+"\n", esc(s.Doc))
			}
			if s.RelatedModel != "" {
				fmt.Fprintf(b, `<div class="info-card"><strong>🗃️ Related Model</strong><code>%s</code></div>`+"\n", esc(s.RelatedModel))
			}
			if len(s.Fields) > 0 {
				b.WriteString("<table><thead><tr><th>Field</th><th>Wire Name</th><th>Type</th></tr></thead><tbody>\n")
				for _, f := range s.Fields {
					fmt.Fprintf(b, "<tr><td><strong>%s</strong></td><td><code>%s</code></td><td><code>%s</code></td></tr>\n",
						esc(f.Name), esc(f.Column), esc(f.Type))
				}
				b.WriteString("</tbody></table>\n")
			}
		}
	}
	b.WriteString("</div>\n")
}

func writeViewsHTML(b *strings.Builder, a *model.Analysis) {
	views := a.ByKind(model.KindView)
	sectionHeader(b, model.KindView, "Views")
	if len(views) == 0 {
		b.WriteString("<p><em>No views found in this project.</em></p></div>\n")
		return
	}
	apps, byApp := groupByApp(views)
	for _, app := range apps {
		fmt.Fprintf(b, "<h3>📦 %s</h3>\n", esc(app))
		for _, v := range byApp[app] {
			fmt.Fprintf(b, "<h4>🌐 %s <span class=\"badge badge-info\">%s</span></h4>\n", esc(v.Name), viewTypeLabel(v.ViewType))
			if v.Doc != "" {
				fmt.Fprintf(b, `<p class="doc"><strong>Description:</strong> %s</p>`+"\n", esc(v.Doc))
			}
			if v.Signature != "" {
				fmt.Fprintf(b, "<p><code>%s</code></p>\n", esc(v.Signature))
			}
			if len(v.BaseTypes) > 0 {
				parts := make([]string, 0, len(v.BaseTypes))
				for _, t := range v.BaseTypes {
					parts = append(parts, "<code>"+esc(t)+"</code>")
				}
				fmt.Fprintf(b, "<p><strong>Base Types:</strong> %s</p>\n", strings.Join(parts, ", "))
			}
			writeMethodsHTML(b, "🔧 Handlers", v.Methods)
		}
	}
	b.WriteString("</div>\n")
}

func writeMethodsHTML(b *strings.Builder, title string, methods []model.Method) {
	if len(methods) == 0 {
		return
	}
	fmt.Fprintf(b, `<div class="methods"><strong>%s</strong>`+"\n", title)
	for _, m := range methods {
		doc := esc(m.Doc)
		if doc == "" {
			doc = "<em>No description available</em>"
		}
		fmt.Fprintf(b, `<div class="method-item"><strong>%s()</strong><p style="margin: 5px 0 0 0; color: #6c757d;">%s</p></div>`+"\n", esc(m.Name), doc)
	}
	b.WriteString("</div>\n")
}
