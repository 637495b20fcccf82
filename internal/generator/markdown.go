package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/aiwiki/aiwiki/internal/model"
)

// mdEscaper neutralizes markdown structural characters so arbitrary doc
// comments cannot break the surrounding document.
var mdEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"`", "\\`",
	"*", "\\*",
	"_", "\\_",
	"[", "\\[",
	"]", "\\]",
	"<", "&lt;",
	">", "&gt;",
	"#", "\\#",
	"|", "\\|",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// cell escapes text for use inside a table cell: structural characters plus
// newlines, which would otherwise terminate the row.
func cell(s string) string {
	return strings.Join(strings.Fields(escapeMarkdown(s)), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// RenderMarkdown produces the full markdown document: project overview, then
// Models / Serializers / Views sections grouped per app.
func RenderMarkdown(a *model.Analysis, now time.Time) string {
	var b strings.Builder

	title := a.Title
	if title == "" {
		title = a.ModulePath
	}
	fmt.Fprintf(&b, "# %s Documentation\n\n", escapeMarkdown(title))
	b.WriteString("## Project Overview\n\n")
	fmt.Fprintf(&b, "**Module:** `%s`  \n", a.ModulePath)
	fmt.Fprintf(&b, "**Project Path:** `%s`  \n", a.TargetPath)
	fmt.Fprintf(&b, "**Settings:** `%s`  \n", a.SettingsFile)
	fmt.Fprintf(&b, "**Total Apps:** %d\n\n", len(a.Apps))
	b.WriteString("### Declared Apps\n\n")
	for _, app := range a.Apps {
		fmt.Fprintf(&b, "- %s\n", escapeMarkdown(app))
	}
	b.WriteString("\n---\n\n")

	writeModels(&b, a)
	writeSerializers(&b, a)
	writeViews(&b, a)

	fmt.Fprintf(&b, "\n---\n\n*Documentation generated on %s*\n", now.Format("2006-01-02 15:04:05"))
	return b.String()
}

func writeModels(b *strings.Builder, a *model.Analysis) {
	models := a.ByKind(model.KindModel)
	b.WriteString("## Models\n\n")
	if len(models) == 0 {
		b.WriteString("No models found.\n\n---\n\n")
		return
	}
	apps, byApp := groupByApp(models)
	for _, app := range apps {
		fmt.Fprintf(b, "### %s Models\n\n", escapeMarkdown(app))
		for _, m := range byApp[app] {
			fmt.Fprintf(b, "#### %s\n\n", escapeMarkdown(m.Name))
			if m.Doc != "" {
				fmt.Fprintf(b, "%s\n\n", escapeMarkdown(m.Doc))
			}
			fmt.Fprintf(b, "**Table:** `%s`\n\n", m.TableName)

			if len(m.Fields) > 0 {
				b.WriteString("**Fields:**\n\n")
				b.WriteString("| Field | Column | Type | Null | Unique | Description |\n")
				b.WriteString("|-------|--------|------|------|--------|-------------|\n")
				for _, f := range m.Fields {
					fmt.Fprintf(b, "| %s | `%s` | `%s` | %s | %s | %s |\n",
						cell(f.Name), f.Column, f.Type, yesNo(f.Nullable), yesNo(f.Unique), cell(f.HelpText))
				}
				b.WriteString("\n")
			}

			var rels []model.Field
			for _, f := range m.Fields {
				if f.Relation != "" {
					rels = append(rels, f)
				}
			}
			if len(rels) > 0 {
				b.WriteString("**Relationships:**\n\n")
				for _, f := range rels {
					fmt.Fprintf(b, "- `%s` %s → `%s`\n", f.Name, relationLabel(f.Relation), f.RelatedModel)
				}
				b.WriteString("\n")
			}

			writeMethods(b, m.Methods)
			b.WriteString("---\n\n")
		}
	}
}

func writeSerializers(b *strings.Builder, a *model.Analysis) {
	serializers := a.ByKind(model.KindSerializer)
	b.WriteString("## Serializers\n\n")
	if len(serializers) == 0 {
		b.WriteString("No serializers found.\n\n---\n\n")
		return
	}
	apps, byApp := groupByApp(serializers)
	for _, app := range apps {
		fmt.Fprintf(b, "### %s Serializers\n\n", escapeMarkdown(app))
		for _, s := range byApp[app] {
			fmt.Fprintf(b, "#### %s\n\n", escapeMarkdown(s.Name))
			if s.Doc != "" {
				fmt.Fprintf(b, "%s\n\n", escapeMarkdown(s.Doc))
			}
			if s.RelatedModel != "" {
				fmt.Fprintf(b, "**Model:** `%s`\n\n", s.RelatedModel)
			}
			if len(s.Fields) > 0 {
				names := make([]string, 0, len(s.Fields))
				for _, f := range s.Fields {
					names = append(names, fmt.Sprintf("`%s`", f.Column))
				}
				fmt.Fprintf(b, "**Fields:** %s\n\n", strings.Join(names, ", "))
			}
			b.WriteString("---\n\n")
		}
	}
}

func writeViews(b *strings.Builder, a *model.Analysis) {
	views := a.ByKind(model.KindView)
	b.WriteString("## Views\n\n")
	if len(views) == 0 {
		b.WriteString("No views found.\n\n---\n\n")
		return
	}
	apps, byApp := groupByApp(views)
	for _, app := range apps {
		fmt.Fprintf(b, "### %s Views\n\n", escapeMarkdown(app))
		for _, v := range byApp[app] {
			fmt.Fprintf(b, "#### %s\n\n", escapeMarkdown(v.Name))
			if v.Doc != "" {
				fmt.Fprintf(b, "%s\n\n", escapeMarkdown(v.Doc))
			}
			fmt.Fprintf(b, "**Type:** %s\n\n", viewTypeLabel(v.ViewType))
			if v.Signature != "" {
				fmt.Fprintf(b, "**Signature:** `%s`\n\n", v.Signature)
			}
			if len(v.BaseTypes) > 0 {
				names := make([]string, 0, len(v.BaseTypes))
				for _, t := range v.BaseTypes {
					names = append(names, fmt.Sprintf("`%s`", t))
				}
				fmt.Fprintf(b, "**Base Types:** %s\n\n", strings.Join(names, ", "))
			}
			if v.ViewType == model.ViewHandlerType && len(v.Methods) > 0 {
				b.WriteString("**Handlers:**\n\n")
				for _, m := range v.Methods {
					doc := m.Doc
					if doc == "" {
						doc = "No description"
					}
					fmt.Fprintf(b, "- **%s**: %s\n", cell(m.Name), cell(doc))
				}
				b.WriteString("\n")
			}
			b.WriteString("---\n\n")
		}
	}
}

func writeMethods(b *strings.Builder, methods []model.Method) {
	if len(methods) == 0 {
		return
	}
	b.WriteString("**Methods:**\n\n")
	for _, m := range methods {
		doc := m.Doc
		if doc == "" {
			doc = "No description"
		}
		fmt.Fprintf(b, "- **%s**: %s\n", cell(m.Name), cell(doc))
	}
	b.WriteString("\n")
}
