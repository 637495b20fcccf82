// Package analyzer walks a target Go project and extracts a normalized
// description of its persistence models, serializer (DTO) structs and HTTP
// handler views. It works on syntax alone (go/parser, no type checking) so a
// project that does not currently build can still be documented; a file that
// fails to parse is reported as a warning and skipped.
package analyzer

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/aiwiki/aiwiki/internal/model"
	"github.com/aiwiki/aiwiki/internal/settings"
	"github.com/aiwiki/aiwiki/pkg/logger"
)

// Analyzer performs a single analysis pass over one target project.
type Analyzer struct {
	Target   string
	Settings *settings.Settings

	fset     *token.FileSet
	warnings []string
}

func New(target string, st *settings.Settings) *Analyzer {
	return &Analyzer{
		Target:   target,
		Settings: st,
		fset:     token.NewFileSet(),
	}
}

// raw declarations collected in source order before classification

type rawStruct struct {
	app, file string
	line      int
	name      string
	doc       string
	spec      *ast.StructType
}

type rawFunc struct {
	app, file string
	line      int
	name      string
	doc       string
	recv      string
	decl      *ast.FuncDecl
}

// Analyze runs the full pass and returns the normalized description set.
// Apps are visited in declaration order, files within an app sorted by name,
// declarations in source order.
func (a *Analyzer) Analyze() (*model.Analysis, error) {
	var structs []rawStruct
	var funcs []rawFunc

	for _, app := range a.Settings.Apps {
		dir := filepath.Join(a.Target, filepath.FromSlash(app))
		entries, err := os.ReadDir(dir)
		if err != nil {
			a.warnf("app %s: %v", app, err)
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			n := e.Name()
			if e.IsDir() || !strings.HasSuffix(n, ".go") || strings.HasSuffix(n, "_test.go") {
				continue
			}
			names = append(names, n)
		}
		sort.Strings(names)

		for _, name := range names {
			path := filepath.Join(dir, name)
			f, err := parser.ParseFile(a.fset, path, nil, parser.ParseComments)
			if err != nil {
				a.warnf("parse %s: %v", filepath.Join(app, name), err)
				continue
			}
			a.collect(app, filepath.ToSlash(filepath.Join(app, name)), f, &structs, &funcs)
		}
	}

	an := &model.Analysis{
		Title:        a.Settings.Title,
		ModulePath:   a.Settings.ModulePath,
		TargetPath:   a.Target,
		SettingsFile: a.Settings.Path,
		Apps:         a.Settings.Apps,
		Warnings:     a.warnings,
	}
	a.classify(an, structs, funcs)
	return an, nil
}

func (a *Analyzer) warnf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	logger.Warnf("analyzer: %s", msg)
	a.warnings = append(a.warnings, msg)
}

func (a *Analyzer) collect(app, file string, f *ast.File, structs *[]rawStruct, funcs *[]rawFunc) {
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok || !ts.Name.IsExported() {
					continue
				}
				doc := ts.Doc
				if doc == nil {
					doc = d.Doc
				}
				*structs = append(*structs, rawStruct{
					app:  app,
					file: file,
					line: a.fset.Position(ts.Pos()).Line,
					name: ts.Name.Name,
					doc:  docText(doc),
					spec: st,
				})
			}
		case *ast.FuncDecl:
			if !d.Name.IsExported() {
				continue
			}
			*funcs = append(*funcs, rawFunc{
				app:  app,
				file: file,
				line: a.fset.Position(d.Pos()).Line,
				name: d.Name.Name,
				doc:  docText(d.Doc),
				recv: receiverType(d),
				decl: d,
			})
		}
	}
}

// classify turns the raw declarations into ordered, deduplicated elements.
// Uniqueness is by (app, kind, name); the first declaration wins.
func (a *Analyzer) classify(an *model.Analysis, structs []rawStruct, funcs []rawFunc) {
	modelNames := map[string]bool{}
	for _, rs := range structs {
		if isModelStruct(rs.spec) {
			modelNames[rs.name] = true
		}
	}

	seen := map[string]bool{}
	add := func(e model.Element) int {
		key := e.App + "/" + string(e.Kind) + "/" + e.Name
		if seen[key] {
			return -1
		}
		seen[key] = true
		an.Elements = append(an.Elements, e)
		return len(an.Elements) - 1
	}

	structByName := map[string]rawStruct{}
	for _, rs := range structs {
		if _, ok := structByName[rs.name]; !ok {
			structByName[rs.name] = rs
		}
		if isModelStruct(rs.spec) {
			fields, rels := a.modelFields(rs, modelNames)
			an.Relationships = append(an.Relationships, rels...)
			add(model.Element{
				Name:      rs.name,
				Kind:      model.KindModel,
				App:       rs.app,
				File:      rs.file,
				Line:      rs.line,
				Doc:       rs.doc,
				TableName: tableName(rs.name),
				Fields:    fields,
			})
			continue
		}
		if isSerializerStruct(rs.spec) {
			e := model.Element{
				Name:         rs.name,
				Kind:         model.KindSerializer,
				App:          rs.app,
				File:         rs.file,
				Line:         rs.line,
				Doc:          rs.doc,
				RelatedModel: relatedModel(rs.name, modelNames),
				Fields:       a.serializerFields(rs.spec),
			}
			if e.Doc == "" {
				e.Doc = describeSerializer(e)
			}
			add(e)
		}
	}

	// views: free handler functions, then handler types grouped by receiver
	handlerTypes := map[string]int{}
	for _, rf := range funcs {
		if !isHandlerFunc(rf.decl) {
			if rf.recv != "" && modelNames[rf.recv] {
				a.attachModelMethod(an, rf)
			}
			continue
		}
		if rf.recv == "" {
			add(model.Element{
				Name:      rf.name,
				Kind:      model.KindView,
				App:       rf.app,
				File:      rf.file,
				Line:      rf.line,
				Doc:       rf.doc,
				Signature: signature(rf.decl),
				ViewType:  model.ViewFunction,
			})
			continue
		}
		idx, ok := handlerTypes[rf.app+"/"+rf.recv]
		if !ok {
			e := model.Element{
				Name:     rf.recv,
				Kind:     model.KindView,
				App:      rf.app,
				File:     rf.file,
				Line:     rf.line,
				ViewType: model.ViewHandlerType,
			}
			if rs, found := structByName[rf.recv]; found {
				e.Doc = rs.doc
				e.File = rs.file
				e.Line = rs.line
				e.BaseTypes = embeddedTypes(rs.spec)
			}
			idx = add(e)
			if idx < 0 {
				continue
			}
			handlerTypes[rf.app+"/"+rf.recv] = idx
		}
		an.Elements[idx].Methods = append(an.Elements[idx].Methods, model.Method{
			Name:      rf.name,
			Signature: signature(rf.decl),
			Doc:       rf.doc,
		})
	}
}

// attachModelMethod records an exported non-handler method on a model element.
func (a *Analyzer) attachModelMethod(an *model.Analysis, rf rawFunc) {
	for i := range an.Elements {
		e := &an.Elements[i]
		if e.Kind == model.KindModel && e.App == rf.app && e.Name == rf.recv {
			e.Methods = append(e.Methods, model.Method{
				Name:      rf.name,
				Signature: signature(rf.decl),
				Doc:       rf.doc,
			})
			return
		}
	}
}

// modelFields extracts field metadata and relation edges for a model struct.
func (a *Analyzer) modelFields(rs rawStruct, modelNames map[string]bool) ([]model.Field, []model.Relationship) {
	var fields []model.Field
	var rels []model.Relationship

	for _, f := range rs.spec.Fields.List {
		tag := fieldTag(f)
		gormTag := tag.Get("gorm")

		names := fieldNames(f)
		for _, name := range names {
			if name == "" || !ast.IsExported(name) {
				continue
			}
			fld := model.Field{
				Name:     name,
				Column:   columnName(name, tag),
				Type:     exprString(f.Type),
				Nullable: isNullable(f.Type, gormTag),
				Unique:   strings.Contains(gormTag, "unique"),
				HelpText: fieldDoc(f),
			}

			related, kind := relation(f.Type, gormTag, modelNames)
			if related != "" {
				fld.RelatedModel = related
				fld.Relation = kind
				rels = append(rels, model.Relationship{
					From:      rs.name,
					To:        related,
					FieldName: name,
					Kind:      kind,
				})
			}
			fields = append(fields, fld)
		}
	}
	return fields, rels
}

// serializerFields extracts fields carrying a json tag, keyed by wire name.
func (a *Analyzer) serializerFields(st *ast.StructType) []model.Field {
	var fields []model.Field
	for _, f := range st.Fields.List {
		tag := fieldTag(f)
		wire := jsonName(tag)
		if wire == "-" {
			continue
		}
		for _, name := range fieldNames(f) {
			if !ast.IsExported(name) {
				continue
			}
			col := wire
			if col == "" {
				col = name
			}
			fields = append(fields, model.Field{
				Name:     name,
				Column:   col,
				Type:     exprString(f.Type),
				Nullable: isNullable(f.Type, ""),
				HelpText: fieldDoc(f),
			})
		}
	}
	return fields
}

// --- classification predicates ---

// isModelStruct reports whether a struct is a persistence model: it carries a
// gorm/db/bson field tag or embeds gorm.Model.
func isModelStruct(st *ast.StructType) bool {
	for _, f := range st.Fields.List {
		tag := fieldTag(f)
		if tag.Get("gorm") != "" || tag.Get("db") != "" || tag.Get("bson") != "" {
			return true
		}
		if len(f.Names) == 0 && exprString(f.Type) == "gorm.Model" {
			return true
		}
	}
	return false
}

// isSerializerStruct reports whether a non-model struct is a wire DTO: at
// least one exported field with a json tag.
func isSerializerStruct(st *ast.StructType) bool {
	for _, f := range st.Fields.List {
		if jsonName(fieldTag(f)) != "" && jsonName(fieldTag(f)) != "-" {
			for _, n := range f.Names {
				if n.IsExported() {
					return true
				}
			}
		}
	}
	return false
}

// isHandlerFunc reports whether a function serves HTTP: a *gin.Context
// parameter, or the http.ResponseWriter/*http.Request pair.
func isHandlerFunc(fn *ast.FuncDecl) bool {
	if fn.Type.Params == nil {
		return false
	}
	var hasWriter, hasRequest bool
	for _, p := range fn.Type.Params.List {
		switch exprString(p.Type) {
		case "*gin.Context":
			return true
		case "http.ResponseWriter":
			hasWriter = true
		case "*http.Request":
			hasRequest = true
		}
	}
	return hasWriter && hasRequest
}

// relation classifies a field as a relation edge to another model.
// Slices of a model type (or an explicit many2many tag) are many-to-many,
// pointers are foreign keys, embedded values are one-to-one.
func relation(expr ast.Expr, gormTag string, modelNames map[string]bool) (string, model.RelationKind) {
	base := baseTypeName(expr)
	if base == "" || !modelNames[base] {
		return "", ""
	}
	if strings.Contains(gormTag, "many2many:") {
		return base, model.RelationManyToMany
	}
	switch expr.(type) {
	case *ast.ArrayType:
		return base, model.RelationManyToMany
	case *ast.StarExpr:
		return base, model.RelationForeignKey
	case *ast.Ident, *ast.SelectorExpr:
		return base, model.RelationOneToOne
	}
	return "", ""
}

// --- small AST helpers ---

func docText(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

func fieldDoc(f *ast.Field) string {
	if f.Doc != nil {
		return strings.TrimSpace(f.Doc.Text())
	}
	if f.Comment != nil {
		return strings.TrimSpace(f.Comment.Text())
	}
	return ""
}

func fieldTag(f *ast.Field) reflect.StructTag {
	if f.Tag == nil {
		return ""
	}
	return reflect.StructTag(strings.Trim(f.Tag.Value, "`"))
}

// fieldNames returns the declared names, or the embedded type name for an
// anonymous field.
func fieldNames(f *ast.Field) []string {
	if len(f.Names) == 0 {
		if base := baseTypeName(f.Type); base != "" {
			return []string{base}
		}
		return nil
	}
	names := make([]string, 0, len(f.Names))
	for _, n := range f.Names {
		names = append(names, n.Name)
	}
	return names
}

func jsonName(tag reflect.StructTag) string {
	v := tag.Get("json")
	if v == "" {
		return ""
	}
	if i := strings.Index(v, ","); i >= 0 {
		v = v[:i]
	}
	return v
}

func columnName(field string, tag reflect.StructTag) string {
	for _, part := range strings.Split(tag.Get("gorm"), ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	if db := tag.Get("db"); db != "" && db != "-" {
		return db
	}
	return snakeCase(field)
}

func isNullable(expr ast.Expr, gormTag string) bool {
	if strings.Contains(gormTag, "not null") {
		return false
	}
	if _, ok := expr.(*ast.StarExpr); ok {
		return true
	}
	return strings.HasPrefix(baseTypeName(expr), "Null")
}

// baseTypeName strips pointers and slices and returns the final identifier
// of the element type.
func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return baseTypeName(t.X)
	case *ast.ArrayType:
		return baseTypeName(t.Elt)
	case *ast.SelectorExpr:
		return t.Sel.Name
	}
	return ""
}

// exprString renders a type expression back to source-like text.
func exprString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + exprString(t.X)
	case *ast.SelectorExpr:
		return exprString(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + exprString(t.Elt)
	case *ast.MapType:
		return "map[" + exprString(t.Key) + "]" + exprString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	case *ast.FuncType:
		return "func"
	case *ast.IndexExpr:
		return exprString(t.X) + "[" + exprString(t.Index) + "]"
	case *ast.Ellipsis:
		return "..." + exprString(t.Elt)
	case *ast.ChanType:
		return "chan " + exprString(t.Value)
	}
	return ""
}

func receiverType(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	name := exprString(fn.Recv.List[0].Type)
	return strings.TrimPrefix(name, "*")
}

func signature(fn *ast.FuncDecl) string {
	var b strings.Builder
	b.WriteString("func ")
	if fn.Recv != nil && len(fn.Recv.List) > 0 {
		b.WriteString("(" + exprString(fn.Recv.List[0].Type) + ") ")
	}
	b.WriteString(fn.Name.Name)
	b.WriteString("(")
	if fn.Type.Params != nil {
		for i, p := range fn.Type.Params.List {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(exprString(p.Type))
		}
	}
	b.WriteString(")")
	if fn.Type.Results != nil && len(fn.Type.Results.List) > 0 {
		parts := make([]string, 0, len(fn.Type.Results.List))
		for _, r := range fn.Type.Results.List {
			parts = append(parts, exprString(r.Type))
		}
		if len(parts) == 1 {
			b.WriteString(" " + parts[0])
		} else {
			b.WriteString(" (" + strings.Join(parts, ", ") + ")")
		}
	}
	return b.String()
}

func embeddedTypes(st *ast.StructType) []string {
	var out []string
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			if s := exprString(f.Type); s != "" {
				out = append(out, strings.TrimPrefix(s, "*"))
			}
		}
	}
	return out
}

// tableName derives the default table name for a model (snake case, plural),
// matching the usual ORM convention.
func tableName(name string) string {
	s := snakeCase(name)
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (name[i-1] < 'A' || name[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// relatedModel matches a serializer name against the known models by
// stripping common DTO affixes, mirroring what a serializer Meta declaration
// would provide.
func relatedModel(name string, modelNames map[string]bool) string {
	base := name
	for _, suffix := range []string{"Serializer", "Request", "Response", "DTO", "Input", "Output", "Payload", "Form"} {
		base = strings.TrimSuffix(base, suffix)
	}
	for _, prefix := range []string{"Create", "Update", "List", "Detail", "Delete", "New"} {
		if modelNames[base] {
			break
		}
		base = strings.TrimPrefix(base, prefix)
	}
	if modelNames[base] {
		return base
	}
	return ""
}

// describeSerializer synthesizes a description for a serializer without a
// doc comment, based on its name and field set.
func describeSerializer(e model.Element) string {
	var b strings.Builder
	lower := strings.ToLower(e.Name)
	switch {
	case strings.Contains(lower, "list"):
		b.WriteString("Serializer for listing ")
	case strings.Contains(lower, "detail"), strings.Contains(lower, "view"):
		b.WriteString("Serializer for detailed view of ")
	case strings.Contains(lower, "create"):
		b.WriteString("Serializer for creating ")
	case strings.Contains(lower, "update"):
		b.WriteString("Serializer for updating ")
	case strings.Contains(lower, "delete"):
		b.WriteString("Serializer for deleting ")
	default:
		b.WriteString("Serializer for ")
	}
	if e.RelatedModel != "" {
		b.WriteString(e.RelatedModel + " model data")
	} else {
		b.WriteString(e.Name + " data")
	}
	if n := len(e.Fields); n > 0 {
		names := make([]string, 0, 3)
		for i, f := range e.Fields {
			if i == 3 {
				break
			}
			names = append(names, f.Column)
		}
		if n <= 3 {
			fmt.Fprintf(&b, ". Includes fields: %s", strings.Join(names, ", "))
		} else {
			fmt.Fprintf(&b, ". Includes %d fields including %s", n, strings.Join(names, ", "))
		}
	}
	b.WriteString(".")
	return b.String()
}
