package compiler

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/vcrobe/guic/trace"
)

// templateSuffix marks component template files discovered next to their
// state definitions.
const templateSuffix = ".ui.html"

// SchemaField is one persistent state slot derived from a component's state
// struct.
type SchemaField struct {
	Name    string
	Kind    trace.Kind
	Default any
}

// StateSchema is a component's ordered state layout.
type StateSchema []SchemaField

// ComponentSource is one discovered component template and its state schema.
type ComponentSource struct {
	TemplatePath string
	Name         string
	Package      string
	Schema       StateSchema
}

// Discover finds all *.ui.html component templates under rootDir and
// inspects the adjacent Go file for a <Name>State struct describing the
// component's state slots.
func Discover(rootDir string) ([]ComponentSource, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  rootDir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var components []ComponentSource
	for _, pkg := range pkgs {
		if len(pkg.GoFiles) == 0 {
			continue
		}
		packageDir := filepath.Dir(pkg.GoFiles[0])

		files, err := os.ReadDir(packageDir)
		if err != nil {
			fmt.Printf("Warning: could not read directory %s: %v\n", packageDir, err)
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), templateSuffix) {
				continue
			}
			name := strings.TrimSuffix(file.Name(), templateSuffix)
			goFile := filepath.Join(packageDir, strings.ToLower(name)+".go")

			schema, err := inspectStateStruct(goFile, name)
			if err != nil {
				fmt.Printf("Warning: could not inspect %s: %v\n", goFile, err)
			}
			components = append(components, ComponentSource{
				TemplatePath: filepath.Join(packageDir, file.Name()),
				Name:         name,
				Package:      pkg.Name,
				Schema:       schema,
			})
		}
	}
	return components, nil
}

// inspectStateStruct parses the component's Go file and extracts the state
// schema from its <Name>State struct, honoring `default:"..."` field tags.
func inspectStateStruct(goFilePath, componentName string) (StateSchema, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, goFilePath, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	wanted := componentName + "State"
	var schema StateSchema
	ast.Inspect(node, func(n ast.Node) bool {
		spec, ok := n.(*ast.TypeSpec)
		if !ok || spec.Name.Name != wanted {
			return true
		}
		st, ok := spec.Type.(*ast.StructType)
		if !ok {
			return true
		}
		for _, field := range st.Fields.List {
			ident, ok := field.Type.(*ast.Ident)
			if !ok {
				continue
			}
			kind, ok := goTypeKind(ident.Name)
			if !ok {
				continue
			}
			tag := ""
			if field.Tag != nil {
				unquoted, err := strconv.Unquote(field.Tag.Value)
				if err == nil {
					tag = reflect.StructTag(unquoted).Get("default")
				}
			}
			for _, fname := range field.Names {
				schema = append(schema, SchemaField{
					Name:    strings.ToLower(fname.Name),
					Kind:    kind,
					Default: defaultValue(kind, tag),
				})
			}
		}
		return false
	})
	if schema == nil {
		return nil, fmt.Errorf("no %s struct found in %s", wanted, goFilePath)
	}
	return schema, nil
}

func goTypeKind(name string) (trace.Kind, bool) {
	switch name {
	case "string":
		return trace.KindString, true
	case "int", "int64":
		return trace.KindInt, true
	case "uint", "uint64":
		return trace.KindSize, true
	case "float64":
		return trace.KindDouble, true
	case "bool":
		return trace.KindBool, true
	default:
		return 0, false
	}
}

// defaultValue resolves a state slot's initializer from its field tag, or
// the kind's zero value.
func defaultValue(kind trace.Kind, tag string) any {
	switch kind {
	case trace.KindString:
		return tag
	case trace.KindInt:
		if tag != "" {
			if n, err := strconv.Atoi(tag); err == nil {
				return n
			}
		}
		return 0
	case trace.KindSize:
		if tag != "" {
			if n, err := strconv.ParseUint(tag, 10, 64); err == nil {
				return n
			}
		}
		return uint64(0)
	case trace.KindDouble:
		if tag != "" {
			if f, err := strconv.ParseFloat(tag, 64); err == nil {
				return f
			}
		}
		return 0.0
	case trace.KindBool:
		return tag == "true"
	default:
		return nil
	}
}
