// Command guic compiles declarative *.ui.html component templates into
// native C widget source. For every discovered component it writes a
// <name>.h with the struct definitions and public prototypes and a <name>.c
// with the lifecycle glue.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vcrobe/guic/compiler"
	"github.com/vcrobe/guic/emitter"
)

func main() {
	srcDir := flag.String("src", ".", "Root directory to scan for component templates.")
	outDir := flag.String("out", "", "Output directory for generated C files (defaults to each template's directory).")
	cfgPath := flag.String("config", "", "Path to a guic.yaml project configuration.")
	devMode := flag.Bool("dev", false, "Enable development mode diagnostics.")
	flag.Parse()

	opts := compiler.Options{DevMode: *devMode}
	if *cfgPath != "" {
		cfg, err := compiler.LoadConfig(*cfgPath)
		if err != nil {
			fatal(err)
		}
		opts = cfg.Options(*devMode)
		if cfg.Src != "" && *srcDir == "." {
			*srcDir = cfg.Src
		}
		if cfg.Out != "" && *outDir == "" {
			*outDir = cfg.Out
		}
	}

	components, err := compiler.Discover(*srcDir)
	if err != nil {
		fatal(err)
	}
	if len(components) == 0 {
		fmt.Println("Warning: no component templates (*.ui.html) were found.")
		return
	}
	fmt.Printf("Discovered %d component templates.\n", len(components))

	for _, comp := range components {
		source, err := os.ReadFile(comp.TemplatePath)
		if err != nil {
			fatal(err)
		}
		ct, err := compiler.ParseTemplate(comp.Name, string(source), comp.Schema)
		if err != nil {
			fatal(err)
		}
		out, err := compiler.CompileWithOptions(ct, nil, opts)
		if err != nil {
			fatal(fmt.Errorf("failed to compile %s: %w", comp.Name, err))
		}

		dir := *outDir
		if dir == "" {
			dir = filepath.Dir(comp.TemplatePath)
		}
		if err := writeOutput(dir, out); err != nil {
			fatal(err)
		}
		fmt.Printf("Compiled %s -> %s\n", comp.TemplatePath, filepath.Join(dir, strings.ToLower(out.Component)+".c"))
	}
}

// writeOutput writes the generated header and source files for one
// component.
func writeOutput(dir string, out *emitter.Output) error {
	base := strings.ToLower(out.Component)

	var h strings.Builder
	guard := fmt.Sprintf("GUIC_%s_H", strings.ToUpper(base))
	fmt.Fprintf(&h, "#ifndef %s\n#define %s\n\n", guard, guard)
	for _, inc := range out.Headers {
		fmt.Fprintf(&h, "#include <%s>\n", inc)
	}
	fmt.Fprintf(&h, "\n%s\n%s\n#endif\n", out.Types, out.Decls)
	if err := os.WriteFile(filepath.Join(dir, base+".h"), []byte(h.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", out.Component, err)
	}

	var c strings.Builder
	fmt.Fprintf(&c, "#include %q\n\n%s", base+".h", out.Source)
	if err := os.WriteFile(filepath.Join(dir, base+".c"), []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write source for %s: %w", out.Component, err)
	}
	return nil
}

// fatal prints the error, in red when stderr is a terminal, and exits.
func fatal(err error) {
	msg := err.Error()
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
