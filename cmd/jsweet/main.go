// Command jsweet is the command line front end of the transpiler. It loads
// the project configuration, collects the Java sources under the input
// directory and runs the transpilation pipeline, exiting non-zero when any
// error diagnostic was reported.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nagarajutv11/jsweet/internal/config"
	"github.com/nagarajutv11/jsweet/internal/diagnostics"
	"github.com/nagarajutv11/jsweet/internal/transpiler"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("jsweet", flag.ContinueOnError)
	var (
		configPath  = flags.String("config", "jsweet.yaml", "project configuration file")
		input       = flags.String("input", "", "input directory (overrides config)")
		tsout       = flags.String("tsout", "", "TypeScript output directory (overrides config)")
		dtsout      = flags.String("dtsout", "", "declaration (.d.ts) output directory (overrides config)")
		candiesJs   = flags.String("candiesJsOut", "", "directory for the candy JavaScript bundles (overrides config)")
		moduleKind  = flags.String("module", "", "module kind: none, commonjs, amd, umd, es2015 (overrides config)")
		classpath   = flags.String("classpath", "", "candy archives, separated by "+string(os.PathListSeparator)+" (overrides config)")
		encoding    = flags.String("encoding", "", "source file encoding (overrides config)")
		declaration = flags.Bool("declaration", false, "also emit TypeScript declaration (.d.ts) files")
		verbose     = flags.Bool("verbose", false, "turn on all levels of logging")
	)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if *input != "" {
		cfg.Input = *input
	}
	if *tsout != "" {
		cfg.TsOut = *tsout
	}
	if *dtsout != "" {
		cfg.DtsOut = *dtsout
	}
	if *candiesJs != "" {
		cfg.CandiesJsOut = *candiesJs
	}
	if *moduleKind != "" {
		cfg.Module = config.ModuleKind(*moduleKind)
	}
	if *classpath != "" {
		cfg.Classpath = filepath.SplitList(*classpath)
	}
	if *encoding != "" {
		cfg.Encoding = *encoding
	}
	if *declaration {
		cfg.Declarations = true
	}
	if *verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	handler := diagnostics.NewHandler(diagnostics.NewConsoleReporter())

	files, err := collectSources(cfg.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	t := transpiler.New(cfg, nil)
	if err := t.Transpile(handler, files); err != nil && handler.ErrorCount() == 0 {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	errors, warnings := handler.ErrorCount(), handler.WarningCount()
	switch {
	case errors > 0:
		fmt.Printf("transpilation failed with %d error(s) and %d warning(s)\n", errors, warnings)
		return 1
	case warnings > 0:
		fmt.Printf("transpilation completed with %d warning(s)\n", warnings)
	default:
		fmt.Println("transpilation successfully completed with no errors and no warnings")
	}
	return 0
}

// loadConfig reads the project file when it exists; a missing default file
// yields an empty config that flags must then fill in.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// collectSources gathers the .java files under root, recursively.
func collectSources(root string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, config.SourceFileExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting sources under %s: %w", root, err)
	}
	return files, nil
}
