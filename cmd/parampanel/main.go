// Command parampanel renders a control panel for a component schema:
// load an OpenAPI document, pick a component, and emit HTML or run an
// interactive terminal session over its attributes.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	parampanel "github.com/goliatone/go-parampanel"
	"github.com/goliatone/go-parampanel/pkg/jsoninit"
	"github.com/goliatone/go-parampanel/pkg/logger"
	"github.com/goliatone/go-parampanel/pkg/openapi"
)

var (
	sourceFlag   string
	component    string
	rendererName string
	outputPath   string
	title        string
	jsonInitPath string
	configPath   string
	debug        bool

	rootCtx context.Context
)

var rootCmd = &cobra.Command{
	Use:   "parampanel",
	Short: "Generate control panels from component schemas",
	Long: strings.TrimSpace(`
parampanel reads an OpenAPI document, converts a component schema into
a set of typed attributes, and renders an editable panel for them.

The html renderer emits a static page; tui walks through the
attributes prompt by prompt; live opens a full-screen property sheet.
Attributes can be bulk-initialized from JSON via the ` + jsoninit.DefaultVarname + `
environment variable or the --json-init flag.
`),
	Example: strings.TrimSpace(`
  parampanel --source api.yaml --component Synth
  parampanel --source api.yaml --component Synth --renderer tui
  parampanel --source https://example.com/api.json --component Synth -o panel.html
`),
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, "command", cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		return run(rootCtx)
	},
}

func run(ctx context.Context) error {
	lgr := logger.FromContext(ctx)

	fileCfg, err := loadFileConfig(configPath)
	if err != nil {
		return err
	}
	applyFileConfig(fileCfg)

	loader := openapi.NewLoader(openapi.WithHTTPClient(http.DefaultClient))
	data, err := loader.Load(ctx, parseSource(sourceFlag))
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	target, err := openapi.NewParser().Object(ctx, data, component)
	if err != nil {
		return fmt.Errorf("build target: %w", err)
	}

	initOptions := []jsoninit.Option{jsoninit.WithWarningLogger(*lgr)}
	if jsonInitPath != "" {
		initOptions = append(initOptions, jsoninit.WithJSONFile(jsonInitPath))
	}

	options := []parampanel.Option{parampanel.WithJSONInit(initOptions...)}
	if title != "" {
		options = append(options, parampanel.WithTitle(title))
	}
	if themeCfg := fileCfg.themeConfig(); themeCfg != nil {
		options = append(options, parampanel.WithThemeConfig(themeCfg))
	}

	out, err := parampanel.Generate(ctx, target, rendererName, options...)
	if err != nil {
		return fmt.Errorf("render %s: %w", rendererName, err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		lgr.Info("panel written", "path", outputPath, "renderer", rendererName)
		return nil
	}
	fmt.Println(string(out))
	return nil
}

func parseSource(raw string) openapi.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path)
}

func init() {
	rootCmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "OpenAPI document path or URL")
	rootCmd.Flags().StringVarP(&component, "component", "c", "", "component schema to render")
	rootCmd.Flags().StringVarP(&rendererName, "renderer", "r", "html", "renderer: html|tui|live")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (stdout if empty)")
	rootCmd.Flags().StringVar(&title, "title", "", "override the panel heading")
	rootCmd.Flags().StringVar(&jsonInitPath, "json-init", "", "JSON file with initial attribute values")
	rootCmd.Flags().StringVar(&configPath, "config-file", "", "path to a YAML config file (renderer defaults, theme)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	_ = rootCmd.MarkFlagRequired("source")
	_ = rootCmd.MarkFlagRequired("component")
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
