package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/typst-community/dev-builds/pkg/catalog"
	"github.com/typst-community/dev-builds/pkg/config"
	"github.com/typst-community/dev-builds/pkg/release"
	"github.com/typst-community/dev-builds/pkg/render"
)

// catalogOptions holds the flags of the catalog command. Only flags set on
// the command line override the configuration.
type catalogOptions struct {
	output   string
	template string
	root     string
	source   string
	limit    int
	noRender bool
}

func (c *CLI) catalogCommand() *cobra.Command {
	var opts catalogOptions

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build catalog.json and the release page",
		Long: `Fetch the published releases, group them by artifact, sort each group newest
first and write <output>/catalog.json. The page is then rendered to
<output>/index.html with typst, unless --no-render is given.

The release that triggered the run (RELEASE_EVENT) is included even when the
hosting API does not list it yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runCatalog(cmd, cfg, opts.noRender)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutputDir, "output directory")
	cmd.Flags().StringVar(&opts.template, "template", config.DefaultTemplate, "page template, relative to --root")
	cmd.Flags().StringVar(&opts.root, "root", config.DefaultRoot, "project root passed to typst")
	cmd.Flags().StringVar(&opts.source, "source", config.SourceGH, "release source: gh or api")
	cmd.Flags().IntVar(&opts.limit, "limit", config.DefaultLimit, "maximum number of releases to fetch")
	cmd.Flags().BoolVar(&opts.noRender, "no-render", false, "write catalog.json only")

	cmd.AddCommand(c.catalogShowCommand())
	return cmd
}

func (o *catalogOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("template") {
		cfg.Template = o.template
	}
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("source") {
		cfg.Source = o.source
	}
	if flags.Changed("limit") {
		cfg.Limit = o.limit
	}
}

func (c *CLI) runCatalog(cmd *cobra.Command, cfg *config.Config, noRender bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	event, err := release.ParseEvent(cfg.ReleaseEvent)
	if err != nil {
		return err
	}
	lister, err := c.newLister(cfg)
	if err != nil {
		return err
	}
	logger.Debug("listing releases", "source", cfg.Source, "repository", cfg.Repository, "limit", cfg.Limit)

	prog := newProgress(logger)
	releases, err := release.NewFetcher(lister, event, logger).Fetch(ctx)
	if err != nil {
		return err
	}
	prog.done("Fetched releases", "count", len(releases))

	prog = newProgress(logger)
	cat, err := catalog.NewBuilder(cfg.URLPrefix(), logger).Build(releases)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.OutputDir, catalog.FileName)
	if err := catalog.ExportJSON(cat, path); err != nil {
		return err
	}
	prog.done("Wrote catalog", "path", path, "entries", cat.Len())

	var page string
	if !noRender {
		prog = newProgress(logger)
		page, err = render.NewTypst(c.runner(""), cfg.Root, cfg.Template, logger).Render(ctx, cfg.OutputDir)
		if err != nil {
			return err
		}
		prog.done("Rendered page", "path", page)
	}

	printCatalogSummary(c.Out, cat)
	printSuccess(c.Out, "Catalog written")
	printFile(c.Out, path)
	if page != "" {
		printFile(c.Out, page)
	} else {
		printWarning(c.Out, "Page not rendered")
	}
	return nil
}

func (c *CLI) catalogShowCommand() *cobra.Command {
	var artifact string

	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Summarize an existing catalog.json",
		Long: `Read a catalog written by "devbuilds catalog" and print the number of releases
and the newest revision of each artifact. With --artifact, list every release
of that artifact instead.

The path defaults to catalog.json in the configured output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.catalogPath(args)
			if err != nil {
				return err
			}
			cat, err := catalog.ImportJSON(path)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("read catalog", "path", path, "version", cat.Version)

			if artifact != "" {
				a, err := catalog.ParseArtifact(artifact)
				if err != nil {
					return err
				}
				printEntries(c.Out, a, cat.Artifacts[a])
				return nil
			}

			printInfo(c.Out, "%s", path)
			printCatalogSummary(c.Out, cat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&artifact, "artifact", "a", "", "list the releases of one artifact")
	return cmd
}

func (c *CLI) catalogPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg.OutputDir, catalog.FileName), nil
}
