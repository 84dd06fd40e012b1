package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typst-community/dev-builds/pkg/config"
	"github.com/typst-community/dev-builds/pkg/revision"
)

func (c *CLI) tagCommand() *cobra.Command {
	var (
		backend string
		dir     string
	)

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Print the release tag for the checkout",
		Long: `Print the tag under which a build of the checkout in --dir is published:
"<workflow>-<revision>". The revision is the exact tag of HEAD when there is
one, otherwise "<branch>.<commit date in UTC>.<short commit>".

The workflow name comes from GITHUB_WORKFLOW_REF and is "unknown" outside CI.`,
		Example: `  devbuilds tag --dir typst
  devbuilds tag --backend go-git`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("backend") {
				cfg.GitBackend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			repo, err := c.newRepository(cfg.GitBackend, dir)
			if err != nil {
				return err
			}
			workflow := revision.WorkflowName(cfg.WorkflowRef)
			logger := loggerFromContext(cmd.Context())
			logger.Debug("computing tag", "backend", cfg.GitBackend, "dir", dir, "workflow", workflow)

			tag, err := revision.NewGenerator(repo, workflow).Tag(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, tag)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", config.BackendExec, "git backend: exec or go-git")
	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "repository directory")
	return cmd
}

func (c *CLI) newRepository(backend, dir string) (revision.Repository, error) {
	if backend == config.BackendGoGit {
		return revision.OpenGoGit(dir)
	}
	return revision.NewExecGit(c.runner(dir)), nil
}
