package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.trai.ch/pack/internal/app"
	"go.trai.ch/pack/internal/core/domain"
	"go.trai.ch/pack/internal/tui"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [dir]",
		Short: "Bundle the project into the output directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			parallelism, _ := cmd.Flags().GetInt("parallelism")
			progress, _ := cmd.Flags().GetBool("progress")

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cwd = args[0]
				if !filepath.IsAbs(cwd) {
					cwd, err = filepath.Abs(cwd)
					if err != nil {
						return err
					}
				}
			}

			opts := app.BuildOptions{
				Cwd:         cwd,
				ConfigPath:  configPath,
				Parallelism: parallelism,
			}

			var result *domain.BuildResult
			run := func() error {
				var err error
				result, err = c.app.Build(cmd.Context(), opts)
				return err
			}
			if progress {
				err = c.withProgress(cmd.ErrOrStderr(), run)
			} else {
				err = run()
			}
			if err != nil {
				return err
			}

			c.logger.Info(summary(result))
			return nil
		},
	}
	cmd.Flags().IntP("parallelism", "p", 0, "Maximum number of concurrent transforms (0 uses every CPU)")
	cmd.Flags().Bool("progress", false, "Show live build progress")
	return cmd
}

// withProgress renders the telemetry stream while fn runs. The telemetry is
// closed when fn returns so the display can drain and exit.
func (c *CLI) withProgress(out io.Writer, fn func() error) error {
	source, ok := c.telemetry.(tui.TapeSource)
	if !ok {
		return fn()
	}

	program := tea.NewProgram(tui.NewModel(source), tea.WithInput(nil), tea.WithOutput(out))
	done := make(chan error, 1)
	go func() {
		_, err := program.Run()
		done <- err
	}()

	err := fn()
	_ = c.telemetry.Close()
	if uiErr := <-done; err == nil {
		err = uiErr
	}
	return err
}

func summary(r *domain.BuildResult) string {
	return fmt.Sprintf("bundled %d modules into %s (%d bytes, %s) in %s",
		r.Modules, r.ArtifactPath, r.ArtifactSize, r.Digest, r.Duration.Round(time.Millisecond))
}
