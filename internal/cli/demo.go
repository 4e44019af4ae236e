package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/waiteperspectives/eml/pkg/errors"
	emlio "github.com/waiteperspectives/eml/pkg/io"
)

// demoCommand creates the demo command, which writes the built-in
// customer onboarding model as YAML.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo [outfile|-]",
		Short: "Write the demo event model",
		Example: `  eml demo demo.yaml
  eml demo | eml compile > demo.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := emlio.DemoYAML()
			if err != nil {
				return err
			}

			if len(args) == 0 || args[0] == stdio {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			out := args[0]
			if err := errors.ValidateOutputPath(out); err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", out)
			}
			printSuccess("Wrote demo model")
			printFile(out)
			return nil
		},
	}
}
