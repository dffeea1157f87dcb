package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aryankumar/batchrun/internal/output"
	"github.com/aryankumar/batchrun/internal/util"
	"github.com/aryankumar/batchrun/pkg/version"
)

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display detailed version information for the Batchrun CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd)
		},
	}

	return cmd
}

func runVersion(cmd *cobra.Command) error {
	info := version.Get()
	outputFormat, _ := cmd.Flags().GetString("output")
	noColor, _ := cmd.Flags().GetBool("no-color")

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return fmt.Errorf("%w: %v", util.ErrInvalidArgument, err)
	}

	if format == output.FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		return nil
	}

	formatter := output.NewFormatter(format, output.WithNoColor(noColor))
	if err := formatter.Format(cmd.OutOrStdout(), info); err != nil {
		return fmt.Errorf("failed to format version info: %w", err)
	}
	return nil
}
