package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aryankumar/batchrun/internal/jobs"
	"github.com/aryankumar/batchrun/internal/output"
)

// jobView is the display form of a job spec
type jobView struct {
	Name        string  `json:"name" yaml:"name"`
	MinDelay    string  `json:"minDelay" yaml:"minDelay"`
	MaxDelay    string  `json:"maxDelay" yaml:"maxDelay"`
	FailureRate float64 `json:"failureRate" yaml:"failureRate"`
	Value       string  `json:"value" yaml:"value"`
}

type jobList []jobView

func (jobList) Headers() []string {
	return []string{"NAME", "MIN DELAY", "MAX DELAY", "FAILURE RATE", "VALUE"}
}

func (l jobList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, j := range l {
		rows[i] = []string{j.Name, j.MinDelay, j.MaxDelay, strconv.FormatFloat(j.FailureRate, 'f', -1, 64), j.Value}
	}
	return rows
}

func newJobList(specs []jobs.Spec) jobList {
	list := make(jobList, len(specs))
	for i, s := range specs {
		list[i] = jobView{
			Name:        s.Name,
			MinDelay:    s.MinDelay.String(),
			MaxDelay:    s.MaxDelay.String(),
			FailureRate: s.FailureRate,
			Value:       s.Value,
		}
	}
	return list
}

func newJobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "jobs",
		Aliases: []string{"ls"},
		Short:   "List the jobs a run would execute",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(cfg.Defaults.OutputFormat)
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(format, output.WithNoColor(cfg.Defaults.NoColor))
			if err := formatter.Format(cmd.OutOrStdout(), newJobList(cfg.JobSpecs())); err != nil {
				return fmt.Errorf("failed to format jobs: %w", err)
			}
			return nil
		},
	}
}
