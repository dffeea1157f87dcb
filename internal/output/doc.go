// Package output renders batch reports and listings for the batchrun CLI.
//
// Results of any value type are converted to a Report with NewReport, so one set
// of formatters serves every executor instantiation:
//
//	results, err := executor.Run(ctx, policy, jobs)
//	report := output.NewReport(policy, results, err, time.Since(start))
//	output.NewFormatter(output.FormatText).FormatReports(os.Stdout, []output.Report{report})
//
// # Formats
//
//   - text: one "SUCCESS <job>" or "FAILURE <job> -> <error>" line per result under
//     a "=== POLICY ===" banner, or "Stopped: <message>" for an aborted batch
//   - table: borderless tab-separated tables with a summary line
//   - json, yaml: the reports as an indented array
//
// Colors are enabled only for TTY writers and can be disabled with WithNoColor.
package output
