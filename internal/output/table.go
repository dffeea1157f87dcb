package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter formats output as borderless, tab-separated tables
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case Tabular:
		table := f.createTable(w)
		f.setHeaders(table, v.Headers(), NewColorScheme(w, f.options.NoColor))
		table.AppendBulk(v.Rows())
		table.Render()
		return nil
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}

// FormatReports outputs one table per batch with a summary line below it
func (f *TableFormatter) FormatReports(w io.Writer, reports []Report) error {
	colors := NewColorScheme(w, f.options.NoColor)

	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, colors.Header("POLICY: %s", report.Policy))

		if report.Stopped != nil {
			f.printStopped(w, report.Stopped, colors)
			continue
		}

		if len(report.Results) == 0 {
			fmt.Fprintln(w, "No results")
			continue
		}

		headers := []string{"#", "JOB", "STATUS"}
		if f.options.Wide {
			headers = append(headers, "DETAIL")
		}

		table := f.createTable(w)
		f.setHeaders(table, headers, colors)
		for _, e := range report.Results {
			table.Append(f.formatEntryRow(e, colors))
		}
		table.Render()

		f.printSummary(w, report, colors)
	}
	return nil
}

func (f *TableFormatter) formatEntryRow(e Entry, colors *ColorScheme) []string {
	failed := e.Status == StatusFailure

	row := []string{
		strconv.Itoa(e.Index),
		colors.Job("%s", e.Job),
		colors.StatusColor(failed)("%s", e.Status),
	}

	if f.options.Wide {
		detail := e.Value
		if failed {
			detail = e.Error
		}
		if len(detail) > 50 {
			detail = detail[:47] + "..."
		}
		row = append(row, detail)
	}

	return row
}

func (f *TableFormatter) setHeaders(table *tablewriter.Table, headers []string, colors *ColorScheme) {
	if f.options.NoHeaders {
		return
	}
	if colors.Disabled {
		table.SetHeader(headers)
		return
	}

	colored := make([]string, len(headers))
	for i, h := range headers {
		colored[i] = colors.Header("%s", h)
	}
	table.SetHeader(colored)
}

// createTable creates a new table without borders, padded with tabs
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	return table
}

func (f *TableFormatter) printStopped(w io.Writer, abort *Abort, colors *ColorScheme) {
	fmt.Fprintln(w, colors.Warning("Stopped: %s", abort.Message))
	if abort.BatchID != "" {
		fmt.Fprintf(w, "Batch: %s\n", abort.BatchID)
	}
}

func (f *TableFormatter) printSummary(w io.Writer, report Report, colors *ColorScheme) {
	summary := report.Summary

	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Summary: ")

	successText := colors.Success("%d successful", summary.Successful)

	failedText := fmt.Sprintf("%d failed", summary.Failed)
	if summary.Failed > 0 {
		failedText = colors.Error("%s", failedText)
	}

	fmt.Fprintf(w, "%s, %s, took %s\n", successText, failedText, report.Duration)
}
