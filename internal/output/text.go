package output

import (
	"fmt"
	"io"
)

// TextFormatter prints one line per result:
//
//	SUCCESS Billing
//	FAILURE Fraud -> Fraud failed
//
// and "Stopped: <message>" for an aborted batch.
type TextFormatter struct {
	options *Options
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(opts *Options) *TextFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TextFormatter{options: opts}
}

// Format prints data with fmt, rendering Tabular data as a table
func (f *TextFormatter) Format(w io.Writer, data interface{}) error {
	if t, ok := data.(Tabular); ok {
		return NewTableFormatter(f.options).Format(w, t)
	}
	_, err := fmt.Fprintln(w, data)
	return err
}

// FormatReports prints each report under its title, separated by a blank line
func (f *TextFormatter) FormatReports(w io.Writer, reports []Report) error {
	colors := NewColorScheme(w, f.options.NoColor)

	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, colors.Header("%s", report.Title()))

		if report.Stopped != nil {
			fmt.Fprintln(w, colors.Warning("Stopped: %s", report.Stopped.Message))
			continue
		}

		for _, e := range report.Results {
			if _, err := fmt.Fprintln(w, f.line(e, colors)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *TextFormatter) line(e Entry, colors *ColorScheme) string {
	if e.Status == StatusSuccess {
		return colors.Success("SUCCESS") + " " + colors.Job("%s", e.Job)
	}
	return colors.Error("FAILURE") + " " + colors.Job("%s", e.Job) + " -> " + e.Error
}
