package dataprocessing

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"custclean/pkg/contracts/domain"
)

// PrintColumns writes the column list
func PrintColumns(w io.Writer, t *domain.Table) {
	fmt.Fprintln(w, "Columns in the dataset:")
	fmt.Fprintf(w, "[%s]\n", strings.Join(quoteAll(t.Columns), ", "))
}

// PrintPreview writes the first n rows as a data frame
func PrintPreview(w io.Writer, t *domain.Table, n int) {
	head := t.Head(n)
	if head.Len() == 0 || len(head.Columns) == 0 {
		printRecords(w, head.Records())
		return
	}
	df := dataframe.LoadRecords(head.Records(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		printRecords(w, head.Records())
		return
	}
	fmt.Fprintln(w, df.String())
}

// PrintMissingCounts writes one line per column with its missing-cell count
func PrintMissingCounts(w io.Writer, title string, counts []domain.ColumnCount) {
	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range counts {
		fmt.Fprintf(tw, "%s\t%d\n", c.Column, c.Count)
	}
	tw.Flush()
}

// PrintSummary writes the per-column change counts of a run
func PrintSummary(w io.Writer, report *domain.CleaningReport) {
	fmt.Fprintf(w, "Rows loaded: %d, rows written: %d, duplicates dropped: %d\n",
		report.RowsLoaded, report.RowsWritten, report.DuplicatesDropped)
	counts := report.ChangeCounts()
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(w, "Changes:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range counts {
		if c.Operation == domain.OpDuplicateDrop {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Column, c.Operation, c.Count)
	}
	tw.Flush()
}

func printRecords(w io.Writer, records [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	tw.Flush()
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = "'" + n + "'"
	}
	return out
}
