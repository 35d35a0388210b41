package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeafMist/guestpost-report/internal/models"
)

func jsonOutput(cmd *cobra.Command) bool {
	on, _ := cmd.Flags().GetBool("json")
	return on
}

// printJSON encodes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPairs(cmd *cobra.Command, pairs []models.KeywordURLPair) {
	if len(pairs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pairs match.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ROW\tTITLE\tPUBLISHED\tKEYWORD\tURL")
	for _, p := range pairs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.Row+1, p.Title, formatDay(p.PublishDate), p.Keyword, p.URL)
	}
	w.Flush()
}

func printSummary(cmd *cobra.Command, s models.Summary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Month:\t%s\n", s.Month)
	fmt.Fprintf(w, "  Total posts:\t%d\n", s.TotalPosts)
	fmt.Fprintf(w, "  Unique keywords:\t%d\n", s.UniqueKeywords)
	fmt.Fprintf(w, "  Unique URLs:\t%d\n", s.UniqueURLs)
	w.Flush()

	out := cmd.OutOrStdout()
	if len(s.UnusedURLs) == 0 {
		fmt.Fprintln(out, "\nAll URLs received guest posts!")
		return
	}
	fmt.Fprintf(out, "\nURLs without guest posts in %s:\n", s.Month)
	for _, u := range s.UnusedURLs {
		fmt.Fprintf(out, "  %s\n", u)
	}
}

func printComparison(cmd *cobra.Command, c models.Comparison) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "MONTH\tTOTAL POSTS\tUNIQUE KEYWORDS\tUNIQUE URLS")
	for _, row := range c.Rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", row.Month, row.TotalPosts, row.UniqueKeywords, row.UniqueURLs)
	}
	w.Flush()
}

func formatDay(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.Format(dateLayout)
}
