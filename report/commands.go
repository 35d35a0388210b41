package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/DeafMist/guestpost-report/internal/pipeline"
)

const dateLayout = "2006-01-02"

var errNoMonths = errors.New("sheet has no dated rows")

func pairsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pairs <file>",
		Short: "Print the keyword and url pairs of a sheet",
		Long: "Print one line per keyword and target url found in the sheet.\n\n" +
			"--date takes precedence over --from/--to. A range needs both ends.",
		Args:         cobra.ExactArgs(1),
		RunE:         runPairs,
		SilenceUsage: true,
	}

	cmd.Flags().String("keyword", "", "Only pairs with this keyword")
	cmd.Flags().String("url", "", "Only pairs with this target url")
	cmd.Flags().String("date", "", "Only pairs published on this day (YYYY-MM-DD)")
	cmd.Flags().String("from", "", "Start of a publish date range (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End of a publish date range (YYYY-MM-DD)")

	return cmd
}

func runPairs(cmd *cobra.Command, args []string) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd, args[0])
	if err != nil {
		return err
	}

	pairs := filter.Apply(ds.Pairs)
	if jsonOutput(cmd) {
		return printJSON(cmd, pairs)
	}
	printPairs(cmd, pairs)
	return nil
}

func filterFromFlags(cmd *cobra.Command) (pipeline.Filter, error) {
	keyword, _ := cmd.Flags().GetString("keyword")
	url, _ := cmd.Flags().GetString("url")
	filter := pipeline.Filter{
		Keyword: strings.TrimSpace(keyword),
		URL:     strings.TrimSpace(url),
	}

	for name, dst := range map[string]**time.Time{"date": &filter.Date, "from": &filter.From, "to": &filter.To} {
		raw, _ := cmd.Flags().GetString(name)
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(dateLayout, raw)
		if err != nil {
			return pipeline.Filter{}, fmt.Errorf("invalid --%s %q: want YYYY-MM-DD", name, raw)
		}
		*dst = &ts
	}
	return filter, nil
}

func summaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print the figures of one month",
		Long: "Print total posts, unique keywords, unique urls and the urls that got no\n" +
			"guest post in the month. Defaults to the latest month in the sheet.",
		Args:         cobra.ExactArgs(1),
		RunE:         runSummary,
		SilenceUsage: true,
	}

	cmd.Flags().String("month", "", "Month to summarize (YYYY-MM)")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args[0])
	if err != nil {
		return err
	}

	month, _ := cmd.Flags().GetString("month")
	month = strings.TrimSpace(month)
	if month == "" {
		months := pipeline.Months(ds.Pairs)
		if len(months) == 0 {
			return errNoMonths
		}
		month = months[0]
	}

	summary := ds.Summary(month)
	if jsonOutput(cmd) {
		return printJSON(cmd, summary)
	}
	printSummary(cmd, summary)
	return nil
}

func compareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare the figures of two months",
		Long: "Place two months side by side. Without flags the two latest months are compared.\n\n" +
			"Examples:\n" +
			"  report compare campaign.xlsx --a 2024-03 --b 2024-04",
		Args:         cobra.ExactArgs(1),
		RunE:         runCompare,
		SilenceUsage: true,
	}

	cmd.Flags().String("a", "", "First month (YYYY-MM)")
	cmd.Flags().String("b", "", "Second month (YYYY-MM)")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args[0])
	if err != nil {
		return err
	}

	a, _ := cmd.Flags().GetString("a")
	b, _ := cmd.Flags().GetString("b")
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)

	months := pipeline.Months(ds.Pairs)
	if a == "" {
		if len(months) == 0 {
			return errNoMonths
		}
		a = months[0]
	}
	if b == "" {
		for _, m := range months {
			if m != a {
				b = m
				break
			}
		}
		if b == "" {
			return fmt.Errorf("only %s has dated rows, nothing to compare against", a)
		}
	}

	comparison, err := ds.Compare(a, b)
	if err != nil {
		return err
	}
	if jsonOutput(cmd) {
		return printJSON(cmd, comparison)
	}
	printComparison(cmd, comparison)
	return nil
}

func monthsCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "months <file>",
		Short:        "List the months present in a sheet, latest first",
		Args:         cobra.ExactArgs(1),
		RunE:         runMonths,
		SilenceUsage: true,
	}
}

func runMonths(cmd *cobra.Command, args []string) error {
	ds, err := loadDataset(cmd, args[0])
	if err != nil {
		return err
	}

	months := pipeline.Months(ds.Pairs)
	if jsonOutput(cmd) {
		return printJSON(cmd, months)
	}
	for _, m := range months {
		fmt.Fprintln(cmd.OutOrStdout(), m)
	}
	return nil
}
