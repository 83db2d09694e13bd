package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/HerbHall/collegefinder/internal/match"
	"github.com/HerbHall/collegefinder/pkg/college"
)

func runSearch(args []string) {
	if code := search(args, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// search runs the search command and returns its exit status. Deferred
// cleanup runs before the caller exits.
func search(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := addClientFlags(fs)
	text := fs.String("q", "", "match name or location (case-insensitive)")
	location := fs.String("location", "", "match location (case-insensitive)")
	budget := fs.String("budget", "", "budget bracket label (see --brackets)")
	var streams, categories multiFlag
	fs.Var(&streams, "stream", "stream or course name (repeatable)")
	fs.Var(&categories, "category", "course category UG, PG, or Engineering (repeatable)")
	asJSON := fs.Bool("json", false, "print matches as JSON")
	showBrackets := fs.Bool("brackets", false, "list budget brackets and exit")

	if err := fs.Parse(args); err != nil {
		return parseStatus(err)
	}

	client, logger, err := cf.build()
	if err != nil {
		fmt.Fprintf(stderr, "search: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state := college.FilterState{
		Text:       *text,
		Location:   *location,
		Streams:    streams,
		Categories: categories,
	}

	if *showBrackets || *budget != "" {
		brackets, err := client.Brackets(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "search: load budget brackets: %v\n", err)
			return 1
		}
		if *showBrackets {
			printBrackets(stdout, brackets)
			return 0
		}
		b, ok := match.BracketByLabel(brackets, *budget)
		if !ok {
			fmt.Fprintf(stderr, "search: unknown budget %q; available:\n", *budget)
			printBrackets(stderr, brackets)
			return 1
		}
		state.Budget = &b
	}

	raws, err := client.FetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "search: fetch catalog: %v\n", err)
		return 1
	}
	matches := match.Filter(match.ProjectAll(raws), state)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(matches); err != nil {
			fmt.Fprintf(stderr, "search: %v\n", err)
			return 1
		}
		return 0
	}
	printRecords(stdout, matches)
	fmt.Fprintf(stdout, "\n%d of %d colleges match\n", len(matches), len(raws))
	return 0
}

// parseStatus maps a flag parse error to an exit status. -h is not a failure.
func parseStatus(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}

func printRecords(w io.Writer, records []college.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tFEES\tTAGS")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Location, formatFee(r.FeeRangeRaw), strings.Join(r.Tags, ", "))
	}
	_ = tw.Flush()
}

func printBrackets(w io.Writer, brackets []college.BudgetBracket) {
	for _, b := range brackets {
		if b.Unbounded {
			fmt.Fprintf(w, "  %-24s %d and above\n", b.Label, b.Min)
			continue
		}
		fmt.Fprintf(w, "  %-24s %d - %d\n", b.Label, b.Min, b.Max)
	}
}

// formatFee renders a fee range the way the filter engine reads it.
func formatFee(raw string) string {
	fee := match.ParseFeeRange(raw)
	switch {
	case !fee.Valid:
		return "-"
	case fee.Min == fee.Max:
		return fmt.Sprintf("%d", fee.Min)
	default:
		return fmt.Sprintf("%d-%d", fee.Min, fee.Max)
	}
}
