package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/HerbHall/collegefinder/internal/apiclient"
	"github.com/HerbHall/collegefinder/internal/reconcile"
)

const shortlistUsage = `Usage: collegefinder shortlist [flags] <action> [college-id]

Actions:
  list              show liked and compared colleges
  like <id>         toggle the like on a college
  compare <id>      add a college to the compare list (max 2)
  uncompare <id>    remove a college from the compare list
`

func runShortlist(args []string) {
	if code := shortlist(args, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// shortlist runs the shortlist command and returns its exit status.
func shortlist(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("shortlist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cf := addClientFlags(fs)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (default $COLLEGEFINDER_PASSWORD)")
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), shortlistUsage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return parseStatus(err)
	}
	if *password == "" {
		*password = os.Getenv("COLLEGEFINDER_PASSWORD")
	}
	if *email == "" || fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	action := fs.Arg(0)
	var collegeID int64
	switch action {
	case "list":
	case "like", "compare", "uncompare":
		if fs.NArg() < 2 {
			fs.Usage()
			return 2
		}
		id, err := strconv.ParseInt(fs.Arg(1), 10, 64)
		if err != nil || id <= 0 {
			fmt.Fprintf(stderr, "shortlist: invalid college id %q\n", fs.Arg(1))
			return 2
		}
		collegeID = id
	default:
		fmt.Fprintf(stderr, "shortlist: unknown action %q\n", action)
		fs.Usage()
		return 2
	}

	client, logger, err := cf.build()
	if err != nil {
		fmt.Fprintf(stderr, "shortlist: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess, err := client.Login(ctx, *email, *password)
	if err != nil {
		fmt.Fprintf(stderr, "shortlist: login failed: %v\n", err)
		return 1
	}

	rec := reconcile.New(client, sess, logger.Named("reconcile"))
	if err := rec.Sync(ctx); err != nil {
		return report(stderr, err)
	}

	switch action {
	case "list":
		if err := printShortlist(ctx, stdout, client, rec); err != nil {
			return report(stderr, err)
		}
	case "like":
		liked, err := rec.ToggleLike(ctx, collegeID)
		if err != nil {
			return report(stderr, err)
		}
		if liked {
			fmt.Fprintf(stdout, "College %d liked\n", collegeID)
		} else {
			fmt.Fprintf(stdout, "College %d unliked\n", collegeID)
		}
	case "compare":
		if err := rec.AddToCompare(ctx, collegeID); err != nil {
			return report(stderr, err)
		}
		fmt.Fprintf(stdout, "College %d in compare list (%d/%d)\n", collegeID, rec.Compared().Len(), reconcile.CompareCapacity)
	case "uncompare":
		if err := rec.RemoveFromCompare(ctx, collegeID); err != nil {
			return report(stderr, err)
		}
		fmt.Fprintf(stdout, "College %d removed from compare list\n", collegeID)
	}
	return 0
}

func printShortlist(ctx context.Context, w io.Writer, client *apiclient.Client, rec *reconcile.Reconciler) error {
	raws, err := client.FetchCatalog(ctx)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(raws))
	for _, r := range raws {
		if r.Name != nil {
			names[r.ID] = *r.Name
		}
	}

	show := func(title string, set reconcile.IDSet) {
		fmt.Fprintf(w, "%s (%d):\n", title, set.Len())
		for _, id := range set.IDs() {
			fmt.Fprintf(w, "  %-6d %s\n", id, names[id])
		}
	}
	show("Liked", rec.Liked())
	show("Compared", rec.Compared())
	return nil
}

// report prints err for the user and returns the exit status.
func report(w io.Writer, err error) int {
	switch {
	case errors.Is(err, reconcile.ErrAuthRequired):
		fmt.Fprintln(w, "shortlist: login required (admin accounts have no shortlist)")
	case errors.Is(err, reconcile.ErrCapacityExceeded):
		fmt.Fprintln(w, "shortlist:", reconcile.ErrCapacityExceeded)
	case apiclient.IsNotFound(err):
		fmt.Fprintln(w, "shortlist: college not found")
	default:
		fmt.Fprintf(w, "shortlist: %v\n", err)
	}
	return 1
}
