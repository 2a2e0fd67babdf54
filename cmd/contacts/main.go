// Command contacts browses and edits the contacts collection from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/contactapp/backend/internal/config"
	"github.com/contactapp/backend/internal/contactstore"
	"github.com/contactapp/backend/internal/logging"
	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/pkg/contactsapi"
)

const requestTimeout = 15 * time.Second

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: contacts <command> [flags]

Commands:
  list [-q text] [-page n] [-limit n]   show one page of contacts
  add -name name [-description d] [-photo url] [-action a]
  rm <id>                               delete a contact

Environment:
  CONTACTS_API_URL    collection endpoint (default http://localhost:9000/api/users)
  CONTACTS_PAGE_SIZE  default page size (default 6)`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := config.Load()
	// logs go to stderr so they never mix with listings
	logger := logging.New(os.Stderr, cfg.LogLevel, "text")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	client := contactsapi.NewClient(cfg.ContactsAPIURL, nil)
	store := contactstore.New(client,
		contactstore.WithLogger(logger),
		contactstore.WithPageSize(cfg.ContactsPageSize),
	)

	var err error
	switch os.Args[1] {
	case "list", "ls":
		err = runList(ctx, store, os.Args[2:], os.Stdout)
	case "add":
		err = runAdd(ctx, store, os.Args[2:], os.Stdout)
	case "rm", "remove":
		err = runRemove(ctx, store, os.Args[2:], os.Stdout)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runList(ctx context.Context, store *contactstore.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	query := fs.String("q", "", "search text")
	page := fs.Int("page", 0, "page number (1-based)")
	limit := fs.Int("limit", 0, "contacts per page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := contactstore.LoadRequest{}.WithQuery(*query)
	if *page > 0 {
		req = req.WithPage(*page)
	}
	if *limit > 0 {
		req = req.WithLimit(*limit)
	}
	store.LoadContacts(ctx, req)

	snap := store.Snapshot()
	if snap.ErrorMessage != "" {
		return fmt.Errorf("%s", snap.ErrorMessage)
	}
	printPage(out, snap)
	return nil
}

func runAdd(ctx context.Context, store *contactstore.Store, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var in model.ContactInput
	fs.StringVar(&in.Name, "name", "", "contact name (required)")
	fs.StringVar(&in.Description, "description", "", "free-form description")
	fs.StringVar(&in.Photo, "photo", "", "photo URL")
	fs.StringVar(&in.Action, "action", "", "follow-up action")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if in.Name == "" {
		return fmt.Errorf("add: -name is required")
	}

	if err := store.AddContact(ctx, in); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	printPage(out, store.Snapshot())
	return nil
}

func runRemove(ctx context.Context, store *contactstore.Store, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("rm: exactly one contact id is required")
	}
	if err := store.RemoveContact(ctx, args[0]); err != nil {
		return fmt.Errorf("rm %s: %w", args[0], err)
	}
	printPage(out, store.Snapshot())
	return nil
}

func printPage(out io.Writer, snap contactstore.Snapshot) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION\tACTION")
	for _, c := range snap.Contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Description, c.Action)
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "page %d (%d per page), showing %d of %d contacts",
		snap.CurrentPage, snap.CurrentLimit, len(snap.Contacts), snap.TotalContacts)
	if snap.ActiveQuery != "" {
		fmt.Fprintf(out, " matching %q", snap.ActiveQuery)
	}
	fmt.Fprintln(out)
}
