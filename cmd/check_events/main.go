package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/queries/list_events"
	"github.com/light-bringer/menucat-service/internal/app/catalog/repo"
	"github.com/light-bringer/menucat-service/internal/config"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

func main() {
	database := flag.String("database", os.Getenv("SPANNER_DATABASE"), "Spanner database (format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	status := flag.String("status", "", "Only show events with this status (pending, completed, failed)")
	eventType := flag.String("type", "", "Only show events of this type, e.g. menu_item.price_changed")
	aggregate := flag.String("menu-item", "", "Only show events for this menu item id")
	limit := flag.Int64("limit", 10, "Maximum number of events to print")
	flag.Parse()

	if *database == "" {
		*database = config.DefaultSpannerDB
	}

	req := &list_events.Request{
		EventType:   *eventType,
		AggregateID: *aggregate,
		Status:      *status,
		Limit:       *limit,
	}
	if err := checkEvents(context.Background(), *database, req); err != nil {
		logger.Error("check events failed", "error", err)
		os.Exit(1)
	}
}

func checkEvents(ctx context.Context, database string, req *list_events.Request) error {
	client, err := spanner.NewClient(ctx, database)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	resp, err := list_events.NewQuery(repo.NewEventsReadModel(client)).Execute(ctx, req)
	if err != nil {
		return err
	}

	if len(resp.Events) == 0 {
		fmt.Println("No events found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tTYPE\tMENU ITEM\tSTATUS\tRETRIES\tEVENT")
	for _, e := range resp.Events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.EventType, e.AggregateID, e.Status, e.RetryCount, e.EventID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nShowing %d of %d events\n", len(resp.Events), resp.TotalCount)
	return nil
}
