package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vertragsassistent/internal/amqp"
	"vertragsassistent/internal/core"
	"vertragsassistent/internal/services"
	"vertragsassistent/internal/sheets"
)

// SyncWorker keeps the external contract listing in sync with the database.
// Every change message triggers a full recompute of the listing; the listing
// is small (one row per contract) so a full rewrite is cheaper than tracking
// per-row deltas on the spreadsheet side.
type SyncWorker struct {
	aggregator *services.Aggregator
	writer     sheets.ListingWriter
}

func NewSyncWorker(aggregator *services.Aggregator, writer sheets.ListingWriter) *SyncWorker {
	return &SyncWorker{
		aggregator: aggregator,
		writer:     writer,
	}
}

// HandleChangeMessage processes a single contract change message from AMQP.
func (w *SyncWorker) HandleChangeMessage(ctx context.Context, msg *amqp.ContractChangeMessage) error {
	slog.InfoContext(ctx, "Processing contract change",
		"id", msg.ID,
		"action", msg.Action)

	if err := w.SyncListing(ctx); err != nil {
		return fmt.Errorf("sync listing after change %d: %w", msg.ID, err)
	}
	return nil
}

// SyncListing recomputes the full contract listing and replaces the exported
// copy. It is also called once at worker startup so a restart recovers from
// any messages missed while the worker was down.
func (w *SyncWorker) SyncListing(ctx context.Context) error {
	today := core.DateOf(time.Now())

	view, err := w.aggregator.AggregateView(ctx, today, nil, core.TagModeAnd)
	if err != nil {
		return fmt.Errorf("aggregate contract view: %w", err)
	}

	rows := make([]sheets.ListingRow, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, sheets.ListingRow{
			Name:     r.Contract.Name,
			Company:  r.Contract.Company,
			PerMonth: core.FormatCurrency(r.PerMonth),
			PerYear:  core.FormatCurrency(r.PerYear),
		})
	}

	if err := w.writer.ReplaceListing(ctx, rows,
		core.FormatCurrency(view.TotalPerMonth),
		core.FormatCurrency(view.TotalPerYear)); err != nil {
		return fmt.Errorf("replace listing: %w", err)
	}

	slog.InfoContext(ctx, "Listing synced", "rows", len(rows))
	return nil
}
