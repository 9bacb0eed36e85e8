package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/restobook/restobook/internal/core/domain"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
)

// JobRunner holds the services the scheduled jobs operate on. Jobs run
// outside any request, so they log through the process logger and use a
// background context.
type JobRunner struct {
	inventory  portssvc.InventoryService
	accounting portssvc.AccountingService
	logger     *slog.Logger
}

func NewJobRunner(inventory portssvc.InventoryService, accounting portssvc.AccountingService, logger *slog.Logger) *JobRunner {
	return &JobRunner{
		inventory:  inventory,
		accounting: accounting,
		logger:     logger,
	}
}

// runWithRecovery runs a job and keeps a panic inside it from killing
// the cron goroutine.
func (jr *JobRunner) runWithRecovery(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			jr.logger.Error("Job panicked", slog.String("job", name), slog.Any("panic", r))
		}
	}()

	start := time.Now()
	jr.logger.Info("Job started", slog.String("job", name))
	fn()
	jr.logger.Info("Job finished", slog.String("job", name), slog.Duration("duration", time.Since(start)))
}

// LowStockScan logs every inventory item at or below its threshold so the
// morning shift sees what to reorder.
func (jr *JobRunner) LowStockScan() {
	jr.runWithRecovery("LowStockScan", func() {
		ctx := context.Background()

		items, err := jr.inventory.LowStockItems(ctx)
		if err != nil {
			jr.logger.Error("Low stock scan failed", slog.String("error", err.Error()))
			return
		}

		if len(items) == 0 {
			jr.logger.Info("Low stock scan found no items below threshold")
			return
		}

		for _, item := range items {
			jr.logger.Warn("Inventory item is low on stock",
				slog.String("item_id", item.ItemID),
				slog.String("name", item.Name),
				slog.String("quantity", item.Quantity.String()),
				slog.String("threshold", item.LowStockLevel.String()),
				slog.String("unit", item.Unit))
		}
		jr.logger.Info("Low stock scan complete", slog.Int("items_low", len(items)))
	})
}

// DailySalesSummary aggregates the day's sales postings from the ledger
// and logs the totals. It reads the journal rather than the orders table
// so the summary reflects exactly what was posted.
func (jr *JobRunner) DailySalesSummary() {
	jr.runWithRecovery("DailySalesSummary", func() {
		ctx := context.Background()

		entries, err := jr.accounting.ListJournalEntries(ctx)
		if err != nil {
			jr.logger.Error("Daily sales summary failed", slog.String("error", err.Error()))
			return
		}

		today := time.Now().UTC().Format("2006-01-02")
		gross := decimal.Zero
		count := 0
		for _, entry := range entries {
			if entry.RefType != domain.RefOrder || entry.Date != today {
				continue
			}
			gross = gross.Add(entry.TotalDebit)
			count++
		}

		jr.logger.Info("Daily sales summary",
			slog.String("date", today),
			slog.Int("orders_posted", count),
			slog.String("gross_total", gross.StringFixed(2)))
	})
}
