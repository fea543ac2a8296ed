// Package alerts runs the optional periodic low-stock check.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stockmanager/models"
)

// LowStockSource is the analytics call the check relies on.
type LowStockSource interface {
	LowStockItems(ctx context.Context, threshold int) ([]models.StockItem, error)
}

// Scheduler runs the low-stock check on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	threshold int
	source    LowStockSource
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler prepares a scheduler; call Start to begin running.
func NewScheduler(schedule string, threshold int, source LowStockSource, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:      cron.New(),
		schedule:  schedule,
		threshold: threshold,
		source:    source,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Start registers the job and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule low-stock check %q: %w", s.schedule, err)
	}
	s.logger.Info("starting low-stock scheduler", zap.String("schedule", s.schedule), zap.Int("threshold", s.threshold))
	s.cron.Start()
	return nil
}

// Stop stops the runner and waits for a running check to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping low-stock scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.Check(ctx); err != nil {
		s.logger.Error("low-stock check failed", zap.Error(err))
	}
}

// Check runs one low-stock pass and notifies when anything is below the
// threshold. It reports whether a notification was sent.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	items, err := s.source.LowStockItems(ctx, s.threshold)
	if err != nil {
		return false, fmt.Errorf("load low-stock items: %w", err)
	}
	if len(items) == 0 {
		s.logger.Debug("no low-stock items", zap.Int("threshold", s.threshold))
		return false, nil
	}

	alert := BuildAlert(items, s.threshold, s.now())
	if err := s.notifier.Notify(ctx, alert); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}
	s.logger.Info("low-stock alert sent", zap.Int("items", len(items)))
	return true, nil
}

// BuildAlert renders items into an alert with a readable summary line.
func BuildAlert(items []models.StockItem, threshold int, at time.Time) Alert {
	alert := Alert{
		Threshold: threshold,
		Items:     make([]AlertItem, 0, len(items)),
		CheckedAt: at,
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		alert.Items = append(alert.Items, AlertItem{
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Supplier: it.Supplier.Name,
		})
		names = append(names, fmt.Sprintf("%s (%s left)", it.Name, humanize.Comma(int64(it.Quantity))))
	}

	noun := "items are"
	if len(items) == 1 {
		noun = "item is"
	}
	alert.Message = fmt.Sprintf("%d %s below %s units: %s",
		len(items), noun, humanize.Comma(int64(threshold)), strings.Join(names, ", "))
	return alert
}
