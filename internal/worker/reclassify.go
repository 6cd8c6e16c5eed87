package worker

import (
	"context"
	"time"

	"github.com/jwalitptl/salestrack-api/pkg/logger"
)

// Reclassifier re-derives lead statuses from call history and reports how
// many changed.
type Reclassifier interface {
	ReclassifyLeads() int
}

// LeadReclassifyWorker periodically re-runs status classification over the
// whole lead collection. Statuses decay with time (a Warm lead with no
// recent contact turns Cold), and without this sweep a lead's status only
// moves when a new call log lands.
type LeadReclassifyWorker struct {
	reclassifier Reclassifier
	interval     time.Duration
	log          *logger.Logger
}

func NewLeadReclassifyWorker(r Reclassifier, interval time.Duration, log *logger.Logger) *LeadReclassifyWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &LeadReclassifyWorker{
		reclassifier: r,
		interval:     interval,
		log:          log,
	}
}

func (w *LeadReclassifyWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if changed := w.reclassifier.ReclassifyLeads(); changed > 0 {
				w.log.Info("reclassified leads", "changed", changed)
			}
		}
	}
}
