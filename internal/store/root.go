package store

import (
	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/pkg/event"
	"github.com/jwalitptl/salestrack-api/pkg/logger"
	"github.com/jwalitptl/salestrack-api/pkg/metrics"
)

// Root wires the collection stores together. The only cross-store
// dependency — call-log creation touching the owning lead — runs through
// the event emitter so neither store holds a reference to the other.
type Root struct {
	Leads      *LeadStore
	Companies  *CompanyStore
	CallLogs   *CallLogStore
	classifier *Classifier
	log        *logger.Logger
}

type RootConfig struct {
	DefaultOwner   string
	HotWindowDays  int
	WarmWindowDays int
	// Metrics may be nil (tests).
	Metrics *metrics.Metrics
}

func NewRoot(persister Persister, log *logger.Logger, cfg RootConfig) *Root {
	emitter := event.NewEmitter()

	r := &Root{
		Leads:      NewLeadStore(persister, emitter, log, cfg.Metrics, cfg.DefaultOwner),
		Companies:  NewCompanyStore(persister, emitter, log, cfg.Metrics, cfg.DefaultOwner),
		CallLogs:   NewCallLogStore(persister, emitter, log, cfg.Metrics),
		classifier: NewClassifier(cfg.HotWindowDays, cfg.WarmWindowDays),
		log:        log,
	}

	// Synchronous: the lead is consistent before AddCallLog returns.
	emitter.Subscribe(event.CallLogCreated, r.onCallLogCreated)

	return r
}

func (r *Root) onCallLogCreated(payload any) {
	callLog, ok := payload.(*model.CallLog)
	if !ok {
		return
	}

	lead, found := r.Leads.GetLeadByID(callLog.LeadID)
	if !found {
		r.log.Warn("call log references unknown lead", "lead_id", callLog.LeadID)
		return
	}

	status := r.classifier.Classify(lead, r.CallLogs.LogsForLead(callLog.LeadID))
	r.Leads.RecordContact(callLog.LeadID, callLog.Date, status)
}

// ReclassifyLeads re-derives every lead's status from its call history and
// returns how many changed. Statuses decay with time, so the background
// worker runs this periodically in addition to the per-call update.
func (r *Root) ReclassifyLeads() int {
	changed := 0
	for _, leads := range r.Leads.LeadsByStatus() {
		for _, lead := range leads {
			status := r.classifier.Classify(lead, r.CallLogs.LogsForLead(lead.ID))
			if r.Leads.SetStatus(lead.ID, status) {
				changed++
			}
		}
	}
	return changed
}

// RegisterMetrics exposes live collection sizes to Prometheus.
func (r *Root) RegisterMetrics(namespace string) {
	metrics.RegisterCollectionSize(namespace, "leads", func() float64 {
		return float64(r.Leads.TotalLeads())
	})
	metrics.RegisterCollectionSize(namespace, "companies", func() float64 {
		return float64(r.Companies.TotalCompanies())
	})
	metrics.RegisterCollectionSize(namespace, "call_logs", func() float64 {
		return float64(r.CallLogs.TotalCallLogs())
	})
}

// DashboardMetrics assembles the aggregate dashboard snapshot from the lead
// and call-log collections.
func (r *Root) DashboardMetrics() model.DashboardMetrics {
	return model.DashboardMetrics{
		TotalLeads:     r.Leads.TotalLeads(),
		CallsToday:     len(r.CallLogs.CallsToday()),
		CallsThisWeek:  len(r.CallLogs.CallsThisWeek()),
		HotLeads:       r.Leads.CountByStatus(model.LeadStatusHot),
		WarmLeads:      r.Leads.CountByStatus(model.LeadStatusWarm),
		ColdLeads:      r.Leads.CountByStatus(model.LeadStatusCold),
		AvgCallsPerDay: r.CallLogs.AverageCallsPerDay(),
		ConversionRate: r.Leads.ConversionRate(),
		ConnectionRate: r.CallLogs.ConnectionRate(),
	}
}
