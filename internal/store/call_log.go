package store

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/jwalitptl/salestrack-api/internal/filter"
	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/internal/storage"
	"github.com/jwalitptl/salestrack-api/pkg/errors"
	"github.com/jwalitptl/salestrack-api/pkg/event"
	"github.com/jwalitptl/salestrack-api/pkg/logger"
	"github.com/jwalitptl/salestrack-api/pkg/metrics"
	"github.com/jwalitptl/salestrack-api/pkg/validator"
)

// CallLogStore owns the call-log collection. Creating a log emits a
// CallLogCreated event synchronously, which is how the lead store learns
// about new contact activity.
type CallLogStore struct {
	mu sync.RWMutex

	callLogs      []*model.CallLog
	typeFilter    string
	outcomeFilter string
	filters       []*model.FilterCondition
	sortSpec      model.SortSpec

	persister Persister
	emitter   *event.Emitter
	validate  validator.Validator
	log       *logger.Logger
	metrics   *metrics.Metrics
}

func NewCallLogStore(persister Persister, emitter *event.Emitter, log *logger.Logger, m *metrics.Metrics) *CallLogStore {
	s := &CallLogStore{
		typeFilter:    QuickFilterAll,
		outcomeFilter: QuickFilterAll,
		sortSpec:      model.SortSpec{Field: "date", Order: model.SortDesc},
		persister:     persister,
		emitter:       emitter,
		validate:      validator.New(),
		log:           log,
		metrics:       m,
	}
	if err := persister.Load(storage.KeyCallLogs, &s.callLogs); err != nil {
		log.Error(err, "failed to load call logs, starting empty")
	}
	return s
}

func (s *CallLogStore) save() {
	s.persister.Save(storage.KeyCallLogs, s.callLogs)
}

// AddCallLog validates and inserts a new log, then emits CallLogCreated
// before returning so the lead-side update happens within the same logical
// operation.
func (s *CallLogStore) AddCallLog(req *model.CreateCallLogRequest) (*model.CallLog, error) {
	if err := s.validate.Validate(req); err != nil {
		s.metrics.Reject("call_logs", "validation")
		return nil, errors.BadRequest(err.Error(), err)
	}
	if req.Date.IsZero() {
		s.metrics.Reject("call_logs", "validation")
		return nil, errors.BadRequest("date is required", nil)
	}

	callLog := &model.CallLog{
		ID:                newRecordID(),
		LeadID:            req.LeadID,
		Type:              model.CallLogType(req.Type),
		Date:              req.Date,
		Duration:          req.Duration,
		Outcome:           model.CallOutcome(req.Outcome),
		Notes:             req.Notes,
		OtherPeople:       req.OtherPeople,
		NextAction:        req.NextAction,
		ScheduledFollowUp: req.ScheduledFollowUp,
	}

	s.mu.Lock()
	s.callLogs = append(s.callLogs, callLog)
	s.save()
	s.mu.Unlock()
	s.metrics.Mutation("call_logs", "add")

	// Emit outside the lock: subscribers call back into other stores and
	// into LogsForLead on this one.
	s.emitter.Emit(event.CallLogCreated, callLog)
	return callLog, nil
}

func (s *CallLogStore) UpdateCallLog(id string, req *model.UpdateCallLogRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	callLog := s.findLocked(id)
	if callLog == nil {
		return false
	}

	if req.Type != nil {
		callLog.Type = model.CallLogType(*req.Type)
	}
	if req.Date != nil {
		callLog.Date = *req.Date
	}
	if req.Duration != nil {
		callLog.Duration = req.Duration
	}
	if req.Outcome != nil {
		callLog.Outcome = model.CallOutcome(*req.Outcome)
	}
	if req.Notes != nil {
		callLog.Notes = *req.Notes
	}
	if req.OtherPeople != nil {
		callLog.OtherPeople = *req.OtherPeople
	}
	if req.NextAction != nil {
		callLog.NextAction = *req.NextAction
	}
	if req.ScheduledFollowUp != nil {
		callLog.ScheduledFollowUp = req.ScheduledFollowUp
	}

	s.save()
	s.metrics.Mutation("call_logs", "update")
	return true
}

func (s *CallLogStore) DeleteCallLog(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, callLog := range s.callLogs {
		if callLog.ID == id {
			s.callLogs = append(s.callLogs[:i], s.callLogs[i+1:]...)
			s.save()
			s.metrics.Mutation("call_logs", "delete")
			return true
		}
	}
	return false
}

func (s *CallLogStore) GetCallLogByID(id string) (*model.CallLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	callLog := s.findLocked(id)
	return callLog, callLog != nil
}

// LogsForLead returns every log for one lead, newest first.
func (s *CallLogStore) LogsForLead(leadID string) []*model.CallLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs := make([]*model.CallLog, 0)
	for _, callLog := range s.callLogs {
		if callLog.LeadID == leadID {
			logs = append(logs, callLog)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
	return logs
}

// View state setters.

func (s *CallLogStore) SetTypeFilter(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == "" {
		t = QuickFilterAll
	}
	s.typeFilter = t
}

func (s *CallLogStore) SetOutcomeFilter(outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if outcome == "" {
		outcome = QuickFilterAll
	}
	s.outcomeFilter = outcome
}

func (s *CallLogStore) SetSorting(field string, order model.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortSpec = model.SortSpec{Field: field, Order: order}
}

// Filter condition lifecycle.

func (s *CallLogStore) AddFilter(cond *model.FilterCondition) *model.FilterCondition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cond.ID == "" {
		cond.ID = newConditionID()
	}
	s.filters = append(s.filters, cond)
	return cond
}

func (s *CallLogStore) UpdateFilter(id string, req *model.UpdateFilterRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cond := range s.filters {
		if cond.ID == id {
			applyFilterUpdate(cond, req)
			return true
		}
	}
	return false
}

func (s *CallLogStore) RemoveFilter(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cond := range s.filters {
		if cond.ID == id {
			s.filters = append(s.filters[:i], s.filters[i+1:]...)
			return true
		}
	}
	return false
}

func (s *CallLogStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = nil
}

func (s *CallLogStore) Filters() []*model.FilterCondition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.FilterCondition, len(s.filters))
	copy(out, s.filters)
	return out
}

// FilteredAndSorted recomputes the derived call-log view.
func (s *CallLogStore) FilteredAndSorted() []*model.CallLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.metrics.ViewRecompute("call_logs")

	filtered := make([]*model.CallLog, 0, len(s.callLogs))
	for _, callLog := range s.callLogs {
		if s.typeFilter != QuickFilterAll && string(callLog.Type) != s.typeFilter {
			continue
		}
		if s.outcomeFilter != QuickFilterAll && string(callLog.Outcome) != s.outcomeFilter {
			continue
		}
		if !filter.MatchesAll(s.filters, func(field string) any { return callLogFieldValue(callLog, field) }) {
			continue
		}
		filtered = append(filtered, callLog)
	}

	spec := s.sortSpec
	sort.SliceStable(filtered, func(i, j int) bool {
		return sortLess(
			callLogFieldValue(filtered[i], spec.Field),
			callLogFieldValue(filtered[j], spec.Field),
			spec.Order == model.SortDesc,
		)
	})
	return filtered
}

// Derived metrics.

func (s *CallLogStore) TotalCallLogs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.callLogs)
}

// CallsToday returns logs whose date falls on the current calendar day.
func (s *CallLogStore) CallsToday() []*model.CallLog {
	return s.callsSince(filter.StartOfDay(time.Now()), true)
}

// CallsThisWeek returns logs on/after the most recent week start (Sunday,
// midnight).
func (s *CallLogStore) CallsThisWeek() []*model.CallLog {
	return s.callsSince(filter.StartOfWeek(time.Now()), false)
}

func (s *CallLogStore) callsSince(boundary time.Time, sameDayOnly bool) []*model.CallLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.CallLog, 0)
	for _, callLog := range s.callLogs {
		if sameDayOnly {
			if filter.StartOfDay(callLog.Date).Equal(boundary) {
				out = append(out, callLog)
			}
			continue
		}
		if !callLog.Date.Before(boundary) {
			out = append(out, callLog)
		}
	}
	return out
}

// AverageCallsPerDay divides the total log count by the days elapsed since
// the earliest log (at least 1, so same-day collections don't divide by
// zero), rounded to two decimals. Zero when there are no logs.
func (s *CallLogStore) AverageCallsPerDay() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.callLogs) == 0 {
		return 0
	}

	earliest := s.callLogs[0].Date
	for _, callLog := range s.callLogs[1:] {
		if callLog.Date.Before(earliest) {
			earliest = callLog.Date
		}
	}

	days := math.Ceil(time.Since(earliest).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return math.Round(float64(len(s.callLogs))/days*100) / 100
}

// LogsByOutcome partitions the full collection by outcome.
func (s *CallLogStore) LogsByOutcome() map[model.CallOutcome][]*model.CallLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byOutcome := make(map[model.CallOutcome][]*model.CallLog, len(model.CallOutcomes))
	for _, outcome := range model.CallOutcomes {
		byOutcome[outcome] = []*model.CallLog{}
	}
	for _, callLog := range s.callLogs {
		if callLog.Outcome == "" {
			continue
		}
		byOutcome[callLog.Outcome] = append(byOutcome[callLog.Outcome], callLog)
	}
	return byOutcome
}

// ConnectionRate is the share of connected calls over all logs as a rounded
// integer percentage, 0 when the collection is empty.
func (s *CallLogStore) ConnectionRate() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.callLogs) == 0 {
		return 0
	}
	connected := 0
	for _, callLog := range s.callLogs {
		if callLog.Outcome == model.CallOutcomeConnected {
			connected++
		}
	}
	return int(math.Round(float64(connected) / float64(len(s.callLogs)) * 100))
}

func (s *CallLogStore) findLocked(id string) *model.CallLog {
	for _, callLog := range s.callLogs {
		if callLog.ID == id {
			return callLog
		}
	}
	return nil
}

// callLogFieldValue is the call-log accessor table for the filter engine.
func callLogFieldValue(callLog *model.CallLog, field string) any {
	switch field {
	case "id":
		return callLog.ID
	case "lead_id":
		return callLog.LeadID
	case "type":
		return string(callLog.Type)
	case "date":
		return callLog.Date
	case "duration":
		if callLog.Duration == nil {
			return nil
		}
		return float64(*callLog.Duration)
	case "outcome":
		return string(callLog.Outcome)
	case "notes":
		return callLog.Notes
	case "other_people":
		return callLog.OtherPeople
	case "next_action":
		return callLog.NextAction
	case "scheduled_follow_up":
		if callLog.ScheduledFollowUp == nil {
			return nil
		}
		return *callLog.ScheduledFollowUp
	}
	return nil
}
