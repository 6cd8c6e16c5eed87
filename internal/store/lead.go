package store

import (
	"math"
	"sort"
	"strings"
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

// LeadStore owns the lead collection plus its view state: search query,
// status quick filter, advanced filter conditions and the active sort.
type LeadStore struct {
	mu sync.RWMutex

	leads        []*model.Lead
	searchQuery  string
	statusFilter string
	filters      []*model.FilterCondition
	sortSpec     model.SortSpec

	persister    Persister
	emitter      *event.Emitter
	validate     validator.Validator
	log          *logger.Logger
	metrics      *metrics.Metrics
	defaultOwner string
}

func NewLeadStore(persister Persister, emitter *event.Emitter, log *logger.Logger, m *metrics.Metrics, defaultOwner string) *LeadStore {
	s := &LeadStore{
		statusFilter: QuickFilterAll,
		sortSpec:     model.SortSpec{Field: "created_at", Order: model.SortDesc},
		persister:    persister,
		emitter:      emitter,
		validate:     validator.New(),
		log:          log,
		metrics:      m,
		defaultOwner: defaultOwner,
	}
	if err := persister.Load(storage.KeyLeads, &s.leads); err != nil {
		log.Error(err, "failed to load leads, starting empty")
	}
	return s
}

func (s *LeadStore) save() {
	s.persister.Save(storage.KeyLeads, s.leads)
}

// AddLead validates and inserts a new lead. A duplicate email (compared
// case-insensitively) is a business-rule rejection returned as an error,
// never a panic.
func (s *LeadStore) AddLead(req *model.CreateLeadRequest) (*model.Lead, error) {
	if err := s.validate.Validate(req); err != nil {
		s.metrics.Reject("leads", "validation")
		return nil, errors.BadRequest(err.Error(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailExistsLocked(req.Email, "") {
		s.metrics.Reject("leads", "duplicate_email")
		return nil, errors.Duplicate("a lead with this email already exists")
	}

	status := model.LeadStatus(req.Status)
	if status == "" {
		status = model.LeadStatusCold
	}

	now := time.Now()
	lead := &model.Lead{
		ID:           newRecordID(),
		Name:         req.Name,
		Company:      req.Company,
		Phone:        req.Phone,
		Email:        req.Email,
		Status:       status,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    s.defaultOwner,
		AccountOwner: s.defaultOwner,
	}

	s.leads = append(s.leads, lead)
	s.save()
	s.metrics.Mutation("leads", "add")
	s.emitter.Emit(event.LeadCreated, lead)
	return lead, nil
}

// UpdateLead applies a partial update. Returns false when id is unknown.
func (s *LeadStore) UpdateLead(id string, req *model.UpdateLeadRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := s.findLocked(id)
	if lead == nil {
		return false, nil
	}

	if req.Email != nil && s.emailExistsLocked(*req.Email, id) {
		s.metrics.Reject("leads", "duplicate_email")
		return false, errors.Duplicate("a lead with this email already exists")
	}

	if req.Name != nil {
		lead.Name = *req.Name
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.Status != nil {
		lead.Status = model.LeadStatus(*req.Status)
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.AccountOwner != nil {
		lead.AccountOwner = *req.AccountOwner
	}
	if req.LastContactedAt != nil {
		t := *req.LastContactedAt
		lead.LastContactedAt = &t
	}
	lead.UpdatedAt = time.Now()

	s.save()
	s.metrics.Mutation("leads", "update")
	return true, nil
}

// DeleteLead removes a lead by id. Unknown ids are a no-op, not an error.
func (s *LeadStore) DeleteLead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, lead := range s.leads {
		if lead.ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			s.save()
			s.metrics.Mutation("leads", "delete")
			s.emitter.Emit(event.LeadDeleted, lead)
			return true
		}
	}
	return false
}

// DeleteLeads removes every lead whose id is in ids and returns the count
// actually removed.
func (s *LeadStore) DeleteLeads(ids []string) int {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.leads[:0]
	deleted := 0
	for _, lead := range s.leads {
		if _, ok := idSet[lead.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, lead)
	}
	s.leads = kept
	if deleted > 0 {
		s.save()
		s.metrics.Mutation("leads", "bulk_delete")
	}
	return deleted
}

func (s *LeadStore) GetLeadByID(id string) (*model.Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead := s.findLocked(id)
	return lead, lead != nil
}

// CheckEmailExists reports whether another lead already uses email,
// ignoring case. excludeID lets updates skip the record being edited.
func (s *LeadStore) CheckEmailExists(email, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailExistsLocked(email, excludeID)
}

// CheckSimilarPhone finds a lead whose phone number looks like phone after
// normalization (digits and a leading + only, suffix-compared so that
// +1234567890 and 234567890 collide). Returns nil when phone is blank or
// too short to be meaningful.
func (s *LeadStore) CheckSimilarPhone(phone, excludeID string) *model.Lead {
	normalized := normalizePhone(phone)
	if len(normalized) < 7 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lead := range s.leads {
		if lead.ID == excludeID {
			continue
		}
		candidate := normalizePhone(lead.Phone)
		if len(candidate) < 7 {
			continue
		}
		if normalized == candidate {
			return lead
		}
		min := len(normalized)
		if len(candidate) < min {
			min = len(candidate)
		}
		if normalized[len(normalized)-min:] == candidate[len(candidate)-min:] {
			return lead
		}
	}
	return nil
}

// RecordContact overwrites the lead's last-contacted timestamp and status
// in one step. Called by the root store when a call log lands.
func (s *LeadStore) RecordContact(id string, date time.Time, status model.LeadStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := s.findLocked(id)
	if lead == nil {
		return false
	}
	d := date
	lead.LastContactedAt = &d
	lead.Status = status
	lead.UpdatedAt = time.Now()
	s.save()
	s.metrics.Mutation("leads", "record_contact")
	return true
}

// SetStatus overwrites the lead's status without touching contact dates.
// Reports whether a change was actually applied.
func (s *LeadStore) SetStatus(id string, status model.LeadStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lead := s.findLocked(id)
	if lead == nil || lead.Status == status {
		return false
	}
	lead.Status = status
	lead.UpdatedAt = time.Now()
	s.save()
	s.metrics.Mutation("leads", "set_status")
	return true
}

// View state setters.

func (s *LeadStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

func (s *LeadStore) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == "" {
		status = QuickFilterAll
	}
	s.statusFilter = status
}

func (s *LeadStore) SetSorting(field string, order model.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortSpec = model.SortSpec{Field: field, Order: order}
}

// Filter condition lifecycle.

func (s *LeadStore) AddFilter(cond *model.FilterCondition) *model.FilterCondition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cond.ID == "" {
		cond.ID = newConditionID()
	}
	s.filters = append(s.filters, cond)
	return cond
}

func (s *LeadStore) UpdateFilter(id string, req *model.UpdateFilterRequest) bool {
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

func (s *LeadStore) RemoveFilter(id string) bool {
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

func (s *LeadStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = nil
}

func (s *LeadStore) Filters() []*model.FilterCondition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.FilterCondition, len(s.filters))
	copy(out, s.filters)
	return out
}

// FilteredAndSorted recomputes the derived view: search, then the status
// quick filter, then the advanced conditions (AND), then a stable sort.
// The records slice itself is never reordered.
func (s *LeadStore) FilteredAndSorted() []*model.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.metrics.ViewRecompute("leads")

	filtered := make([]*model.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if !s.matchesSearchLocked(lead) {
			continue
		}
		if s.statusFilter != QuickFilterAll && string(lead.Status) != s.statusFilter {
			continue
		}
		if !filter.MatchesAll(s.filters, func(field string) any { return leadFieldValue(lead, field) }) {
			continue
		}
		filtered = append(filtered, lead)
	}

	spec := s.sortSpec
	sort.SliceStable(filtered, func(i, j int) bool {
		return sortLess(
			leadFieldValue(filtered[i], spec.Field),
			leadFieldValue(filtered[j], spec.Field),
			spec.Order == model.SortDesc,
		)
	})
	return filtered
}

func (s *LeadStore) matchesSearchLocked(lead *model.Lead) bool {
	if s.searchQuery == "" {
		return true
	}
	q := s.searchQuery
	return containsFold(lead.Name, q) ||
		containsFold(lead.Company, q) ||
		containsFold(lead.Email, q) ||
		strings.Contains(lead.Phone, q)
}

// Derived metrics.

func (s *LeadStore) TotalLeads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

// LeadsByStatus partitions the full collection (not the filtered view) by
// status.
func (s *LeadStore) LeadsByStatus() map[model.LeadStatus][]*model.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[model.LeadStatus][]*model.Lead, len(model.LeadStatuses))
	for _, status := range model.LeadStatuses {
		byStatus[status] = []*model.Lead{}
	}
	for _, lead := range s.leads {
		byStatus[lead.Status] = append(byStatus[lead.Status], lead)
	}
	return byStatus
}

func (s *LeadStore) CountByStatus(status model.LeadStatus) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, lead := range s.leads {
		if lead.Status == status {
			count++
		}
	}
	return count
}

// ConversionRate is the share of hot leads over all leads as a rounded
// integer percentage, 0 when the collection is empty.
func (s *LeadStore) ConversionRate() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.leads) == 0 {
		return 0
	}
	hot := 0
	for _, lead := range s.leads {
		if lead.Status == model.LeadStatusHot {
			hot++
		}
	}
	return int(math.Round(float64(hot) / float64(len(s.leads)) * 100))
}

func (s *LeadStore) findLocked(id string) *model.Lead {
	for _, lead := range s.leads {
		if lead.ID == id {
			return lead
		}
	}
	return nil
}

func (s *LeadStore) emailExistsLocked(email, excludeID string) bool {
	for _, lead := range s.leads {
		if lead.ID != excludeID && strings.EqualFold(lead.Email, email) {
			return true
		}
	}
	return false
}

// leadFieldValue is the lead accessor table: it maps a filterable field
// name to a plain string/float64/time.Time value (or nil when absent) so
// the evaluator stays generic across record types.
func leadFieldValue(lead *model.Lead, field string) any {
	switch field {
	case "id":
		return lead.ID
	case "name":
		return lead.Name
	case "company":
		return lead.Company
	case "phone":
		return lead.Phone
	case "email":
		return lead.Email
	case "status":
		return string(lead.Status)
	case "notes":
		return lead.Notes
	case "created_by":
		return lead.CreatedBy
	case "account_owner":
		return lead.AccountOwner
	case "created_at":
		return lead.CreatedAt
	case "updated_at":
		return lead.UpdatedAt
	case "last_contacted_at":
		if lead.LastContactedAt == nil {
			return nil
		}
		return *lead.LastContactedAt
	}
	return nil
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func applyFilterUpdate(cond *model.FilterCondition, req *model.UpdateFilterRequest) {
	if req.Field != nil {
		cond.Field = *req.Field
	}
	if req.Operator != nil {
		cond.Operator = *req.Operator
	}
	if req.Value != nil {
		cond.Value = req.Value
	}
	if req.Value2 != nil {
		cond.Value2 = req.Value2
	}
	if req.DataType != nil {
		cond.DataType = *req.DataType
	}
}
