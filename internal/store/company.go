package store

import (
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

// CompanyStore owns the company collection. Quick filters cover industry
// and size; company names are unique case-insensitively.
type CompanyStore struct {
	mu sync.RWMutex

	companies      []*model.Company
	searchQuery    string
	industryFilter string
	sizeFilter     string
	filters        []*model.FilterCondition
	sortSpec       model.SortSpec

	persister    Persister
	emitter      *event.Emitter
	validate     validator.Validator
	log          *logger.Logger
	metrics      *metrics.Metrics
	defaultOwner string
}

func NewCompanyStore(persister Persister, emitter *event.Emitter, log *logger.Logger, m *metrics.Metrics, defaultOwner string) *CompanyStore {
	s := &CompanyStore{
		industryFilter: QuickFilterAll,
		sizeFilter:     QuickFilterAll,
		sortSpec:       model.SortSpec{Field: "created_at", Order: model.SortDesc},
		persister:      persister,
		emitter:        emitter,
		validate:       validator.New(),
		log:            log,
		metrics:        m,
		defaultOwner:   defaultOwner,
	}
	if err := persister.Load(storage.KeyCompanies, &s.companies); err != nil {
		log.Error(err, "failed to load companies, starting empty")
	}
	return s
}

func (s *CompanyStore) save() {
	s.persister.Save(storage.KeyCompanies, s.companies)
}

// AddCompany validates and inserts a new company, rejecting duplicate names.
func (s *CompanyStore) AddCompany(req *model.CreateCompanyRequest) (*model.Company, error) {
	if err := s.validate.Validate(req); err != nil {
		s.metrics.Reject("companies", "validation")
		return nil, errors.BadRequest(err.Error(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameExistsLocked(req.Name, "") {
		s.metrics.Reject("companies", "duplicate_name")
		return nil, errors.Duplicate("a company with this name already exists")
	}

	now := time.Now()
	company := &model.Company{
		ID:           newRecordID(),
		Name:         req.Name,
		Industry:     model.Industry(req.Industry),
		Size:         model.CompanySize(req.Size),
		Website:      req.Website,
		Location:     req.Location,
		Description:  req.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    s.defaultOwner,
		AccountOwner: s.defaultOwner,
	}

	s.companies = append(s.companies, company)
	s.save()
	s.metrics.Mutation("companies", "add")
	s.emitter.Emit(event.CompanyCreated, company)
	return company, nil
}

func (s *CompanyStore) UpdateCompany(id string, req *model.UpdateCompanyRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company := s.findLocked(id)
	if company == nil {
		return false, nil
	}

	if req.Name != nil && s.nameExistsLocked(*req.Name, id) {
		s.metrics.Reject("companies", "duplicate_name")
		return false, errors.Duplicate("a company with this name already exists")
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Industry != nil {
		company.Industry = model.Industry(*req.Industry)
	}
	if req.Size != nil {
		company.Size = model.CompanySize(*req.Size)
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.Location != nil {
		company.Location = *req.Location
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.AccountOwner != nil {
		company.AccountOwner = *req.AccountOwner
	}
	if req.LastContactedAt != nil {
		t := *req.LastContactedAt
		company.LastContactedAt = &t
	}
	company.UpdatedAt = time.Now()

	s.save()
	s.metrics.Mutation("companies", "update")
	return true, nil
}

func (s *CompanyStore) DeleteCompany(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, company := range s.companies {
		if company.ID == id {
			s.companies = append(s.companies[:i], s.companies[i+1:]...)
			s.save()
			s.metrics.Mutation("companies", "delete")
			return true
		}
	}
	return false
}

func (s *CompanyStore) DeleteCompanies(ids []string) int {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.companies[:0]
	deleted := 0
	for _, company := range s.companies {
		if _, ok := idSet[company.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, company)
	}
	s.companies = kept
	if deleted > 0 {
		s.save()
		s.metrics.Mutation("companies", "bulk_delete")
	}
	return deleted
}

func (s *CompanyStore) GetCompanyByID(id string) (*model.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	company := s.findLocked(id)
	return company, company != nil
}

func (s *CompanyStore) CheckNameExists(name, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nameExistsLocked(name, excludeID)
}

// UpdateLastContacted overwrites the company's last-contacted timestamp.
func (s *CompanyStore) UpdateLastContacted(id string, date time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	company := s.findLocked(id)
	if company == nil {
		return false
	}
	d := date
	company.LastContactedAt = &d
	company.UpdatedAt = time.Now()
	s.save()
	s.metrics.Mutation("companies", "record_contact")
	return true
}

// View state setters.

func (s *CompanyStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

func (s *CompanyStore) SetIndustryFilter(industry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if industry == "" {
		industry = QuickFilterAll
	}
	s.industryFilter = industry
}

func (s *CompanyStore) SetSizeFilter(size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size == "" {
		size = QuickFilterAll
	}
	s.sizeFilter = size
}

func (s *CompanyStore) SetSorting(field string, order model.SortOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortSpec = model.SortSpec{Field: field, Order: order}
}

// Filter condition lifecycle.

func (s *CompanyStore) AddFilter(cond *model.FilterCondition) *model.FilterCondition {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cond.ID == "" {
		cond.ID = newConditionID()
	}
	s.filters = append(s.filters, cond)
	return cond
}

func (s *CompanyStore) UpdateFilter(id string, req *model.UpdateFilterRequest) bool {
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

func (s *CompanyStore) RemoveFilter(id string) bool {
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

func (s *CompanyStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = nil
}

func (s *CompanyStore) Filters() []*model.FilterCondition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.FilterCondition, len(s.filters))
	copy(out, s.filters)
	return out
}

// FilteredAndSorted recomputes the derived company view.
func (s *CompanyStore) FilteredAndSorted() []*model.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.metrics.ViewRecompute("companies")

	filtered := make([]*model.Company, 0, len(s.companies))
	for _, company := range s.companies {
		if !s.matchesSearchLocked(company) {
			continue
		}
		if s.industryFilter != QuickFilterAll && string(company.Industry) != s.industryFilter {
			continue
		}
		if s.sizeFilter != QuickFilterAll && string(company.Size) != s.sizeFilter {
			continue
		}
		if !filter.MatchesAll(s.filters, func(field string) any { return companyFieldValue(company, field) }) {
			continue
		}
		filtered = append(filtered, company)
	}

	spec := s.sortSpec
	sort.SliceStable(filtered, func(i, j int) bool {
		return sortLess(
			companyFieldValue(filtered[i], spec.Field),
			companyFieldValue(filtered[j], spec.Field),
			spec.Order == model.SortDesc,
		)
	})
	return filtered
}

func (s *CompanyStore) matchesSearchLocked(company *model.Company) bool {
	if s.searchQuery == "" {
		return true
	}
	q := s.searchQuery
	return containsFold(company.Name, q) ||
		containsFold(company.Website, q) ||
		containsFold(company.Location, q) ||
		containsFold(company.Description, q)
}

// Derived metrics.

func (s *CompanyStore) TotalCompanies() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.companies)
}

func (s *CompanyStore) CompaniesByIndustry() map[model.Industry][]*model.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byIndustry := make(map[model.Industry][]*model.Company, len(model.Industries))
	for _, industry := range model.Industries {
		byIndustry[industry] = []*model.Company{}
	}
	for _, company := range s.companies {
		byIndustry[company.Industry] = append(byIndustry[company.Industry], company)
	}
	return byIndustry
}

func (s *CompanyStore) CompaniesBySize() map[model.CompanySize][]*model.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bySize := make(map[model.CompanySize][]*model.Company, len(model.CompanySizes))
	for _, size := range model.CompanySizes {
		bySize[size] = []*model.Company{}
	}
	for _, company := range s.companies {
		bySize[company.Size] = append(bySize[company.Size], company)
	}
	return bySize
}

func (s *CompanyStore) findLocked(id string) *model.Company {
	for _, company := range s.companies {
		if company.ID == id {
			return company
		}
	}
	return nil
}

func (s *CompanyStore) nameExistsLocked(name, excludeID string) bool {
	for _, company := range s.companies {
		if company.ID != excludeID && strings.EqualFold(company.Name, name) {
			return true
		}
	}
	return false
}

// companyFieldValue is the company accessor table for the filter engine.
func companyFieldValue(company *model.Company, field string) any {
	switch field {
	case "id":
		return company.ID
	case "name":
		return company.Name
	case "industry":
		return string(company.Industry)
	case "size":
		return string(company.Size)
	case "website":
		return company.Website
	case "location":
		return company.Location
	case "description":
		return company.Description
	case "created_by":
		return company.CreatedBy
	case "account_owner":
		return company.AccountOwner
	case "created_at":
		return company.CreatedAt
	case "updated_at":
		return company.UpdatedAt
	case "last_contacted_at":
		if company.LastContactedAt == nil {
			return nil
		}
		return *company.LastContactedAt
	}
	return nil
}
