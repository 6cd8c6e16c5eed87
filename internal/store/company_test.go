package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/pkg/errors"
)

func mustAddCompany(s *CompanyStore, name string, industry model.Industry, size model.CompanySize) *model.Company {
	company, err := s.AddCompany(&model.CreateCompanyRequest{
		Name:     name,
		Industry: string(industry),
		Size:     string(size),
	})
	if err != nil {
		panic(err)
	}
	return company
}

func TestAddCompany(t *testing.T) {
	root := newTestRoot()

	company, err := root.Companies.AddCompany(&model.CreateCompanyRequest{
		Name:     "Acme Corp",
		Industry: string(model.IndustryFintech),
		Size:     string(model.CompanySizeStartup),
		Website:  "https://acme.test",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, company.ID)
	assert.Equal(t, "Sammy", company.AccountOwner)
	assert.Equal(t, model.IndustryFintech, company.Industry)

	_, err = root.Companies.AddCompany(&model.CreateCompanyRequest{Name: "No Industry"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrBadRequest, errors.CodeOf(err))
}

func TestAddCompanyDuplicateName(t *testing.T) {
	root := newTestRoot()
	mustAddCompany(root.Companies, "Acme Corp", model.IndustryFintech, model.CompanySizeStartup)

	_, err := root.Companies.AddCompany(&model.CreateCompanyRequest{
		Name:     "ACME CORP",
		Industry: string(model.IndustryGaming),
		Size:     string(model.CompanySizeSmall),
	})
	require.Error(t, err)
	assert.True(t, errors.IsDuplicate(err))
	assert.Equal(t, 1, root.Companies.TotalCompanies())
}

func TestUpdateCompany(t *testing.T) {
	root := newTestRoot()
	acme := mustAddCompany(root.Companies, "Acme Corp", model.IndustryFintech, model.CompanySizeStartup)
	globex := mustAddCompany(root.Companies, "Globex", model.IndustryGaming, model.CompanySizeLarge)

	// Renaming onto another company's name is rejected.
	taken := "Acme Corp"
	_, err := root.Companies.UpdateCompany(globex.ID, &model.UpdateCompanyRequest{Name: &taken})
	require.Error(t, err)
	assert.True(t, errors.IsDuplicate(err))

	size := string(model.CompanySizeMedium)
	updated, err := root.Companies.UpdateCompany(acme.ID, &model.UpdateCompanyRequest{Size: &size})
	require.NoError(t, err)
	assert.True(t, updated)

	got, found := root.Companies.GetCompanyByID(acme.ID)
	require.True(t, found)
	assert.Equal(t, model.CompanySizeMedium, got.Size)

	updated, err = root.Companies.UpdateCompany("no-such-id", &model.UpdateCompanyRequest{Size: &size})
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestDeleteCompanies(t *testing.T) {
	root := newTestRoot()
	a := mustAddCompany(root.Companies, "Acme", model.IndustryFintech, model.CompanySizeStartup)
	mustAddCompany(root.Companies, "Globex", model.IndustryGaming, model.CompanySizeLarge)

	assert.False(t, root.Companies.DeleteCompany("no-such-id"))
	assert.Equal(t, 1, root.Companies.DeleteCompanies([]string{a.ID, "no-such-id"}))
	assert.Equal(t, 1, root.Companies.TotalCompanies())
}

func TestCheckNameExists(t *testing.T) {
	root := newTestRoot()
	company := mustAddCompany(root.Companies, "Acme Corp", model.IndustryFintech, model.CompanySizeStartup)

	assert.True(t, root.Companies.CheckNameExists("acme corp", ""))
	assert.False(t, root.Companies.CheckNameExists("acme corp", company.ID))
	assert.False(t, root.Companies.CheckNameExists("Globex", ""))
}

func TestCompanyQuickFilters(t *testing.T) {
	root := newTestRoot()
	mustAddCompany(root.Companies, "Acme", model.IndustryFintech, model.CompanySizeStartup)
	mustAddCompany(root.Companies, "Globex", model.IndustryFintech, model.CompanySizeLarge)
	mustAddCompany(root.Companies, "Initech", model.IndustryGaming, model.CompanySizeLarge)

	root.Companies.SetIndustryFilter(string(model.IndustryFintech))
	assert.Len(t, root.Companies.FilteredAndSorted(), 2)

	// Quick filters compose with AND.
	root.Companies.SetSizeFilter(string(model.CompanySizeLarge))
	view := root.Companies.FilteredAndSorted()
	require.Len(t, view, 1)
	assert.Equal(t, "Globex", view[0].Name)

	root.Companies.SetIndustryFilter("")
	root.Companies.SetSizeFilter("")
	assert.Len(t, root.Companies.FilteredAndSorted(), 3)
}

func TestCompanyAdvancedFilter(t *testing.T) {
	root := newTestRoot()
	mustAddCompany(root.Companies, "Acme", model.IndustryFintech, model.CompanySizeStartup)
	mustAddCompany(root.Companies, "Globex", model.IndustryGaming, model.CompanySizeLarge)

	root.Companies.AddFilter(&model.FilterCondition{
		Field:    "industry",
		Operator: model.OpIn,
		Value:    []any{"fintech", "healthcare"},
		DataType: model.DataTypeSelect,
	})
	view := root.Companies.FilteredAndSorted()
	require.Len(t, view, 1)
	assert.Equal(t, "Acme", view[0].Name)
}

func TestUpdateLastContacted(t *testing.T) {
	root := newTestRoot()
	company := mustAddCompany(root.Companies, "Acme", model.IndustryFintech, model.CompanySizeStartup)

	when := time.Now().AddDate(0, 0, -3)
	assert.True(t, root.Companies.UpdateLastContacted(company.ID, when))
	assert.False(t, root.Companies.UpdateLastContacted("no-such-id", when))

	got, _ := root.Companies.GetCompanyByID(company.ID)
	require.NotNil(t, got.LastContactedAt)
	assert.True(t, got.LastContactedAt.Equal(when))
}

func TestCompaniesByIndustryAndSize(t *testing.T) {
	root := newTestRoot()
	mustAddCompany(root.Companies, "Acme", model.IndustryFintech, model.CompanySizeStartup)
	mustAddCompany(root.Companies, "Globex", model.IndustryFintech, model.CompanySizeLarge)

	byIndustry := root.Companies.CompaniesByIndustry()
	assert.Len(t, byIndustry[model.IndustryFintech], 2)
	assert.Empty(t, byIndustry[model.IndustryGaming])

	bySize := root.Companies.CompaniesBySize()
	assert.Len(t, bySize[model.CompanySizeStartup], 1)
	assert.Len(t, bySize[model.CompanySizeLarge], 1)
}
