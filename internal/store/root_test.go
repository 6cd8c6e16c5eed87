package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/internal/storage"
)

func TestRootReloadsPersistedCollections(t *testing.T) {
	dir := t.TempDir()
	log := newTestLogger()
	persister, err := storage.New(dir, log, nil)
	require.NoError(t, err)

	cfg := RootConfig{DefaultOwner: "Sammy", HotWindowDays: 14, WarmWindowDays: 30}

	first := NewRoot(persister, log, cfg)
	lead := mustAddLead(first.Leads, "Alice", "Acme", "alice@acme.test", "")
	mustAddCompany(first.Companies, "Acme Corp", model.IndustryFintech, model.CompanySizeStartup)
	mustAddCallLog(first.CallLogs, lead.ID, time.Now().AddDate(0, 0, -1), model.CallOutcomeConnected)

	// A fresh root over the same directory sees everything, including the
	// contact date written through the call-log event.
	second := NewRoot(persister, log, cfg)
	assert.Equal(t, 1, second.Leads.TotalLeads())
	assert.Equal(t, 1, second.Companies.TotalCompanies())
	assert.Equal(t, 1, second.CallLogs.TotalCallLogs())

	got, found := second.Leads.GetLeadByID(lead.ID)
	require.True(t, found)
	require.NotNil(t, got.LastContactedAt)
	assert.Equal(t, model.LeadStatusWarm, got.Status)
}

func TestReclassifyLeadsDecaysStaleStatuses(t *testing.T) {
	root := newTestRoot()

	stale := mustAddLead(root.Leads, "Alice", "Acme", "alice@acme.test", "")
	fresh := mustAddLead(root.Leads, "Bob", "Globex", "bob@globex.test", "")
	untouched := mustAddLead(root.Leads, "Carol", "Initech", "carol@initech.test", "Hot")

	mustAddCallLog(root.CallLogs, stale.ID, time.Now().AddDate(0, 0, -40), model.CallOutcomeConnected)
	mustAddCallLog(root.CallLogs, fresh.ID, time.Now().AddDate(0, 0, -2), model.CallOutcomeConnected)

	// The 40-day-old contact left Alice Warm; the sweep corrects that.
	root.Leads.SetStatus(stale.ID, model.LeadStatusWarm)
	changed := root.ReclassifyLeads()
	assert.Equal(t, 1, changed)

	got, _ := root.Leads.GetLeadByID(stale.ID)
	assert.Equal(t, model.LeadStatusCold, got.Status)
	got, _ = root.Leads.GetLeadByID(fresh.ID)
	assert.Equal(t, model.LeadStatusWarm, got.Status)
	// No call history keeps the manual status.
	got, _ = root.Leads.GetLeadByID(untouched.ID)
	assert.Equal(t, model.LeadStatusHot, got.Status)
}
