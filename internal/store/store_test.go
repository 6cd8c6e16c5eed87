package store

import (
	"io"
	"time"

	"github.com/jwalitptl/salestrack-api/internal/model"
	"github.com/jwalitptl/salestrack-api/pkg/logger"
)

// nullPersister keeps nothing: store logic tests don't need disk.
type nullPersister struct{}

func (nullPersister) Load(key string, v any) error { return nil }
func (nullPersister) Save(key string, v any)       {}

func newTestLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Output: io.Discard,
	})
}

func newTestRoot() *Root {
	return NewRoot(nullPersister{}, newTestLogger(), RootConfig{
		DefaultOwner:   "Sammy",
		HotWindowDays:  14,
		WarmWindowDays: 30,
	})
}

func mustAddLead(s *LeadStore, name, company, email, status string) *model.Lead {
	lead, err := s.AddLead(&model.CreateLeadRequest{
		Name:    name,
		Company: company,
		Email:   email,
		Status:  status,
	})
	if err != nil {
		panic(err)
	}
	return lead
}

func mustAddCallLog(s *CallLogStore, leadID string, date time.Time, outcome model.CallOutcome) *model.CallLog {
	callLog, err := s.AddCallLog(&model.CreateCallLogRequest{
		LeadID:  leadID,
		Type:    string(model.CallLogTypeCall),
		Date:    date,
		Outcome: string(outcome),
	})
	if err != nil {
		panic(err)
	}
	return callLog
}
