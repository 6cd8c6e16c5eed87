package store

import (
	"time"

	"github.com/jwalitptl/salestrack-api/internal/model"
)

// Classifier derives a lead's status from its call history. The thresholds
// are configuration, not code: the exact promotion rule is a business
// heuristic that product may still tune.
type Classifier struct {
	// HotWindow promotes to Hot when a meeting was scheduled this recently.
	HotWindow time.Duration
	// WarmWindow keeps a lead Warm while any contact is this recent.
	WarmWindow time.Duration
}

// NewClassifier builds a classifier from day-granular config values,
// falling back to 14/30 days when unset.
func NewClassifier(hotWindowDays, warmWindowDays int) *Classifier {
	if hotWindowDays <= 0 {
		hotWindowDays = 14
	}
	if warmWindowDays <= 0 {
		warmWindowDays = 30
	}
	return &Classifier{
		HotWindow:  time.Duration(hotWindowDays) * 24 * time.Hour,
		WarmWindow: time.Duration(warmWindowDays) * 24 * time.Hour,
	}
}

// Classify is pure: given a lead and all of its call logs it returns the
// derived status. A lead with no logs keeps whatever status was assigned
// manually.
func (c *Classifier) Classify(lead *model.Lead, logs []*model.CallLog) model.LeadStatus {
	if len(logs) == 0 {
		return lead.Status
	}

	now := time.Now()
	var lastContact time.Time
	for _, callLog := range logs {
		if callLog.Date.After(lastContact) {
			lastContact = callLog.Date
		}
		if callLog.Outcome == model.CallOutcomeMeetingScheduled &&
			now.Sub(callLog.Date) <= c.HotWindow {
			return model.LeadStatusHot
		}
	}

	if now.Sub(lastContact) <= c.WarmWindow {
		return model.LeadStatusWarm
	}
	return model.LeadStatusCold
}
