package model

import (
	"time"
)

type CallLogType string

const (
	CallLogTypeEmail          CallLogType = "email"
	CallLogTypeCall           CallLogType = "call"
	CallLogTypeWhatsapp       CallLogType = "whatsapp"
	CallLogTypeConferenceCall CallLogType = "conference-call"
	CallLogTypePhysical       CallLogType = "physical-meeting"
	CallLogTypeOther          CallLogType = "others"
)

var CallLogTypes = []CallLogType{
	CallLogTypeEmail, CallLogTypeCall, CallLogTypeWhatsapp,
	CallLogTypeConferenceCall, CallLogTypePhysical, CallLogTypeOther,
}

type CallOutcome string

const (
	CallOutcomeConnected         CallOutcome = "connected"
	CallOutcomeVoicemail         CallOutcome = "voicemail"
	CallOutcomeNoAnswer          CallOutcome = "no-answer"
	CallOutcomeBusy              CallOutcome = "busy"
	CallOutcomeMeetingScheduled  CallOutcome = "meeting-scheduled"
	CallOutcomeNotInterested     CallOutcome = "not-interested"
	CallOutcomeCallbackRequested CallOutcome = "callback-requested"
)

var CallOutcomes = []CallOutcome{
	CallOutcomeConnected, CallOutcomeVoicemail, CallOutcomeNoAnswer,
	CallOutcomeBusy, CallOutcomeMeetingScheduled, CallOutcomeNotInterested,
	CallOutcomeCallbackRequested,
}

// CallLog records one touch point with a lead. Duration and Outcome are
// optional because some communication types (email, whatsapp) have neither.
type CallLog struct {
	ID                string      `json:"id"`
	LeadID            string      `json:"lead_id"`
	Type              CallLogType `json:"type"`
	Date              time.Time   `json:"date"`
	Duration          *int        `json:"duration,omitempty"` // minutes
	Outcome           CallOutcome `json:"outcome,omitempty"`
	Notes             string      `json:"notes"`
	OtherPeople       string      `json:"other_people"`
	NextAction        string      `json:"next_action,omitempty"`
	ScheduledFollowUp *time.Time  `json:"scheduled_follow_up,omitempty"`
}

type CreateCallLogRequest struct {
	LeadID            string     `json:"lead_id" binding:"required" validate:"required"`
	Type              string     `json:"type" binding:"required" validate:"required"`
	Date              time.Time  `json:"date" binding:"required"`
	Duration          *int       `json:"duration"`
	Outcome           string     `json:"outcome"`
	Notes             string     `json:"notes"`
	OtherPeople       string     `json:"other_people"`
	NextAction        string     `json:"next_action"`
	ScheduledFollowUp *time.Time `json:"scheduled_follow_up"`
}

type UpdateCallLogRequest struct {
	Type              *string    `json:"type"`
	Date              *time.Time `json:"date"`
	Duration          *int       `json:"duration"`
	Outcome           *string    `json:"outcome"`
	Notes             *string    `json:"notes"`
	OtherPeople       *string    `json:"other_people"`
	NextAction        *string    `json:"next_action"`
	ScheduledFollowUp *time.Time `json:"scheduled_follow_up"`
}
