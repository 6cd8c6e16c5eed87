package model

import (
	"time"
)

type LeadStatus string

const (
	LeadStatusHot  LeadStatus = "Hot"
	LeadStatusWarm LeadStatus = "Warm"
	LeadStatusCold LeadStatus = "Cold"
)

// LeadStatuses lists every status in display order.
var LeadStatuses = []LeadStatus{LeadStatusHot, LeadStatusWarm, LeadStatusCold}

type Lead struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Company         string     `json:"company"`
	Phone           string     `json:"phone"`
	Email           string     `json:"email"`
	Status          LeadStatus `json:"status"`
	Notes           string     `json:"notes"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CreatedBy       string     `json:"created_by"`
	AccountOwner    string     `json:"account_owner"`
	LastContactedAt *time.Time `json:"last_contacted_at,omitempty"`
}

type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required" validate:"required"`
	Company string `json:"company" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"required" validate:"required,email"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

// UpdateLeadRequest carries partial updates; nil fields are left untouched.
type UpdateLeadRequest struct {
	Name            *string    `json:"name"`
	Company         *string    `json:"company"`
	Phone           *string    `json:"phone"`
	Email           *string    `json:"email"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
	AccountOwner    *string    `json:"account_owner"`
	LastContactedAt *time.Time `json:"last_contacted_at"`
}
