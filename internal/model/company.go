package model

import (
	"time"
)

type Industry string

const (
	IndustryFintech    Industry = "fintech"
	IndustryEcommerce  Industry = "e-commerce"
	IndustryHealthcare Industry = "healthcare"
	IndustryEducation  Industry = "education"
	IndustryGaming     Industry = "gaming"
	IndustryLogistics  Industry = "logistics"
	IndustryRealEstate Industry = "real-estate"
	IndustryGovernment Industry = "government"
	IndustryNonProfit  Industry = "non-profit"
	IndustryOther      Industry = "other"
)

var Industries = []Industry{
	IndustryFintech, IndustryEcommerce, IndustryHealthcare, IndustryEducation,
	IndustryGaming, IndustryLogistics, IndustryRealEstate, IndustryGovernment,
	IndustryNonProfit, IndustryOther,
}

type CompanySize string

const (
	CompanySizeStartup    CompanySize = "startup"
	CompanySizeSmall      CompanySize = "small"
	CompanySizeMedium     CompanySize = "medium"
	CompanySizeLarge      CompanySize = "large"
	CompanySizeEnterprise CompanySize = "enterprise"
)

var CompanySizes = []CompanySize{
	CompanySizeStartup, CompanySizeSmall, CompanySizeMedium,
	CompanySizeLarge, CompanySizeEnterprise,
}

type Company struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Industry        Industry    `json:"industry"`
	Size            CompanySize `json:"size"`
	Website         string      `json:"website"`
	Location        string      `json:"location"`
	Description     string      `json:"description"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	CreatedBy       string      `json:"created_by"`
	AccountOwner    string      `json:"account_owner"`
	LastContactedAt *time.Time  `json:"last_contacted_at,omitempty"`
}

type CreateCompanyRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	Industry    string `json:"industry" binding:"required" validate:"required"`
	Size        string `json:"size" binding:"required" validate:"required"`
	Website     string `json:"website"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type UpdateCompanyRequest struct {
	Name            *string    `json:"name"`
	Industry        *string    `json:"industry"`
	Size            *string    `json:"size"`
	Website         *string    `json:"website"`
	Location        *string    `json:"location"`
	Description     *string    `json:"description"`
	AccountOwner    *string    `json:"account_owner"`
	LastContactedAt *time.Time `json:"last_contacted_at"`
}
