package filter

import (
	"github.com/jwalitptl/salestrack-api/internal/model"
)

// Option is one choice for a select/multi-select field.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// FieldConfig declares a filterable field: its data type, the operators the
// UI should offer for it, and (for selects) the option list. The legal
// operator set is advisory — the evaluator does not reject conditions that
// stray outside it.
type FieldConfig struct {
	Field     string                 `json:"field"`
	Label     string                 `json:"label"`
	DataType  model.FilterDataType   `json:"data_type"`
	Operators []model.FilterOperator `json:"operators"`
	Options   []Option               `json:"options,omitempty"`
}

var textOperators = []model.FilterOperator{
	model.OpEquals, model.OpNotEquals, model.OpContains, model.OpNotContains,
	model.OpStartsWith, model.OpEndsWith, model.OpIsEmpty, model.OpIsNotEmpty,
}

var selectOperators = []model.FilterOperator{
	model.OpEquals, model.OpNotEquals, model.OpIn, model.OpNotIn,
}

var optionalSelectOperators = []model.FilterOperator{
	model.OpEquals, model.OpNotEquals, model.OpIn, model.OpNotIn,
	model.OpIsEmpty, model.OpIsNotEmpty,
}

var dateOperators = []model.FilterOperator{
	model.OpBefore, model.OpAfter, model.OpEqualsDate, model.OpBetweenDates,
}

var optionalDateOperators = []model.FilterOperator{
	model.OpBefore, model.OpAfter, model.OpEqualsDate, model.OpBetweenDates,
	model.OpIsEmpty, model.OpIsNotEmpty,
}

var numberOperators = []model.FilterOperator{
	model.OpEquals, model.OpNotEquals, model.OpGreaterThan, model.OpLessThan,
	model.OpGreaterEqual, model.OpLessEqual, model.OpBetween,
}

// LeadFieldConfigs lists the filterable lead fields.
func LeadFieldConfigs() []FieldConfig {
	return []FieldConfig{
		{Field: "name", Label: "Name", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "company", Label: "Company", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "email", Label: "Email", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "phone", Label: "Phone", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "notes", Label: "Notes", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "status", Label: "Status", DataType: model.DataTypeSelect, Operators: selectOperators,
			Options: statusOptions()},
		{Field: "created_by", Label: "Created By", DataType: model.DataTypeSelect, Operators: selectOperators},
		{Field: "account_owner", Label: "Account Owner", DataType: model.DataTypeSelect, Operators: selectOperators},
		{Field: "created_at", Label: "Created At", DataType: model.DataTypeDate, Operators: dateOperators},
		{Field: "updated_at", Label: "Updated At", DataType: model.DataTypeDate, Operators: dateOperators},
		{Field: "last_contacted_at", Label: "Last Contacted", DataType: model.DataTypeDate, Operators: optionalDateOperators},
	}
}

// CompanyFieldConfigs lists the filterable company fields.
func CompanyFieldConfigs() []FieldConfig {
	return []FieldConfig{
		{Field: "name", Label: "Company Name", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "website", Label: "Website", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "location", Label: "Location", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "description", Label: "Description", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "industry", Label: "Industry", DataType: model.DataTypeSelect, Operators: selectOperators,
			Options: industryOptions()},
		{Field: "size", Label: "Company Size", DataType: model.DataTypeSelect, Operators: selectOperators,
			Options: sizeOptions()},
		{Field: "created_at", Label: "Created At", DataType: model.DataTypeDate, Operators: dateOperators},
		{Field: "updated_at", Label: "Updated At", DataType: model.DataTypeDate, Operators: dateOperators},
		{Field: "last_contacted_at", Label: "Last Contacted", DataType: model.DataTypeDate, Operators: optionalDateOperators},
	}
}

// CallLogFieldConfigs lists the filterable call-log fields.
func CallLogFieldConfigs() []FieldConfig {
	return []FieldConfig{
		{Field: "notes", Label: "Notes", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "other_people", Label: "Other People", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "next_action", Label: "Next Action", DataType: model.DataTypeText, Operators: textOperators},
		{Field: "type", Label: "Type", DataType: model.DataTypeSelect, Operators: selectOperators,
			Options: callTypeOptions()},
		{Field: "outcome", Label: "Outcome", DataType: model.DataTypeSelect, Operators: optionalSelectOperators,
			Options: outcomeOptions()},
		{Field: "duration", Label: "Duration (minutes)", DataType: model.DataTypeNumber, Operators: numberOperators},
		{Field: "date", Label: "Date", DataType: model.DataTypeDate, Operators: dateOperators},
		{Field: "scheduled_follow_up", Label: "Scheduled Follow Up", DataType: model.DataTypeDate, Operators: optionalDateOperators},
	}
}

func statusOptions() []Option {
	opts := make([]Option, 0, len(model.LeadStatuses))
	for _, s := range model.LeadStatuses {
		opts = append(opts, Option{Label: string(s), Value: string(s)})
	}
	return opts
}

func industryOptions() []Option {
	labels := map[model.Industry]string{
		model.IndustryFintech:    "Fintech",
		model.IndustryEcommerce:  "E-commerce",
		model.IndustryHealthcare: "Healthcare",
		model.IndustryEducation:  "Education",
		model.IndustryGaming:     "Gaming",
		model.IndustryLogistics:  "Logistics",
		model.IndustryRealEstate: "Real Estate",
		model.IndustryGovernment: "Government",
		model.IndustryNonProfit:  "Non-profit",
		model.IndustryOther:      "Other",
	}
	opts := make([]Option, 0, len(model.Industries))
	for _, ind := range model.Industries {
		opts = append(opts, Option{Label: labels[ind], Value: string(ind)})
	}
	return opts
}

func sizeOptions() []Option {
	labels := map[model.CompanySize]string{
		model.CompanySizeStartup:    "Startup",
		model.CompanySizeSmall:      "Small",
		model.CompanySizeMedium:     "Medium",
		model.CompanySizeLarge:      "Large",
		model.CompanySizeEnterprise: "Enterprise",
	}
	opts := make([]Option, 0, len(model.CompanySizes))
	for _, size := range model.CompanySizes {
		opts = append(opts, Option{Label: labels[size], Value: string(size)})
	}
	return opts
}

func callTypeOptions() []Option {
	labels := map[model.CallLogType]string{
		model.CallLogTypeEmail:          "Email",
		model.CallLogTypeCall:           "Call",
		model.CallLogTypeWhatsapp:       "WhatsApp",
		model.CallLogTypeConferenceCall: "Conference Call",
		model.CallLogTypePhysical:       "Physical Meeting",
		model.CallLogTypeOther:          "Others",
	}
	opts := make([]Option, 0, len(model.CallLogTypes))
	for _, t := range model.CallLogTypes {
		opts = append(opts, Option{Label: labels[t], Value: string(t)})
	}
	return opts
}

func outcomeOptions() []Option {
	labels := map[model.CallOutcome]string{
		model.CallOutcomeConnected:         "Connected",
		model.CallOutcomeVoicemail:         "Voicemail",
		model.CallOutcomeNoAnswer:          "No Answer",
		model.CallOutcomeBusy:              "Busy",
		model.CallOutcomeMeetingScheduled:  "Meeting Scheduled",
		model.CallOutcomeNotInterested:     "Not Interested",
		model.CallOutcomeCallbackRequested: "Callback Requested",
	}
	opts := make([]Option, 0, len(model.CallOutcomes))
	for _, o := range model.CallOutcomes {
		opts = append(opts, Option{Label: labels[o], Value: string(o)})
	}
	return opts
}
