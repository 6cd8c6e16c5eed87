package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
	ValidateField(field string, value interface{}, rules ...string) error
}

type validator struct {
	tagName string
}

func New() Validator {
	return &validator{
		tagName: "validate",
	}
}

func (v *validator) Validate(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		tag := field.Tag.Get(v.tagName)
		if tag == "" {
			continue
		}

		if err := v.ValidateField(field.Name, value.Field(i).Interface(), strings.Split(tag, ",")...); err != nil {
			return err
		}
	}

	return nil
}

func (v *validator) ValidateField(field string, value interface{}, rules ...string) error {
	for _, rule := range rules {
		if err := v.validateRule(field, value, rule); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) validateRule(field string, value interface{}, rule string) error {
	switch {
	case rule == "required":
		if isZero(value) {
			return fmt.Errorf("%s is required", field)
		}
	case strings.HasPrefix(rule, "min="):
		min, _ := strconv.Atoi(strings.TrimPrefix(rule, "min="))
		if str, ok := value.(string); ok && len(str) < min {
			return fmt.Errorf("%s must be at least %d characters long", field, min)
		}
	case strings.HasPrefix(rule, "max="):
		max, _ := strconv.Atoi(strings.TrimPrefix(rule, "max="))
		if str, ok := value.(string); ok && len(str) > max {
			return fmt.Errorf("%s must not exceed %d characters", field, max)
		}
	case rule == "email":
		if str, ok := value.(string); ok {
			if !isValidEmail(str) {
				return fmt.Errorf("%s must be a valid email", field)
			}
		}
	case rule == "phone":
		if str, ok := value.(string); ok && str != "" {
			if !isValidPhone(str) {
				return fmt.Errorf("%s must be a valid phone number", field)
			}
		}
	}
	return nil
}

func isZero(value interface{}) bool {
	v := reflect.ValueOf(value)
	return !v.IsValid() || reflect.DeepEqual(value, reflect.Zero(v.Type()).Interface())
}

func isValidEmail(email string) bool {
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	match, _ := regexp.MatchString(pattern, email)
	return match
}

// isValidPhone accepts an optional leading + followed by at least seven
// digits, ignoring spaces, dashes and parentheses.
func isValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	match, _ := regexp.MatchString(`^\+?\d{7,15}$`, cleaned)
	return match
}
