package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// BindingError flattens gin's binding failures into one readable message.
func BindingError(err error) *Response {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				parts = append(parts, strings.ToLower(fe.Field())+" is required")
			default:
				parts = append(parts, strings.ToLower(fe.Field())+" is invalid")
			}
		}
		return NewErrorResponse(strings.Join(parts, "; "))
	}
	return NewErrorResponse(err.Error())
}
