// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// PageResponse is the envelope shared by every listing endpoint.
type PageResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Data       any   `json:"data"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// Money serializes a decimal amount as a plain JSON number with two decimal
// places.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
