package handler

import "github.com/kioskcrm/backend/internal/interfaces/http/dto"

// Swagger-only envelopes. Handlers write responses through the dto helpers;
// these types describe the same JSON shape to swag.

// APIResponse is the success envelope. Meta is present on paginated lists.
// @Description Envelope for a successful call, data typed per endpoint
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse is the failure envelope.
// @Description Envelope for a failed call; error.code is an ERR_* constant
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
