package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
)

// domainCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes absent from the map fall back to 500.
var domainCodeHTTPStatus = map[string]int{
	// Generic resource and input errors
	"NOT_FOUND":      http.StatusNotFound,
	"ALREADY_EXISTS": http.StatusConflict,
	"INVALID_INPUT":  http.StatusBadRequest,
	"BAD_REQUEST":    http.StatusBadRequest,
	"UNAUTHORIZED":   http.StatusUnauthorized,
	"FORBIDDEN":      http.StatusForbidden,
	"INVALID_STATE":  http.StatusUnprocessableEntity,

	// Authentication
	"INVALID_CREDENTIALS":     http.StatusUnauthorized,
	"INVALID_TOKEN":           http.StatusUnauthorized,
	"TOKEN_GENERATION_FAILED": http.StatusInternalServerError,
	"USERNAME_TAKEN":          http.StatusConflict,
	"EMAIL_TAKEN":             http.StatusConflict,

	// Catalog
	"INVALID_PARENT":   http.StatusBadRequest,
	"INVALID_CATEGORY": http.StatusBadRequest,
	"INVALID_NAME":     http.StatusBadRequest,
	"CATEGORY_IN_USE":  http.StatusUnprocessableEntity,

	// Marketplace
	"INVALID_PRODUCT":    http.StatusBadRequest,
	"INVALID_PRICE":      http.StatusBadRequest,
	"INVALID_QUANTITY":   http.StatusBadRequest,
	"INVALID_OFFER":      http.StatusBadRequest,
	"INVALID_ADDRESS":    http.StatusBadRequest,
	"INVALID_WINDOW":     http.StatusBadRequest,
	"OFFER_NOT_PICKABLE": http.StatusUnprocessableEntity,
	"EVENT_EXISTS":       http.StatusConflict,

	// Reviews
	"INVALID_RATING":   http.StatusBadRequest,
	"DUPLICATE_REVIEW": http.StatusConflict,

	// Orders and checkout
	"INVALID_USER":       http.StatusBadRequest,
	"INVALID_AMOUNT":     http.StatusBadRequest,
	"EMPTY_CART":         http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"INVALID_OFFER_SET":  http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := domainCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
