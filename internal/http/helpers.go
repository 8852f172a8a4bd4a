package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/database/books"
	"github.com/libraryhub/library/internal/database/users"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // field-level validation messages
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}

// respondConflict sends a 409 Conflict response.
func respondConflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	if requestID := c.GetString(ContextKeyRequestID); requestID != "" {
		log.Printf("Internal error (%s) [request %s]: %v", context, requestID, err)
	} else {
		log.Printf("Internal error (%s): %v", context, err)
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
}

// respondDomainError maps repository and circulation errors to HTTP responses.
func respondDomainError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, circulation.ErrBookUnavailable):
		respondBadRequest(c, "Book is not available")
	case errors.Is(err, circulation.ErrBookNotFound), errors.Is(err, books.ErrBookNotFound):
		respondNotFound(c, "Book not found")
	case errors.Is(err, circulation.ErrUserNotFound), errors.Is(err, users.ErrUserNotFound):
		respondNotFound(c, "User not found")
	case errors.Is(err, circulation.ErrAlreadyReturned):
		respondNotFound(c, "Borrowing already returned")
	case errors.Is(err, circulation.ErrBorrowingNotFound):
		respondNotFound(c, "Borrowing not found")
	case errors.Is(err, books.ErrDuplicateISBN):
		respondConflict(c, "A book with this ISBN already exists")
	case errors.Is(err, users.ErrDuplicateEmail):
		respondConflict(c, "A user with this email already exists")
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseIntQuery reads a non-negative integer query parameter, falling back to def.
func parseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
