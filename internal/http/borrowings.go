package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/circulation"
)

type BorrowingsController struct {
	circulation Circulation
	audit       AuditReader
}

func NewBorrowingsController(circ Circulation, audit AuditReader) *BorrowingsController {
	return &BorrowingsController{
		circulation: circ,
		audit:       audit,
	}
}

type borrowRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	BookID uint `json:"book_id" binding:"required"`
}

// ListBorrowings handles GET /api/borrowings
func (controller *BorrowingsController) ListBorrowings(c *gin.Context) {
	borrowings, err := controller.circulation.ListBorrowings(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list borrowings")
		return
	}
	c.JSON(http.StatusOK, borrowings)
}

// GetBorrowing handles GET /api/borrowings/:id
func (controller *BorrowingsController) GetBorrowing(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrowing, err := controller.circulation.GetBorrowing(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "get borrowing")
		return
	}
	c.JSON(http.StatusOK, borrowing)
}

// Borrow handles POST /api/borrowings
func (controller *BorrowingsController) Borrow(c *gin.Context) {
	var req borrowRequest
	if !bindJSON(c, &req) {
		return
	}

	borrowing, err := controller.circulation.Borrow(c.Request.Context(), req.UserID, req.BookID)
	if err != nil {
		respondDomainError(c, err, "borrow book")
		return
	}
	c.JSON(http.StatusCreated, borrowing)
}

// Return handles PUT /api/borrowings/:id
func (controller *BorrowingsController) Return(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	borrowing, err := controller.circulation.Return(c.Request.Context(), id)
	if errors.Is(err, circulation.ErrBorrowingNotFound) {
		respondNotFound(c, "Active borrowing not found")
		return
	}
	if err != nil {
		respondDomainError(c, err, "return book")
		return
	}
	c.JSON(http.StatusOK, borrowing)
}

// History handles GET /api/borrowings/:id/audit
func (controller *BorrowingsController) History(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := controller.audit.GetEventsForBorrowing(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "borrowing history")
		return
	}
	c.JSON(http.StatusOK, events)
}
