package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	auditRepo "github.com/libraryhub/library/internal/database/audit"
	"github.com/libraryhub/library/internal/entities"
)

type AuditController struct {
	reader AuditReader
}

func NewAuditController(reader AuditReader) *AuditController {
	return &AuditController{
		reader: reader,
	}
}

// GetAuditEvents returns paginated audit events as JSON
// GET /api/audit?action=borrow&limit=50&offset=0
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit", auditRepo.DefaultLimit)
	if !ok {
		return
	}
	if limit == 0 {
		limit = auditRepo.DefaultLimit
	}
	if limit > auditRepo.MaxLimit {
		limit = auditRepo.MaxLimit
	}
	offset, ok := parseIntQuery(c, "offset", 0)
	if !ok {
		return
	}

	action := entities.AuditAction(c.Query("action"))
	switch action {
	case "", entities.AuditActionBorrow, entities.AuditActionReturn:
	default:
		respondBadRequest(c, "invalid action")
		return
	}

	events, total, err := ac.reader.GetEvents(c.Request.Context(), action, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
