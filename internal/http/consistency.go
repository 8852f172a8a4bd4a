package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/tasks"
)

type ConsistencyController struct {
	checker  ConsistencyChecker
	schedule NextRunReporter
}

func NewConsistencyController(checker ConsistencyChecker, schedule NextRunReporter) *ConsistencyController {
	return &ConsistencyController{
		checker:  checker,
		schedule: schedule,
	}
}

type consistencyResponse struct {
	*circulation.ConsistencyReport
	Consistent bool       `json:"consistent"`
	NextCheck  *time.Time `json:"next_check,omitempty"`
}

// Check handles GET /api/admin/consistency
// Runs the availability check synchronously.
func (cc *ConsistencyController) Check(c *gin.Context) {
	report, err := cc.checker.CheckConsistency(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "consistency check")
		return
	}

	resp := consistencyResponse{
		ConsistencyReport: report,
		Consistent:        report.Consistent(),
	}
	if cc.schedule != nil {
		resp.NextCheck = cc.schedule.NextRunTime(tasks.CheckAvailabilityQueue)
	}
	c.JSON(http.StatusOK, resp)
}
