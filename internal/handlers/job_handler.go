package handlers

import (
	"net/http"

	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobs *services.JobService
}

func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// @Summary Background job status
// @Description Counters of the worker that mails receipts and writes audit rows
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} jobs.WorkerStats
// @Router /jobs/status [get]
func (h *JobHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.jobs.GetStatus())
}
