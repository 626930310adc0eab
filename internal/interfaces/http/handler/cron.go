package handler

import (
	"github.com/gin-gonic/gin"
	reminderapp "github.com/kioskcrm/backend/internal/application/reminder"
)

// CronHandler exposes scheduled jobs to an external scheduler. Routes sit
// behind the cron secret, not user auth.
type CronHandler struct {
	BaseHandler
	reminderService *reminderapp.ReminderService
}

// NewCronHandler creates a new CronHandler
func NewCronHandler(reminderService *reminderapp.ReminderService) *CronHandler {
	return &CronHandler{reminderService: reminderService}
}

// Reminders godoc
// @ID           runReminders
//
//	@Summary		Send due-date reminders for every tenant
//	@Tags			cron
//	@Produce		json
//	@Success		200	{object}	APIResponse[reminderapp.RunResult]
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		CronSecret
//	@Router			/cron/reminders [post]
func (h *CronHandler) Reminders(c *gin.Context) {
	result, err := h.reminderService.Run(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
