package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"
)

type ReminderHandler struct {
	scheduler  *alarm.Scheduler
	dispatcher *alarm.Dispatcher
}

func NewReminderHandler(scheduler *alarm.Scheduler, dispatcher *alarm.Dispatcher) *ReminderHandler {
	return &ReminderHandler{
		scheduler:  scheduler,
		dispatcher: dispatcher,
	}
}

type scheduleRequest struct {
	MedicineName string `json:"medicine_name"`
	Hour         *int   `json:"hour" binding:"required"`
	Minute       *int   `json:"minute" binding:"required"`
}

type scheduleResponse struct {
	ReminderID  int       `json:"reminder_id"`
	NextTrigger time.Time `json:"next_trigger"`
	Armed       bool      `json:"armed"`
	Exact       bool      `json:"exact"`
}

type actionRequest struct {
	Action       string `json:"action" binding:"required"`
	MedicineName string `json:"medicine_name"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
}

type snoozeRequest struct {
	Minutes int `json:"minutes" binding:"required,min=1,max=1440"`
}

type snoozeResponse struct {
	Minutes int `json:"minutes"`
}

func (h *ReminderHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := reminderID(c)
	if !ok {
		return
	}

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "schedule request validation failed",
			slog.Int("reminder_id", id),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result, err := h.scheduler.Schedule(ctx, domain.ReminderAlarm{
		ID:           id,
		MedicineName: req.MedicineName,
		Hour:         *req.Hour,
		Minute:       *req.Minute,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduleResponse{
		ReminderID:  id,
		NextTrigger: result.NextTrigger,
		Armed:       result.Armed,
		Exact:       result.Exact,
	})
}

func (h *ReminderHandler) HandleCancel(c *gin.Context) {
	id, ok := reminderID(c)
	if !ok {
		return
	}

	if err := h.scheduler.Cancel(c.Request.Context(), id); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) HandleAcknowledge(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := reminderID(c)
	if !ok {
		return
	}

	if err := h.scheduler.Acknowledge(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to acknowledge reminder",
			slog.Int("reminder_id", id),
			slog.String("error", err.Error()),
		)
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) HandleAction(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := reminderID(c)
	if !ok {
		return
	}

	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	action, err := domain.ParseAlertAction(req.Action)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	err = h.dispatcher.Dispatch(ctx, domain.UserAction{
		ReminderID:   id,
		Action:       action,
		MedicineName: req.MedicineName,
		Hour:         req.Hour,
		Minute:       req.Minute,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReminderHandler) HandleGetSnooze(c *gin.Context) {
	c.JSON(http.StatusOK, snoozeResponse{Minutes: h.scheduler.GetSnoozeDuration(c.Request.Context())})
}

func (h *ReminderHandler) HandleSetSnooze(c *gin.Context) {
	ctx := c.Request.Context()

	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if err := h.scheduler.SetSnoozeDuration(ctx, req.Minutes); err != nil {
		slog.ErrorContext(ctx, "failed to update snooze duration",
			slog.Int("minutes", req.Minutes),
			slog.String("error", err.Error()),
		)
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snoozeResponse{Minutes: req.Minutes})
}
