package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"
)

// TimerDelivery resolves a matured task into the payload to fire.
type TimerDelivery interface {
	Deliver(ctx context.Context, task *taskqueue.TimerTask) (*domain.AlarmPayload, error)
}

type TimerHandler struct {
	delivery TimerDelivery
	fire     *alarm.FireHandler
}

func NewTimerHandler(delivery TimerDelivery, fire *alarm.FireHandler) *TimerHandler {
	return &TimerHandler{
		delivery: delivery,
		fire:     fire,
	}
}

type fireResponse struct {
	Status string `json:"status"`
}

// HandleFire is the task queue callback. Anything that cannot be fired is
// answered with 200 so the queue stops redelivering it; only transient
// failures ask for a retry.
func (h *TimerHandler) HandleFire(c *gin.Context) {
	ctx := c.Request.Context()

	var task taskqueue.TimerTask
	if err := c.ShouldBindJSON(&task); err != nil {
		slog.WarnContext(ctx, "malformed timer callback ignored",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusOK, fireResponse{Status: string(alarm.FireIgnored)})
		return
	}
	if err := task.Validate(); err != nil {
		slog.WarnContext(ctx, "invalid timer callback ignored",
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusOK, fireResponse{Status: string(alarm.FireIgnored)})
		return
	}

	payload, err := h.delivery.Deliver(ctx, &task)
	if err != nil {
		if errors.Is(err, domain.ErrStaleTimerRegistration) {
			slog.InfoContext(ctx, "stale timer callback dropped",
				slog.String("timer_key", task.Key().String()),
			)
			c.JSON(http.StatusOK, fireResponse{Status: "stale"})
			return
		}
		slog.ErrorContext(ctx, "failed to accept timer callback",
			slog.String("timer_key", task.Key().String()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusServiceUnavailable, "processing_error", "timer could not be accepted")
		return
	}

	outcome := h.fire.Fire(ctx, *payload)
	c.JSON(http.StatusOK, fireResponse{Status: string(outcome)})
}
