package handler

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, reminders *ReminderHandler, timers *TimerHandler) {
	v1 := r.Group("/api/v1")

	v1.PUT("/reminders/:id", reminders.HandleSchedule)
	v1.DELETE("/reminders/:id", reminders.HandleCancel)
	v1.POST("/reminders/:id/acknowledge", reminders.HandleAcknowledge)
	v1.POST("/reminders/:id/actions", reminders.HandleAction)

	v1.GET("/settings/snooze", reminders.HandleGetSnooze)
	v1.PUT("/settings/snooze", reminders.HandleSetSnooze)

	if timers != nil {
		v1.POST("/timer/fire", timers.HandleFire)
	}
}
