package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// FindCommonSlots отдаёт общие еженедельные окна доступности пары
func (h *Handler) FindCommonSlots(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Query("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		respondBadRequest(c, "student_id is required")
		return
	}
	teacherID, err := strconv.ParseInt(c.Query("teacher_id"), 10, 64)
	if err != nil || teacherID <= 0 {
		respondBadRequest(c, "teacher_id is required")
		return
	}

	windows, err := h.scheduling.FindCommonSlots(c.Request.Context(), studentID, teacherID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, windows)
}

type suggestRequest struct {
	EnrollmentID    int64 `json:"enrollment_id" binding:"required"`
	DurationMinutes int   `json:"duration_minutes"`
}

// SuggestLessonTimes отдаёт проверенные предложения времени занятий.
// Пустой список - нормальный ответ, а не ошибка.
func (h *Handler) SuggestLessonTimes(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "enrollment_id is required")
		return
	}
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 60
	}

	proposals, err := h.scheduling.SuggestLessonTimes(c.Request.Context(), req.EnrollmentID, req.DurationMinutes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, proposals)
}
