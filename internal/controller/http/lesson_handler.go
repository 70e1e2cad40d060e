package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
)

type createLessonRequest struct {
	EnrollmentID int64     `json:"enrollment_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	Status       string    `json:"status"`
	Location     string    `json:"location"`
	Notes        string    `json:"notes"`
}

func (h *Handler) CreateLesson(c *gin.Context) {
	var req createLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid lesson payload: "+err.Error())
		return
	}

	lesson := &model.Lesson{
		EnrollmentID: req.EnrollmentID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Status:       model.LessonStatus(req.Status),
		Location:     req.Location,
		Notes:        req.Notes,
	}

	if err := h.lessons.CreateLesson(c.Request.Context(), lesson); err != nil {
		h.respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, lesson)
}

// ListLessons отдаёт занятия, опционально отфильтрованные по стороне или записи
func (h *Handler) ListLessons(c *gin.Context) {
	ctx := c.Request.Context()

	filters := []struct {
		param string
		fetch func(int64) ([]*model.Lesson, error)
	}{
		{"enrollment_id", func(id int64) ([]*model.Lesson, error) { return h.lessons.GetLessonsByEnrollment(ctx, id) }},
		{"student_id", func(id int64) ([]*model.Lesson, error) { return h.lessons.GetLessonsByStudent(ctx, id) }},
		{"teacher_id", func(id int64) ([]*model.Lesson, error) { return h.lessons.GetLessonsByTeacher(ctx, id) }},
	}

	for _, f := range filters {
		raw := c.Query(f.param)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid "+f.param)
			return
		}
		lessons, err := f.fetch(id)
		if err != nil {
			h.respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, lessons)
		return
	}

	lessons, err := h.lessons.GetAllLessons(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, lessons)
}

func (h *Handler) GetLesson(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	lesson, err := h.lessons.GetLessonByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, lesson)
}

type updateLessonRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
}

func (h *Handler) UpdateLesson(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid lesson payload: "+err.Error())
		return
	}

	lesson, err := h.lessons.UpdateLesson(c.Request.Context(), id, req.StartTime, req.EndTime, req.Location, req.Notes)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, lesson)
}

type updateLessonStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateLessonStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req updateLessonStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	lesson, err := h.lessons.UpdateLessonStatus(c.Request.Context(), id, model.LessonStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, lesson)
}

func (h *Handler) DeleteLesson(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.lessons.DeleteLesson(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "lesson deleted")
}
