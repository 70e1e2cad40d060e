package http

import (
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createEnrollmentRequest struct {
	StudentID  int64           `json:"student_id" binding:"required"`
	TeacherID  int64           `json:"teacher_id" binding:"required"`
	CourseID   int64           `json:"course_id" binding:"required"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

func (h *Handler) CreateEnrollment(c *gin.Context) {
	var req createEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid enrollment payload: "+err.Error())
		return
	}

	enrollment := &model.Enrollment{
		StudentID:  req.StudentID,
		TeacherID:  req.TeacherID,
		CourseID:   req.CourseID,
		HourlyRate: req.HourlyRate,
	}

	if err := h.enrollments.CreateEnrollment(c.Request.Context(), enrollment); err != nil {
		h.respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, enrollment)
}

// ListEnrollments отдаёт записи, опционально отфильтрованные по стороне
func (h *Handler) ListEnrollments(c *gin.Context) {
	ctx := c.Request.Context()

	if raw := c.Query("student_id"); raw != "" {
		studentID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid student_id")
			return
		}
		enrollments, err := h.enrollments.GetEnrollmentsByStudent(ctx, studentID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, enrollments)
		return
	}

	if raw := c.Query("teacher_id"); raw != "" {
		teacherID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondBadRequest(c, "invalid teacher_id")
			return
		}
		enrollments, err := h.enrollments.GetEnrollmentsByTeacher(ctx, teacherID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, enrollments)
		return
	}

	enrollments, err := h.enrollments.GetAllEnrollments(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, enrollments)
}

func (h *Handler) GetEnrollment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := h.enrollments.GetEnrollmentByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, enrollment)
}

type setEnrollmentActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *Handler) SetEnrollmentActive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req setEnrollmentActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "is_active is required")
		return
	}

	if err := h.enrollments.SetEnrollmentActive(c.Request.Context(), id, *req.IsActive); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "enrollment updated")
}

func (h *Handler) DeleteEnrollment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.enrollments.DeleteEnrollment(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "enrollment deleted")
}
