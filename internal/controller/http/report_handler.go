package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MonthlyLessonStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		respondBadRequest(c, "year is required")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		respondBadRequest(c, "month is required")
		return
	}

	stats, err := h.reports.MonthlyLessonStats(c.Request.Context(), year, month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

func (h *Handler) TeacherWorkload(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		respondBadRequest(c, "from must be a date YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		respondBadRequest(c, "to must be a date YYYY-MM-DD")
		return
	}

	workloads, err := h.reports.TeacherWorkload(c.Request.Context(), from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, workloads)
}

func (h *Handler) CoursePopularity(c *gin.Context) {
	courses, err := h.reports.CoursePopularity(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, courses)
}
