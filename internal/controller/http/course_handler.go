package http

import (
	"net/http"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCourse(c *gin.Context) {
	var course model.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		respondBadRequest(c, "invalid course payload: "+err.Error())
		return
	}
	if course.Name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	if err := h.courses.CreateCourse(c.Request.Context(), &course); err != nil {
		h.respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, course)
}

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.courses.GetAllCourses(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, courses)
}

func (h *Handler) GetCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	course, err := h.courses.GetCourseByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var course model.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		respondBadRequest(c, "invalid course payload: "+err.Error())
		return
	}
	course.ID = id

	if err := h.courses.UpdateCourse(c.Request.Context(), &course); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, course)
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.courses.DeleteCourse(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "course deleted")
}
