package http

import (
	"net/http"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTeacher(c *gin.Context) {
	var teacher model.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		respondBadRequest(c, "invalid teacher payload: "+err.Error())
		return
	}
	if teacher.Name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	if err := h.teachers.CreateTeacher(c.Request.Context(), &teacher); err != nil {
		h.respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, teacher)
}

func (h *Handler) ListTeachers(c *gin.Context) {
	teachers, err := h.teachers.GetAllTeachers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, teachers)
}

func (h *Handler) GetTeacher(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	teacher, err := h.teachers.GetTeacherByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, teacher)
}

func (h *Handler) UpdateTeacher(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var teacher model.Teacher
	if err := c.ShouldBindJSON(&teacher); err != nil {
		respondBadRequest(c, "invalid teacher payload: "+err.Error())
		return
	}
	teacher.ID = id

	if err := h.teachers.UpdateTeacher(c.Request.Context(), &teacher); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, teacher)
}

func (h *Handler) DeleteTeacher(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.teachers.DeleteTeacher(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "teacher deleted")
}
