package http

import (
	"net/http"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateStudent(c *gin.Context) {
	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		respondBadRequest(c, "invalid student payload: "+err.Error())
		return
	}
	if student.Name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	if err := h.students.CreateStudent(c.Request.Context(), &student); err != nil {
		h.respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, student)
}

func (h *Handler) ListStudents(c *gin.Context) {
	students, err := h.students.GetAllStudents(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, students)
}

func (h *Handler) GetStudent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	student, err := h.students.GetStudentByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var student model.Student
	if err := c.ShouldBindJSON(&student); err != nil {
		respondBadRequest(c, "invalid student payload: "+err.Error())
		return
	}
	student.ID = id

	if err := h.students.UpdateStudent(c.Request.Context(), &student); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, student)
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.students.DeleteStudent(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "student deleted")
}
