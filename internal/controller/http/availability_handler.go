package http

import (
	"net/http"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/gin-gonic/gin"
)

type weeklySlotRequest struct {
	Weekday     int  `json:"weekday"`
	StartMinute int  `json:"start_minute"`
	EndMinute   int  `json:"end_minute"`
	IsAvailable bool `json:"is_available"`
}

type setAvailabilityRequest struct {
	Slots []weeklySlotRequest `json:"slots"`
}

func (h *Handler) GetStudentAvailability(c *gin.Context) {
	h.getAvailability(c, model.OwnerKindStudent)
}

func (h *Handler) GetTeacherAvailability(c *gin.Context) {
	h.getAvailability(c, model.OwnerKindTeacher)
}

func (h *Handler) getAvailability(c *gin.Context, kind model.OwnerKind) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	slots, err := h.availability.GetWeeklyAvailability(c.Request.Context(), id, kind)
	if err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, slots)
}

func (h *Handler) SetStudentAvailability(c *gin.Context) {
	h.setAvailability(c, model.OwnerKindStudent)
}

func (h *Handler) SetTeacherAvailability(c *gin.Context) {
	h.setAvailability(c, model.OwnerKindTeacher)
}

// setAvailability целиком заменяет недельное расписание владельца
func (h *Handler) setAvailability(c *gin.Context, kind model.OwnerKind) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid availability payload: "+err.Error())
		return
	}

	slots := make([]model.AvailabilitySlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, model.AvailabilitySlot{
			OwnerID:     id,
			OwnerKind:   kind,
			Weekday:     s.Weekday,
			StartMinute: s.StartMinute,
			EndMinute:   s.EndMinute,
			IsAvailable: s.IsAvailable,
		})
	}

	if err := h.availability.SetWeeklyAvailability(c.Request.Context(), id, kind, slots); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, slots)
}

type addSlotRequest struct {
	OwnerID     int64  `json:"owner_id" binding:"required"`
	OwnerKind   string `json:"owner_kind" binding:"required"`
	Weekday     int    `json:"weekday"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
	IsAvailable *bool  `json:"is_available"`
}

func (h *Handler) AddAvailabilitySlot(c *gin.Context) {
	var req addSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid slot payload: "+err.Error())
		return
	}

	// Слот по умолчанию открывает время, а не закрывает его
	isAvailable := true
	if req.IsAvailable != nil {
		isAvailable = *req.IsAvailable
	}

	slot := &model.AvailabilitySlot{
		OwnerID:     req.OwnerID,
		OwnerKind:   model.OwnerKind(req.OwnerKind),
		Weekday:     req.Weekday,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		IsAvailable: isAvailable,
	}

	if err := h.availability.AddSlot(c.Request.Context(), slot); err != nil {
		h.respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, slot)
}

func (h *Handler) DeleteAvailabilitySlot(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.availability.RemoveSlot(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "availability slot deleted")
}
