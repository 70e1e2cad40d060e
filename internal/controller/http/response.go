package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/tutor_crm/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response единый конверт всех ответов API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: true, Message: message})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

// respondError переводит ошибки сервисов в HTTP-статусы
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrInvalidInterval), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
	case errors.Is(err, service.ErrLessonConflict):
		c.JSON(http.StatusConflict, Response{Success: false, Message: err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
	}
}

// idParam разбирает числовой path-параметр; при ошибке сам пишет ответ
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}
