package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/projectmatch-backend/internal/logger"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

// ErrorBody - тело любого ответа с ошибкой.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Error пишет AppError с его HTTP-статусом. Остальные ошибки маскируются
// как внутренние, а подробности уходят только в лог.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logger.L().WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
				"code":   appErr.Code,
				"error":  err.Error(),
			}).Error("Ошибка обработки запроса")
		}
		c.JSON(appErr.HTTPStatus, ErrorBody{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		})
		return
	}

	logger.L().WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"error":  err.Error(),
	}).Error("Необработанная ошибка")

	c.JSON(http.StatusInternalServerError, ErrorBody{
		Error: "внутренняя ошибка сервера",
		Code:  string(apperror.ErrCodeInternal),
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error: message,
		Code:  string(apperror.ErrCodeBadRequest),
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{
		Error: message,
		Code:  string(apperror.ErrCodeNotFound),
	})
}
