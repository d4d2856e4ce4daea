package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

// UUIDValidator проверяет, что параметр пути является валидным UUID.
// Использование: api.GET("/users/:user_id/profile", UUIDValidator("user_id"), handler.Get)
func UUIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param(paramName)); err != nil {
			response.Error(c, apperror.Validation(paramName, "должен быть валидным UUID"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IDValidator проверяет, что параметр пути является положительным целым числом.
func IDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, apperror.Validation(paramName, "должен быть положительным целым числом"))
			c.Abort()
			return
		}
		c.Next()
	}
}
