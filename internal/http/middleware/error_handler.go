package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/projectmatch-backend/internal/http/response"
)

// ErrorHandler рендерит последнюю ошибку из c.Errors, если обработчик
// сам ничего не записал. Хэндлеры кладут ошибку через c.Error и выходят.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		response.Error(c, c.Errors.Last().Err)
	}
}
