package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

// fail передаёт ошибку в middleware.ErrorHandler и прерывает цепочку.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(name, "должен быть валидным UUID")
	}
	return id, nil
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation(name, "должен быть положительным целым числом")
	}
	return id, nil
}

// parseIntQuery возвращает 0 для отсутствующего параметра; нечисловое значение считается ошибкой.
func parseIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation(key, "должен быть целым числом")
	}
	return v, nil
}

func parseBoolQuery(c *gin.Context, key string, fallback bool) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.Validation(key, "ожидается true или false")
	}
	return v, nil
}

func parseOptionalUUIDQuery(c *gin.Context, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(key, "должен быть валидным UUID")
	}
	return &id, nil
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректные данные запроса")
	}
	return nil
}
