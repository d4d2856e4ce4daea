package common

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые адаптеры переводят в доменные ошибки.
const (
	pgUniqueViolation     pq.ErrorCode = "23505"
	pgForeignKeyViolation pq.ErrorCode = "23503"
)

// IsUniqueViolation сообщает, что вставка нарушила уникальный индекс.
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgUniqueViolation)
}

// IsForeignKeyViolation сообщает, что запись ссылается на несуществующую строку.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgForeignKeyViolation)
}

// ConstraintName возвращает имя нарушенного ограничения, если оно известно.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
