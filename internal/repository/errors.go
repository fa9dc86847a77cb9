package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые мы реагируем по-особому.
const (
	pgUniqueViolation = "23505"
)

// isUniqueViolation проверяет нарушение уникального ограничения.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
