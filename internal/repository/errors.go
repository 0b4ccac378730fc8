package repository

import "errors"

// Ошибки хранилища, общие для Postgres и Redis-реализаций.
// Postgres-коды (23505, 23503, ...) дополнительно разбирает apperr.Translate.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate key")
	ErrForeignKey = errors.New("referenced record does not exist")
)
