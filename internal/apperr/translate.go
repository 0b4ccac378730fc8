package apperr

import (
	"errors"
	"net/http"

	"ncnews/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE коды, которые считаем ошибкой клиента.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgInvalidText         = "22P02"
	pgNumericOutOfRange   = "22003"
)

// Translate приводит любую ошибку к *Error. Всё неизвестное - 500.
func Translate(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Msg: "Bad Request: already exists"}
		case pgForeignKeyViolation:
			return &Error{Kind: KindForeignKey, Status: http.StatusBadRequest, Msg: "Bad Request: referenced entity does not exist"}
		case pgNotNullViolation:
			return MissingField()
		case pgInvalidText, pgNumericOutOfRange:
			return InvalidInput()
		}
		return Internal()
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Msg: MsgNotFound}
	case errors.Is(err, repository.ErrDuplicate):
		return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Msg: "Bad Request: already exists"}
	case errors.Is(err, repository.ErrForeignKey):
		return &Error{Kind: KindForeignKey, Status: http.StatusBadRequest, Msg: "Bad Request: referenced entity does not exist"}
	}

	return Internal()
}
