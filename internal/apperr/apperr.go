// Package apperr описывает ошибки, которые уходят клиенту как {"msg": "..."}.
package apperr

import (
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindMissingField Kind = "missing_field"
	KindInvalidInput Kind = "invalid_input"
	KindInvalidQuery Kind = "invalid_query"
	KindNotFound     Kind = "not_found"
	KindForeignKey   Kind = "foreign_key"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

const (
	MsgInternal         = "Internal Server Error"
	MsgNotFound         = "Not Found"
	MsgMethodNotAllowed = "Method Not Allowed"
	MsgInvalidInput     = "Invalid input"
)

type Error struct {
	Kind   Kind
	Status int
	Msg    string
}

func (e *Error) Error() string { return e.Msg }

func MissingField(fields ...string) *Error {
	msg := "Bad Request: Missing required fields"
	if len(fields) > 0 {
		msg += ": " + strings.Join(fields, ", ")
	}
	return &Error{Kind: KindMissingField, Status: http.StatusBadRequest, Msg: msg}
}

func InvalidInput() *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Msg: MsgInvalidInput}
}

// UnknownReference - ссылка на несуществующую сущность в теле запроса (InvalidInput).
func UnknownReference(ref string) *Error {
	return &Error{Kind: KindInvalidInput, Status: http.StatusBadRequest, Msg: fmt.Sprintf("Bad Request: %s does not exist", ref)}
}

// InvalidQuery - "Invalid sort_by query", "Invalid p query" и т.п.
func InvalidQuery(param string) *Error {
	return &Error{Kind: KindInvalidQuery, Status: http.StatusBadRequest, Msg: fmt.Sprintf("Invalid %s query", param)}
}

func UnknownParam(param string) *Error {
	return &Error{Kind: KindInvalidQuery, Status: http.StatusBadRequest, Msg: "Invalid query parameter: " + param}
}

// InvalidID - id из пути не является положительным целым.
func InvalidID(name string) *Error {
	return &Error{Kind: KindInvalidQuery, Status: http.StatusBadRequest, Msg: "Invalid " + name}
}

// NotFound("article") -> "Article not found"
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Msg: capitalize(entity) + " not found"}
}

func NotFoundMsg(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Msg: msg}
}

func ForeignKey(ref string) *Error {
	return &Error{Kind: KindForeignKey, Status: http.StatusBadRequest, Msg: fmt.Sprintf("Bad Request: %s does not exist", ref)}
}

func Conflict(entity string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Msg: fmt.Sprintf("Bad Request: %s already exists", entity)}
}

func Internal() *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Msg: MsgInternal}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
