package helpers

import (
	"encoding/json"
	"net/http"

	"ncnews/internal/apperr"
	"ncnews/internal/logger"

	"go.uber.org/zap"
)

// ErrorResponse - единственный формат тела ошибки.
type ErrorResponse struct {
	Msg string `json:"msg" example:"Article not found"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		return
	}
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorResponse{Msg: msg})
}

// Fail переводит ошибку в HTTP-ответ. 5xx пишутся в лог с исходной ошибкой.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.Translate(err)
	if e.Status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("Внутренняя ошибка при обработке запроса",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	Error(w, e.Status, e.Msg)
}
