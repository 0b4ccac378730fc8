package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"ncnews/internal/apperr"
	"ncnews/internal/models"

	"github.com/gorilla/mux"
)

// pathID достаёт положительный id из пути; иначе "Invalid <name>".
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.InvalidID(name)
	}
	return id, nil
}

// allowParams отклоняет любой query-параметр не из списка.
func allowParams(q url.Values, allowed ...string) error {
	for key := range q {
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			return apperr.UnknownParam(key)
		}
	}
	return nil
}

func parsePage(q url.Values) (models.Page, error) {
	p := models.Page{Limit: models.DefaultLimit, Page: 1}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperr.InvalidQuery("limit")
		}
		if n > models.MaxLimit {
			n = models.MaxLimit
		}
		p.Limit = n
	}
	if v := q.Get("p"); v != "" {
		n, err := strconv.Atoi(v)
		// offset (p-1)*limit обязан помещаться в int32, иначе переполнение
		if err != nil || n < 1 || n-1 > math.MaxInt32/p.Limit {
			return p, apperr.InvalidQuery("p")
		}
		p.Page = n
	}
	return p, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidInput()
	}
	return nil
}

// decodeVotes требует целое inc_votes.
func decodeVotes(r *http.Request) (int, error) {
	var req models.VotesRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, err
	}
	if req.IncVotes == nil {
		return 0, apperr.InvalidInput()
	}
	return *req.IncVotes, nil
}
