package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"ncnews/internal/apperr"
	"ncnews/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msgOf(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperr.Translate(err).Msg
}

func TestParsePage(t *testing.T) {
	p, err := parsePage(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, models.Page{Limit: 10, Page: 1}, p)

	p, err = parsePage(url.Values{"limit": {"5"}, "p": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, 5, p.Offset())

	p, err = parsePage(url.Values{"limit": {"5000"}})
	require.NoError(t, err)
	assert.Equal(t, models.MaxLimit, p.Limit)

	for _, bad := range []string{"0", "-1", "ten", "1.5"} {
		_, err = parsePage(url.Values{"limit": {bad}})
		assert.Equal(t, "Invalid limit query", msgOf(t, err), bad)
		_, err = parsePage(url.Values{"p": {bad}})
		assert.Equal(t, "Invalid p query", msgOf(t, err), bad)
	}

	p, err = parsePage(url.Values{"limit": {"100"}, "p": {"21474837"}})
	require.NoError(t, err)
	assert.Equal(t, 2147483600, p.Offset())

	for _, huge := range []string{"21474838", "9223372036854775807", "99999999999999999999"} {
		_, err = parsePage(url.Values{"limit": {"100"}, "p": {huge}})
		assert.Equal(t, "Invalid p query", msgOf(t, err), huge)
	}
}

func TestAllowParams(t *testing.T) {
	assert.NoError(t, allowParams(url.Values{"limit": {"1"}}, "limit", "p"))
	assert.Equal(t, "Invalid query parameter: sort", msgOf(t, allowParams(url.Values{"sort": {"x"}}, "limit", "p")))
}

func TestPathID(t *testing.T) {
	cases := map[string]bool{"1": true, "42": true, "0": false, "-3": false, "abc": false, "": false}
	for raw, ok := range cases {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"article_id": raw})
		id, err := pathID(r, "article_id")
		if ok {
			assert.NoError(t, err, raw)
			assert.Positive(t, id)
		} else {
			assert.Equal(t, "Invalid article_id", msgOf(t, err), raw)
		}
	}
}

func TestDecodeVotes(t *testing.T) {
	cases := []struct {
		body string
		want int
		ok   bool
	}{
		{`{"inc_votes": 3}`, 3, true},
		{`{"inc_votes": -100}`, -100, true},
		{`{"inc_votes": "3"}`, 0, false},
		{`{"inc_votes": 1.5}`, 0, false},
		{`{}`, 0, false},
		{`not json`, 0, false},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tc.body))
		got, err := decodeVotes(r)
		if tc.ok {
			require.NoError(t, err, tc.body)
			assert.Equal(t, tc.want, got)
		} else {
			assert.Equal(t, apperr.MsgInvalidInput, msgOf(t, err), tc.body)
		}
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"Not Found"}`, w.Body.String())

	w = httptest.NewRecorder()
	MethodNotAllowed(w, httptest.NewRequest(http.MethodPut, "/api/topics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"msg":"Method Not Allowed"}`, w.Body.String())
}
