package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{fmt.Errorf("%w: no session", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("%w: bad input", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: post", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: not the author", ErrForbidden), http.StatusForbidden},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		h := Wrap(func(w http.ResponseWriter, r *http.Request) error {
			if tc.err == nil {
				w.WriteHeader(http.StatusOK)
			}
			return tc.err
		})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, tc.want, rec.Code, "err=%v", tc.err)
	}
}

func TestDecode(t *testing.T) {
	type body struct {
		Content string `json:"content"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content":"hi"}`))
	got, err := Decode[body](req)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	_, err = Decode[body](req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestWriteErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, ErrNotFound, "not_found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"reason":"not_found"`)
}
