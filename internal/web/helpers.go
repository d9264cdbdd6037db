package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// pathID extracts the numeric id from a "/prefix/{id}" request path.
func pathID(r *http.Request, prefix string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// formInt64 parses an optional numeric form value; absent or malformed
// values read as zero.
func formInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.PostFormValue(key), 10, 64)
	return v
}

// formDate parses an optional "2006-01-02" form value into a nullable date.
func formDate(r *http.Request, key string) *time.Time {
	raw := r.PostFormValue(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// queryInt64 parses an optional numeric query parameter.
func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}
