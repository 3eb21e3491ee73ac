package security

import (
	"bytes"
	"errors"
	"io"
	"net/http"
)

// BodyLimit caps the size of request payloads before handlers decode them.
type BodyLimit struct {
	Max int64
}

// Middleware rejects payloads over the limit with 413. The body is buffered so
// downstream handlers can read it normally after the size check.
func (b BodyLimit) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.Max <= 0 || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		// trust a declared Content-Length enough to reject early
		if r.ContentLength != -1 && r.ContentLength > b.Max {
			tooLarge(w)
			return
		}

		buf, err := readCapped(r.Body, b.Max)
		switch {
		case errors.Is(err, errBodyTooLarge):
			tooLarge(w)
			return
		case err != nil:
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(buf))
		r.ContentLength = int64(len(buf))
		next.ServeHTTP(w, r)
	})
}

var errBodyTooLarge = errors.New("security: body exceeds limit")

// readCapped drains body up to max bytes, returning errBodyTooLarge when more
// data remains past the cap.
func readCapped(body io.ReadCloser, max int64) ([]byte, error) {
	defer func() { _ = body.Close() }()
	buf, err := io.ReadAll(io.LimitReader(body, max+1))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if int64(len(buf)) > max {
		return nil, errBodyTooLarge
	}
	return buf, nil
}

func tooLarge(w http.ResponseWriter) {
	http.Error(w, "request entity too large", http.StatusRequestEntityTooLarge)
}
