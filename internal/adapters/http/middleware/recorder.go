package middleware

import (
	"bytes"
	"net/http"
)

// responseRecorder passes a response through to the client while keeping its
// status and size. A recorder made by newBodyRecorder also keeps a copy of
// the body for idempotent replay.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	size        int64
	body        *bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func newBodyRecorder(w http.ResponseWriter) *responseRecorder {
	rr := newResponseRecorder(w)
	rr.body = new(bytes.Buffer)
	return rr
}

// WriteHeader records the first status and ignores later calls.
func (rr *responseRecorder) WriteHeader(code int) {
	if rr.wroteHeader {
		return
	}
	rr.status = code
	rr.wroteHeader = true
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	if !rr.wroteHeader {
		rr.WriteHeader(http.StatusOK)
	}
	if rr.body != nil {
		rr.body.Write(b)
	}
	n, err := rr.ResponseWriter.Write(b)
	rr.size += int64(n)
	return n, err
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}

// bodyBytes returns the captured body, nil when capture is off.
func (rr *responseRecorder) bodyBytes() []byte {
	if rr.body == nil {
		return nil
	}
	return rr.body.Bytes()
}
