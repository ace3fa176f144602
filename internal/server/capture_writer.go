package server

import (
	"bytes"
	"net/http"
)

// captureWriter tees the response so the audit middleware can record the
// status code and body after the handler runs. Handlers that never call
// WriteHeader report 200.
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func newCaptureWriter(w http.ResponseWriter) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) Status() int { return w.status }

func (w *captureWriter) Body() []byte { return w.body.Bytes() }
