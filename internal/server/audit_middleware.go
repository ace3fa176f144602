package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()

		entry := AuditLogEntry{
			Timestamp: started.UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Route:     routeName(r),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Actor = username
		}

		vars := mux.Vars(r)
		switch {
		case strings.HasPrefix(r.URL.Path, "/jobs/"):
			entry.JobID = vars["id"]
		case strings.HasPrefix(r.URL.Path, "/orders/"):
			entry.OrderID = vars["id"]
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			// Status changes carry a before/after pair so the audit stream
			// can be replayed without joining against job history.
			if entry.JobID != "" && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if job, err := s.core.GetJob(r.Context(), entry.JobID); err == nil {
						entry.OldStatus = string(job.Status)
						entry.NewStatus = statusRequest.Status
					}
				}
			}
		}

		cw := newCaptureWriter(w)

		next.ServeHTTP(cw, r)

		entry.StatusCode = cw.Status()
		entry.Response = string(cw.Body())
		entry.DurationMs = time.Since(started).Milliseconds()

		s.auditManager.LogEntry(r.Context(), entry)
	})
}

func routeName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}
	if name := route.GetName(); name != "" {
		return name
	}
	return "unknown"
}
