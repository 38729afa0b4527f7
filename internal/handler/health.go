package handler

import "net/http"

// Health handles GET /healthz.
// It reports process liveness only — no dependency checks — so orchestrators
// can distinguish "process up" from "dependencies degraded".
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
