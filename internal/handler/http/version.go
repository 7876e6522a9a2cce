package http

import "net/http"

// getServerVersion reports the running build's version as bare text. The
// terminal client shows it in the build info window and uses the endpoint as
// a reachability probe before sign-in.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(version))
}
