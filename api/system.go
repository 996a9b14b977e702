package api

import (
	"net/http"
)

type SystemHandler struct{}

type versionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok", "service": "pybo"}, http.StatusOK)
}

// VersionHandler reports the build the server was started from.
func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	info := versionInfo{Version: version, BuildTime: buildTime}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, info, http.StatusOK)
	}
}
