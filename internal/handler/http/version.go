package http

import (
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.AppInfoService.GetAppBuildInfo(r.Context()), http.StatusOK)
}
