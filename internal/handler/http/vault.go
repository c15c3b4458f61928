package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

func (h *Handler) listVault(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.VaultService.List(r.Context(), r.URL.Query().Get("hint"))
	if err != nil {
		writeError(w, r, "*Handler.listVault", err)
		return
	}

	if records == nil {
		records = []models.VaultRecord{}
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) createVaultRecord(w http.ResponseWriter, r *http.Request) {
	var envelope models.Envelope
	if err := decodeJSON(w, r, &envelope); err != nil {
		writeError(w, r, "*Handler.createVaultRecord", err)
		return
	}

	record, err := h.services.VaultService.Create(r.Context(), envelope)
	if err != nil {
		writeError(w, r, "*Handler.createVaultRecord", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) updateVaultRecord(w http.ResponseWriter, r *http.Request) {
	var envelope models.Envelope
	if err := decodeJSON(w, r, &envelope); err != nil {
		writeError(w, r, "*Handler.updateVaultRecord", err)
		return
	}

	record, err := h.services.VaultService.Update(r.Context(), chi.URLParam(r, "id"), envelope)
	if err != nil {
		writeError(w, r, "*Handler.updateVaultRecord", err)
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteVaultRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.services.VaultService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "*Handler.deleteVaultRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
