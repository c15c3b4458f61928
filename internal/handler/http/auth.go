package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/models"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, "*Handler.signUp", err)
		return
	}

	user, err := h.services.AuthService.SignUp(ctx, creds)
	if err != nil {
		writeError(w, r, "*Handler.signUp", err)
		return
	}

	h.issueToken(w, r, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	user, err := h.services.AuthService.Login(ctx, creds)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	h.issueToken(w, r, user, http.StatusOK)
}

// issueToken answers signup and login with the bearer token and the
// account's salt, so the client can derive its key without a second trip.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, user models.User, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		writeError(w, r, "*Handler.issueToken", err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", user.UserID).Msg("token issued")

	w.Header().Set("Authorization", "Bearer "+token.SignedString)
	utils.WriteJSON(w, models.AuthResponse{Token: token.SignedString, Salt: user.Salt}, status)
}

func (h *Handler) salt(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	salt, err := h.services.SaltRegistry.SaltFor(r.Context(), email)
	if err != nil {
		writeError(w, r, "*Handler.salt", err)
		return
	}

	utils.WriteJSON(w, models.SaltResponse{Salt: salt}, http.StatusOK)
}
