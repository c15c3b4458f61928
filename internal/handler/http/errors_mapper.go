package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/internal/logger"
	"github.com/MKhiriev/go-zk-vault/internal/service"
	"github.com/MKhiriev/go-zk-vault/internal/store"
	"github.com/MKhiriev/go-zk-vault/internal/utils"
	"github.com/MKhiriev/go-zk-vault/internal/validators"
)

type errorResponse struct {
	target  error
	status  int
	message string
}

// errorResponses is matched in order; the first entry whose target is found
// in the error chain wins, so specific causes precede general ones.
var errorResponses = []errorResponse{
	{validators.ErrEmptyCipher, http.StatusBadRequest, app.MsgMissingCipher},
	{validators.ErrEmptyIV, http.StatusBadRequest, app.MsgMissingIV},
	{validators.ErrInvalidEnvelope, http.StatusBadRequest, app.MsgInvalidEnvelope},
	{validators.ErrInvalidRecordID, http.StatusNotFound, app.MsgVaultRecordNotFound},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidJSON},

	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidEmailPassword},
	{service.ErrTokenIsExpired, http.StatusUnauthorized, app.MsgTokenIsExpired},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{service.ErrNoUserIDInContext, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, app.MsgUnauthorized},

	{store.ErrUserNotFound, http.StatusNotFound, app.MsgAccountNotFound},
	{store.ErrVaultRecordNotFound, http.StatusNotFound, app.MsgVaultRecordNotFound},
	{store.ErrEmailAlreadyExists, http.StatusConflict, app.MsgEmailAlreadyExists},

	{ErrTooManyRequests, http.StatusTooManyRequests, app.MsgTooManyRequests},
}

func statusFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err with the request logger and writes the mapped status
// and message. Internal details never reach the response body.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Msg(message)

	utils.WriteError(w, message, status)
}
