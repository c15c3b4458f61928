package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-zk-vault/internal/app"
	"github.com/MKhiriev/go-zk-vault/models"
)

// causes refine a status class by the exact server message.
var causes = map[int]map[string]error{
	http.StatusUnauthorized: {
		app.MsgInvalidEmailPassword:    ErrInvalidCredentials,
		app.MsgTokenIsExpired:          ErrSessionExpired,
		app.MsgTokenIsExpiredOrInvalid: ErrSessionExpired,
		app.MsgUnauthorized:            ErrSessionExpired,
	},
	http.StatusNotFound: {
		app.MsgAccountNotFound:     ErrAccountNotFound,
		app.MsgVaultRecordNotFound: ErrRecordNotFound,
	},
	http.StatusConflict: {
		app.MsgEmailAlreadyExists: ErrEmailTaken,
	},
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := serverMessage(resp)

	var class error
	switch {
	case resp.StatusCode() == http.StatusBadRequest:
		class = ErrBadRequest
	case resp.StatusCode() == http.StatusUnauthorized:
		class = ErrUnauthorized
	case resp.StatusCode() == http.StatusNotFound:
		class = ErrNotFound
	case resp.StatusCode() == http.StatusConflict:
		class = ErrConflict
	case resp.StatusCode() == http.StatusTooManyRequests:
		class = ErrTooManyRequests
	case resp.StatusCode() >= http.StatusInternalServerError:
		class = ErrInternalServerError
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
	}

	if cause, ok := causes[resp.StatusCode()][message]; ok {
		return fmt.Errorf("%w: %w", class, cause)
	}
	return fmt.Errorf("%w: %s", class, message)
}

// serverMessage extracts the {"error": ...} message, falling back to the raw
// body and then to the status text.
func serverMessage(resp *resty.Response) string {
	body := strings.TrimSpace(string(resp.Body()))

	var errResp models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
		return errResp.Error
	}
	if body == "" {
		return http.StatusText(resp.StatusCode())
	}
	return body
}

func transportError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrServerUnavailable, err)
}
