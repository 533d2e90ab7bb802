package services

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/getlayar/perks-core/internal/app/errors"
	"github.com/getlayar/perks-core/internal/app/models"
	"github.com/getlayar/perks-core/internal/infrastructures"
)

// ConnectService talks to the external identity service. Authentication,
// sessions and the admin role are owned there; every call carries a timeout
// so a slow identity service never hangs a request.
type ConnectService struct {
	client *http.Client
}

func NewConnectService() *ConnectService {
	return &ConnectService{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *ConnectService) GetCurrentUser(accessToken string) (*models.ConnectUser, error) {
	if accessToken == "" {
		return nil, errors.NewUnauthorizedError("Access token is required")
	}

	req, err := http.NewRequest("GET", infrastructures.Config.ConnectBaseURL+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(accessToken, "Bearer ") {
		req.Header.Set("Authorization", accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Identity service unavailable")
	}
	defer resp.Body.Close()

	var webResponse models.WebResponse[models.ConnectUser]
	if err := json.NewDecoder(resp.Body).Decode(&webResponse); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to decode identity response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(resp.StatusCode, webResponse.Message)
	}

	return &webResponse.Data, nil
}

func (s *ConnectService) GetUser(connectId string) (*models.ConnectUser, error) {
	req, err := http.NewRequest("GET", infrastructures.Config.ConnectBaseURL+"/users/"+connectId, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Identity service unavailable")
	}
	defer resp.Body.Close()

	var webResponse models.WebResponse[models.ConnectUser]
	if err := json.NewDecoder(resp.Body).Decode(&webResponse); err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to decode identity response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAppError(resp.StatusCode, webResponse.Message)
	}

	return &webResponse.Data, nil
}
