package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clockvault/timeclock-service/internal/domain"
)

// HTTPDirectoryClient talks to the user-directory service that owns
// employee records, national ids and device authorizations.
type HTTPDirectoryClient struct {
	Address    string
	httpClient *http.Client
}

func NewHTTPDirectoryClient(address string) (*HTTPDirectoryClient, error) {
	if address == "" {
		return nil, fmt.Errorf("directory service address is required")
	}
	return &HTTPDirectoryClient{
		Address:    address,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}, nil
}

type userResponse struct {
	ID         string `json:"id"`
	Active     bool   `json:"active"`
	NationalID string `json:"national_id"`
}

type deviceResponse struct {
	Authorized bool `json:"authorized"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPDirectoryClient) GetUser(ctx context.Context, tenantID, userID string) (*domain.UserProfile, error) {
	url := fmt.Sprintf("%s/tenants/%s/users/%s", c.Address, tenantID, userID)
	var body userResponse
	if err := c.get(ctx, url, "user", &body); err != nil {
		return nil, err
	}
	return &domain.UserProfile{
		ID:         body.ID,
		TenantID:   tenantID,
		Active:     body.Active,
		NationalID: body.NationalID,
	}, nil
}

func (c *HTTPDirectoryClient) IsDeviceAuthorized(ctx context.Context, tenantID, userID, deviceID string) (bool, error) {
	url := fmt.Sprintf("%s/tenants/%s/users/%s/devices/%s", c.Address, tenantID, userID, deviceID)
	var body deviceResponse
	if err := c.get(ctx, url, "device", &body); err != nil {
		return false, err
	}
	return body.Authorized, nil
}

func (c *HTTPDirectoryClient) get(ctx context.Context, url, entity string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.NewInfrastructureError("directory_request_failed", "failed to build directory request", err)
	}
	response, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewInfrastructureError("directory_unavailable", "user directory unavailable", err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return domain.NewNotFoundError(entity+"_not_found", entity+" not found")
	case response.StatusCode < 200 || response.StatusCode >= 300:
		var errBody errorResponse
		_ = json.NewDecoder(response.Body).Decode(&errBody)
		return domain.NewInfrastructureError("directory_error",
			fmt.Sprintf("user directory returned %d: %s", response.StatusCode, errBody.Error), nil)
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return domain.NewInfrastructureError("directory_decode_failed", "failed to decode directory response", err)
	}
	return nil
}
