package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campus-experiment/clubdesk/internal/constants"
	"campus-experiment/clubdesk/internal/models"
	"campus-experiment/clubdesk/internal/models/dtos"
)

// CampusAPIProvider implements CampusProvider against the campus REST API.
type CampusAPIProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// Ensure CampusAPIProvider implements CampusProvider
var _ CampusProvider = (*CampusAPIProvider)(nil)

// NewCampusAPIProvider creates a provider for the campus API.
func NewCampusAPIProvider(baseURL, apiKey string, timeout time.Duration) *CampusAPIProvider {
	return &CampusAPIProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ============================================================================
// Roster & Attendance
// ============================================================================

func (p *CampusAPIProvider) FetchMembers(ctx context.Context, clubID int64) (*dtos.MemberListResponse, error) {
	var result dtos.MemberListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/clubs/%d/members", clubID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error) {
	var result dtos.RawAttendanceSession
	endpoint := fmt.Sprintf("/clubs/%d/attendance?date=%s", clubID, date)
	if err := p.doJSON(ctx, http.MethodGet, endpoint, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) CreateAttendanceSession(ctx context.Context, clubID int64, date string) (*dtos.RawAttendanceSession, error) {
	body := map[string]interface{}{"date": date}
	var result dtos.RawAttendanceSession
	if err := p.doJSON(ctx, http.MethodPost, fmt.Sprintf("/clubs/%d/attendance", clubID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) CommitAttendance(ctx context.Context, sessionID string, changes []models.StatusChange) (*dtos.CommitAck, error) {
	if sessionID == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "session ID cannot be empty",
		}
	}
	body := map[string]interface{}{"changes": changes}
	var result dtos.CommitAck
	if err := p.doJSON(ctx, http.MethodPost, fmt.Sprintf("/attendance/%s/commit", sessionID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// Catalog
// ============================================================================

func (p *CampusAPIProvider) FetchCatalog(ctx context.Context, clubID int64) (*dtos.CatalogListResponse, error) {
	var result dtos.CatalogListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/clubs/%d/products", clubID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) CreateCatalogItem(ctx context.Context, clubID int64, fields map[string]interface{}) (*dtos.RawCatalogItem, error) {
	var result dtos.RawCatalogItem
	if err := p.doJSON(ctx, http.MethodPost, fmt.Sprintf("/clubs/%d/products", clubID), fields, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) UpdateCatalogItem(ctx context.Context, itemID int64, patch map[string]interface{}) (*dtos.RawCatalogItem, error) {
	var result dtos.RawCatalogItem
	if err := p.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/products/%d", itemID), patch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) AdjustStock(ctx context.Context, itemID int64, delta int64) (*dtos.RawCatalogItem, error) {
	body := map[string]interface{}{"delta": delta}
	var result dtos.RawCatalogItem
	if err := p.doJSON(ctx, http.MethodPost, fmt.Sprintf("/products/%d/stock", itemID), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) DeleteCatalogItem(ctx context.Context, itemID int64) error {
	return p.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", itemID), nil, nil)
}

// ============================================================================
// Wallets & Points
// ============================================================================

func (p *CampusAPIProvider) FetchWallets(ctx context.Context, userID int64) (*dtos.WalletResponse, error) {
	var result dtos.WalletResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/wallets", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchClubWallet(ctx context.Context, clubID int64) (*dtos.RawWallet, error) {
	var result dtos.RawWallet
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/clubs/%d/wallet", clubID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchTransactions(ctx context.Context, walletID int64) (*dtos.TransactionListResponse, error) {
	var result dtos.TransactionListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/wallets/%d/transactions", walletID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) DistributePoints(ctx context.Context, clubID int64, memberIDs []int64, amount int64, reason string) error {
	if amount <= 0 {
		return &ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: "distribution amount must be positive",
		}
	}
	body := map[string]interface{}{
		"member_ids": memberIDs,
		"amount":     amount,
		"reason":     reason,
	}
	return p.doJSON(ctx, http.MethodPost, fmt.Sprintf("/clubs/%d/points/distribute", clubID), body, nil)
}

func (p *CampusAPIProvider) RedeemItem(ctx context.Context, walletID, itemID, quantity int64) (*dtos.RawOrder, error) {
	body := map[string]interface{}{
		"wallet_id": walletID,
		"item_id":   itemID,
		"quantity":  quantity,
	}
	var result dtos.RawOrder
	if err := p.doJSON(ctx, http.MethodPost, "/orders", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// Activity History Sources
// ============================================================================

func (p *CampusAPIProvider) FetchMembershipApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
	var result dtos.ApplicationListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/applications", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchClubApplications(ctx context.Context, userID int64) (*dtos.ApplicationListResponse, error) {
	var result dtos.ApplicationListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/club-applications", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchOrders(ctx context.Context, userID int64) (*dtos.OrderListResponse, error) {
	var result dtos.OrderListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/orders", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *CampusAPIProvider) FetchEventRegistrations(ctx context.Context, userID int64) (*dtos.RegistrationListResponse, error) {
	var result dtos.RegistrationListResponse
	if err := p.doJSON(ctx, http.MethodGet, fmt.Sprintf("/users/%d/registrations", userID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// HTTP Helpers
// ============================================================================

// doJSON performs an authenticated request with an optional JSON body and
// decodes the JSON response into result (result may be nil for calls that
// only need the status).
func (p *CampusAPIProvider) doJSON(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	if p.APIKey == "" {
		return &ProviderError{
			Code:    constants.ErrCodeInvalidKey,
			Message: "CAMPUS_API_KEY is not set",
		}
	}

	var reqBody io.Reader
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return &ProviderError{
				Code:    constants.ErrCodeNetwork,
				Message: "Failed to marshal request body",
				Err:     err,
			}
		}
		reqBody = bytes.NewReader(payloadBytes)
	}

	url := p.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetwork,
			Message: "Failed to create request",
			Err:     err,
		}
	}

	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetwork,
			Message: constants.GetErrorMessage(constants.ErrCodeNetwork),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetwork,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return p.buildHTTPError(resp.StatusCode, endpoint, bodyBytes)
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, result); err != nil {
		return &ProviderError{
			Code:    constants.ErrCodeNetwork,
			Message: "Failed to decode response",
			Details: string(bodyBytes),
			Err:     err,
		}
	}

	return nil
}

// buildHTTPError creates the appropriate error kind for a status code.
// A 409 maps to the duplicate kind; the session coordinator branches on it.
func (p *CampusAPIProvider) buildHTTPError(statusCode int, endpoint string, body []byte) error {
	// Prefer the upstream error envelope when it parses
	var upstream dtos.UpstreamError
	if err := json.Unmarshal(body, &upstream); err == nil && upstream.Kind != "" {
		switch upstream.Kind {
		case "duplicate":
			return &ProviderError{Code: constants.ErrCodeDuplicate, Message: upstream.Message, Details: string(body)}
		case "validation":
			return &ProviderError{Code: constants.ErrCodeValidation, Message: upstream.Message, Details: string(body)}
		case "not_found":
			return &ProviderError{Code: constants.ErrCodeNotFound, Message: upstream.Message, Details: string(body)}
		}
	}

	switch statusCode {
	case http.StatusUnauthorized:
		return &ProviderError{
			Code:    constants.ErrCodeInvalidKey,
			Message: fmt.Sprintf("Authentication failed for endpoint %s", endpoint),
			Details: string(body),
		}
	case http.StatusNotFound:
		return &ProviderError{
			Code:    constants.ErrCodeNotFound,
			Message: fmt.Sprintf("Resource not found: %s", endpoint),
			Details: string(body),
		}
	case http.StatusConflict:
		return &ProviderError{
			Code:    constants.ErrCodeDuplicate,
			Message: constants.GetErrorMessage(constants.ErrCodeDuplicate),
			Details: string(body),
		}
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: string(body),
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ProviderError{
			Code:    constants.ErrCodeValidation,
			Message: fmt.Sprintf("Bad request to %s", endpoint),
			Details: string(body),
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeServer,
			Message: fmt.Sprintf("HTTP %d from %s", statusCode, endpoint),
			Details: string(body),
		}
	}
}
