package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Client talks to the vacation-tracker backend. All requests carry the
// bearer token of the current session; the token is opaque to the client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new backend API client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SetToken sets the bearer token used on subsequent requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates with email/password and returns the session token
// together with the user record. The token is not stored on the client;
// callers decide whether to adopt it via SetToken.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/users/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	c.logger.Info("Logged in",
		zap.String("email", email),
		zap.Bool("is_admin", resp.User.IsAdmin))

	return &resp, nil
}

// Profile returns the user record belonging to the current token
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodGet, "/users/profile", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &user, nil
}

// AllUsers returns the full user roster (admin only)
func (c *Client) AllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doRequest(ctx, http.MethodGet, "/users/all", nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	c.logger.Info("Users retrieved", zap.Int("count", len(users)))

	return users, nil
}

// RegisterUser creates a new user account (admin only)
func (c *Client) RegisterUser(ctx context.Context, req RegisterUserRequest) (*User, error) {
	var user User
	if err := c.doRequest(ctx, http.MethodPost, "/users/register", req, &user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	c.logger.Info("User registered",
		zap.String("email", req.Email),
		zap.Bool("is_admin", req.IsAdmin))

	return &user, nil
}

// UpdateUser replaces a user record, counters included (admin only)
func (c *Client) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*User, error) {
	var resp userEnvelope
	if err := c.doRequest(ctx, http.MethodPut, "/users/"+userID, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	c.logger.Info("User updated",
		zap.String("user_id", userID),
		zap.String("email", req.Email))

	return &resp.User, nil
}

// DeleteUser removes a user account (admin only)
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/users/"+userID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}

	c.logger.Info("User deleted", zap.String("user_id", userID))

	return nil
}

// AllVacations returns every vacation request visible to the caller. This is
// the authoritative list; views repopulate from it after every mutation.
func (c *Client) AllVacations(ctx context.Context) ([]Vacation, error) {
	var vacations []Vacation
	if err := c.doRequest(ctx, http.MethodGet, "/vacations/all", nil, &vacations); err != nil {
		return nil, fmt.Errorf("failed to list vacations: %w", err)
	}

	c.logger.Info("Vacations retrieved", zap.Int("count", len(vacations)))

	return vacations, nil
}

// CreateVacation submits a new vacation request; the backend assigns the ID
// and creates it in pending state
func (c *Client) CreateVacation(ctx context.Context, req VacationRequestBody) (*Vacation, error) {
	var vacation Vacation
	if err := c.doRequest(ctx, http.MethodPost, "/vacations", req, &vacation); err != nil {
		return nil, fmt.Errorf("failed to create vacation: %w", err)
	}

	c.logger.Info("Vacation created",
		zap.String("id", vacation.ID),
		zap.String("type", string(req.Type)),
		zap.String("start", req.StartDate.String()),
		zap.String("end", req.EndDate.String()))

	return &vacation, nil
}

// UpdateVacation edits a pending vacation request owned by the caller
func (c *Client) UpdateVacation(ctx context.Context, vacationID string, req VacationRequestBody) (*Vacation, error) {
	var vacation Vacation
	if err := c.doRequest(ctx, http.MethodPut, "/vacations/"+vacationID, req, &vacation); err != nil {
		return nil, fmt.Errorf("failed to update vacation %s: %w", vacationID, err)
	}

	c.logger.Info("Vacation updated",
		zap.String("id", vacationID),
		zap.String("start", req.StartDate.String()),
		zap.String("end", req.EndDate.String()))

	return &vacation, nil
}

// DeleteVacation removes a vacation request: a pending one owned by the
// caller, or an approved one when the caller is an admin
func (c *Client) DeleteVacation(ctx context.Context, vacationID string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/vacations/"+vacationID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete vacation %s: %w", vacationID, err)
	}

	c.logger.Info("Vacation deleted", zap.String("id", vacationID))

	return nil
}

// ApproveVacation marks a pending request approved (admin only)
func (c *Client) ApproveVacation(ctx context.Context, vacationID string) error {
	req := VacationActionBody{VacationID: vacationID}
	if err := c.doRequest(ctx, http.MethodPost, "/vacations/approve", req, nil); err != nil {
		return fmt.Errorf("failed to approve vacation %s: %w", vacationID, err)
	}

	c.logger.Info("Vacation approved", zap.String("id", vacationID))

	return nil
}

// RejectVacation removes a pending request (admin only)
func (c *Client) RejectVacation(ctx context.Context, vacationID string) error {
	req := VacationActionBody{VacationID: vacationID}
	if err := c.doRequest(ctx, http.MethodDelete, "/vacations/reject", req, nil); err != nil {
		return fmt.Errorf("failed to reject vacation %s: %w", vacationID, err)
	}

	c.logger.Info("Vacation rejected", zap.String("id", vacationID))

	return nil
}

// doRequest performs a single HTTP request against the backend.
// Network and decode failures come back as *TransportError; non-2xx answers
// with a server message come back as *RemoteError.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Err: fmt.Errorf("failed to marshal request body: %w", err)}
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Message == "" {
			// An error status without a message field is a malformed response
			c.logger.Warn("Malformed error response",
				zap.String("path", path),
				zap.Int("status", resp.StatusCode))
			return &TransportError{Err: fmt.Errorf("unexpected status %d with malformed body", resp.StatusCode)}
		}

		c.logger.Warn("Backend rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", errResp.Message))

		return &RemoteError{
			StatusCode: resp.StatusCode,
			Message:    errResp.Message,
		}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
		}
	}

	return nil
}
