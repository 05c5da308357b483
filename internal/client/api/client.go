package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/pkg/api"
)

// DefaultTimeout используется, когда таймаут не задан в конфигурации
const DefaultTimeout = 30 * time.Second

var (
	// ErrNoResponse означает, что запрос не получил ответа от сервера (сеть, DNS, таймаут)
	ErrNoResponse = errors.New("no response from server")
	// ErrTooManyRedirects сервер ответил, но цепочка редиректов не закончилась
	ErrTooManyRedirects = errors.New("stopped after 10 redirects")
)

// maxRedirects лимит редиректов одного запроса
const maxRedirects = 10

// StatusError описывает ответ сервера с кодом вне диапазона 2xx
type StatusError struct {
	Message string
	Status  int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (%d)", e.Status)
	}
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// TokenSource отдает bearer token текущей сессии.
// Пустая строка без ошибки означает анонимный запрос.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client представляет HTTP клиент для взаимодействия с portal API
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// NewClient создает новый API клиент.
// timeout <= 0 заменяется на DefaultTimeout, tokens может быть nil.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrTooManyRedirects
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/portal/auth/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/portal/health", nil, nil, &resp); err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	return nil
}

// GetProfile получает профиль для роли. firmID передается как override только для фирм.
func (c *Client) GetProfile(ctx context.Context, role models.Role, firmID string) (models.Fields, error) {
	var resp api.ProfileResponse
	path := fmt.Sprintf("/portal/%s/profile", url.PathEscape(string(role)))
	if err := c.doRequest(ctx, http.MethodGet, path, firmQuery(firmID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s profile failed: %w", role, err)
	}
	if resp.Profile == nil {
		return models.Fields{}, nil
	}
	return resp.Profile, nil
}

// PutProfile сохраняет поля профиля и возвращает итоговый профиль сервера
func (c *Client) PutProfile(ctx context.Context, role models.Role, firmID string, fields models.Fields) (models.Fields, error) {
	var resp api.ProfileResponse
	path := fmt.Sprintf("/portal/%s/profile", url.PathEscape(string(role)))
	if err := c.doRequest(ctx, http.MethodPut, path, firmQuery(firmID), fields, &resp); err != nil {
		return nil, fmt.Errorf("put %s profile failed: %w", role, err)
	}
	if resp.Profile == nil {
		return models.Fields{}, nil
	}
	return resp.Profile, nil
}

// ListStudios получает студии фирмы
func (c *Client) ListStudios(ctx context.Context, firmID string) ([]models.Studio, error) {
	var resp api.StudiosResponse
	if err := c.doRequest(ctx, http.MethodGet, "/portal/studio/studios", firmQuery(firmID), nil, &resp); err != nil {
		return nil, fmt.Errorf("list studios failed: %w", err)
	}
	if resp.Studios == nil {
		return []models.Studio{}, nil
	}
	return resp.Studios, nil
}

// CreateStudio создает студию
func (c *Client) CreateStudio(ctx context.Context, firmID string, input models.StudioInput) (*models.Studio, error) {
	var resp api.StudioResponse
	if err := c.doRequest(ctx, http.MethodPost, "/portal/studio/studios", firmQuery(firmID), input, &resp); err != nil {
		return nil, fmt.Errorf("create studio failed: %w", err)
	}
	return &resp.Studio, nil
}

// UpdateStudio обновляет поля студии
func (c *Client) UpdateStudio(ctx context.Context, firmID, id string, input models.StudioInput) (*models.Studio, error) {
	var resp api.StudioResponse
	if err := c.doRequest(ctx, http.MethodPut, studioPath(id), firmQuery(firmID), input, &resp); err != nil {
		return nil, fmt.Errorf("update studio %s failed: %w", id, err)
	}
	return &resp.Studio, nil
}

// PublishStudio переводит студию в статус published
func (c *Client) PublishStudio(ctx context.Context, firmID, id string) (*models.Studio, error) {
	var resp api.StudioResponse
	if err := c.doRequest(ctx, http.MethodPost, studioPath(id)+"/publish", firmQuery(firmID), nil, &resp); err != nil {
		return nil, fmt.Errorf("publish studio %s failed: %w", id, err)
	}
	return &resp.Studio, nil
}

// DeleteStudio удаляет студию
func (c *Client) DeleteStudio(ctx context.Context, firmID, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, studioPath(id), firmQuery(firmID), nil, nil); err != nil {
		return fmt.Errorf("delete studio %s failed: %w", id, err)
	}
	return nil
}

func studioPath(id string) string {
	return "/portal/studio/studios/" + url.PathEscape(id)
}

func firmQuery(firmID string) url.Values {
	if firmID == "" {
		return nil
	}
	return url.Values{"firmId": []string{firmID}}
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to get access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// ответ был получен, это не потеря связи
		if errors.Is(err, ErrTooManyRedirects) {
			return fmt.Errorf("%w: %s %s", ErrTooManyRedirects, method, req.URL.Redacted())
		}
		return fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %w", ErrNoResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newStatusError(status int, body []byte) *StatusError {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		return &StatusError{Status: status, Message: msg}
	}
	return &StatusError{Status: status, Message: strings.TrimSpace(string(body))}
}
