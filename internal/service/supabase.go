package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipebox/backend/internal/types"
	"go.uber.org/zap"
)

// ProviderError is an error reported by the hosted identity provider
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// SupabaseAuthService talks to a Supabase (GoTrue) auth endpoint
type SupabaseAuthService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *zap.Logger
}

func NewSupabaseAuthService(baseURL, apiKey string, log *zap.Logger) *SupabaseAuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SupabaseAuthService{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

type gotrueUser struct {
	ID           string                 `json:"id"`
	Email        string                 `json:"email"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	TokenType    string      `json:"token_type"`
	ExpiresIn    int         `json:"expires_in"`
	RefreshToken string      `json:"refresh_token"`
	User         *gotrueUser `json:"user"`
}

// gotrueError covers the error shapes returned by the different GoTrue versions
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.Message, e.ErrorDescription, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (s *SupabaseAuthService) SignUp(ctx context.Context, email, password string) (*types.User, error) {
	body := map[string]string{"email": email, "password": password}

	// Depending on the project settings GoTrue answers with a bare user or a session
	var raw json.RawMessage
	if err := s.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &raw); err != nil {
		return nil, err
	}

	var session gotrueSession
	if err := json.Unmarshal(raw, &session); err == nil && session.User != nil {
		return session.User.toUser()
	}

	var user gotrueUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	return user.toUser()
}

func (s *SupabaseAuthService) SignInWithPassword(ctx context.Context, email, password string) (*types.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session gotrueSession
	if err := s.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, &ProviderError{StatusCode: http.StatusOK, Message: "no session returned"}
	}

	out := &types.Session{
		AccessToken:  session.AccessToken,
		TokenType:    session.TokenType,
		ExpiresIn:    session.ExpiresIn,
		RefreshToken: session.RefreshToken,
	}
	if session.User != nil {
		if u, err := session.User.toUser(); err == nil {
			out.User = u
		}
	}
	return out, nil
}

func (s *SupabaseAuthService) GetUser(ctx context.Context, token string) (*types.User, error) {
	var user gotrueUser
	if err := s.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		return nil, err
	}
	return user.toUser()
}

func (u *gotrueUser) toUser() (*types.User, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, &ProviderError{StatusCode: http.StatusOK, Message: "no user returned"}
	}
	user := &types.User{ID: id, Email: u.Email}
	if name, ok := u.UserMetadata["username"].(string); ok {
		user.Username = name
	}
	return user, nil
}

func (s *SupabaseAuthService) do(ctx context.Context, method, path, bearer string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("identity provider request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ge gotrueError
		_ = json.Unmarshal(data, &ge)
		msg := ge.text()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		s.log.Debug("identity provider rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return &ProviderError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
