package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// APIClient talks to the API service. Credentials are injected per request;
// the client holds no ambient authentication state.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new APIClient for the given base URL.
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Health checks if the server is reachable.
func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *APIClient) SignIn(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signin", "", payload.SignInRequest{Email: email}, nil)
}

func (c *APIClient) Verify(ctx context.Context, email, code string) (*payload.VerifyResponse, error) {
	var result payload.VerifyResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/verify", "", payload.VerifyRequest{Email: email, Code: code}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) Me(ctx context.Context, token string) (*payload.UserResponse, error) {
	var result payload.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", token, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) UpdateProfile(
	ctx context.Context,
	token string,
	req payload.UpdateProfileRequest,
) (*payload.UserResponse, error) {
	var result payload.UserResponse
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", token, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) ListPlans(ctx context.Context) ([]payload.PlanResponse, error) {
	var result []payload.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/api/plans", "", nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) GetPlan(ctx context.Context, id string) (*payload.PlanResponse, error) {
	var result payload.PlanResponse
	if err := c.do(ctx, http.MethodGet, "/api/plans/"+id, "", nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) CreateBooking(
	ctx context.Context,
	token string,
	req payload.CreateBookingRequest,
) (*payload.BookingResponse, error) {
	var result payload.BookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", token, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) ListMyBookings(ctx context.Context, token string) ([]payload.BookingResponse, error) {
	var result []payload.BookingResponse
	if err := c.do(ctx, http.MethodGet, "/api/bookings/user", token, nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) CancelBooking(ctx context.Context, token, id string) (*payload.BookingResponse, error) {
	var result payload.BookingResponse
	if err := c.do(ctx, http.MethodPut, "/api/bookings/"+id+"/cancel", token, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) CreatePost(
	ctx context.Context,
	token string,
	req payload.CreatePostRequest,
) (*payload.PostResponse, error) {
	var result payload.PostResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts", token, req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) ListPosts(ctx context.Context) ([]payload.PostResponse, error) {
	var result []payload.PostResponse
	if err := c.do(ctx, http.MethodGet, "/api/posts", "", nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *APIClient) ToggleLike(ctx context.Context, token, postID string) (*payload.LikesResponse, error) {
	var result payload.LikesResponse
	if err := c.do(ctx, http.MethodPost, "/api/posts/"+postID+"/like", token, nil, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) AddComment(
	ctx context.Context,
	token, postID, content string,
) (*payload.CommentsResponse, error) {
	var result payload.CommentsResponse
	err := c.do(
		ctx,
		http.MethodPost,
		"/api/posts/"+postID+"/comments",
		token,
		payload.AddCommentRequest{Content: content},
		&result,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *APIClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		message := http.StatusText(resp.StatusCode)

		var errResp payload.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			message = errResp.Message
		}

		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
