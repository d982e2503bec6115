package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/config"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/handler"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/testutil"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/auth"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// apiFixture wires the full route tree over in-memory repositories.
type apiFixture struct {
	router   http.Handler
	codeRepo *testutil.MemoryVerificationCodeRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.ServerConfig{
		Token: config.TokenConfig{
			Secret:        "test-secret",
			Issuer:        "dogcafe-api",
			ExpiresIn:     168 * time.Hour,
			CodeExpiresIn: 15 * time.Minute,
		},
	}

	userRepo := testutil.NewMemoryUserRepository()
	codeRepo := testutil.NewMemoryVerificationCodeRepository()
	planRepo := testutil.NewMemoryPlanRepository()
	bookingRepo := testutil.NewMemoryBookingRepository()
	postRepo := testutil.NewMemoryPostRepository()

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	authUsecase := usecase.NewAuthUsecase(userRepo, codeRepo, jwtAuth, nil, cfg, &logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	planUsecase := usecase.NewPlanUsecase(planRepo, &logger)
	bookingUsecase := usecase.NewBookingUsecase(bookingRepo, planRepo, userRepo)
	postUsecase := usecase.NewPostUsecase(postRepo, userRepo)

	require.NoError(t, planUsecase.SeedDefaultPlans(t.Context()))

	router := handler.NewRouter(
		handler.NewAuthenticator(authUsecase, &logger),
		handler.NewAuthHandler(authUsecase, &logger),
		handler.NewUserHandler(userUsecase, &logger),
		handler.NewPlanHandler(planUsecase, &logger),
		handler.NewBookingHandler(bookingUsecase, &logger),
		handler.NewPostHandler(postUsecase, &logger),
	)

	return &apiFixture{router: router, codeRepo: codeRepo}
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))

	return out
}

// signIn runs the full email code flow and returns a bearer token.
func (f *apiFixture) signIn(t *testing.T, email string) string {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/auth/signin", "", payload.SignInRequest{Email: email})
	require.Equal(t, http.StatusOK, rec.Code)

	code, ok := f.codeRepo.Codes[email]
	require.True(t, ok, "sign-in should have issued a code")

	rec = f.request(t, http.MethodPost, "/api/auth/verify", "", payload.VerifyRequest{
		Email: email,
		Code:  code.Code,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	verified := decodeBody[payload.VerifyResponse](t, rec)
	require.NotEmpty(t, verified.Token)
	require.Equal(t, email, verified.User.Email)

	return verified.Token
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignInFlow(t *testing.T) {
	f := newAPIFixture(t)

	token := f.signIn(t, "bella@example.com")

	rec := f.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	me := decodeBody[payload.UserResponse](t, rec)
	assert.Equal(t, "bella@example.com", me.Email)
	assert.NotEmpty(t, me.ID)
}

func TestSignIn_InvalidEmail(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/api/auth/signin", "", payload.SignInRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerify_WrongCode(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/api/auth/signin", "", payload.SignInRequest{Email: "bella@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/auth/verify", "", payload.VerifyRequest{
		Email: "bella@example.com",
		Code:  "0000",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody[payload.ErrorResponse](t, rec)
	assert.Equal(t, "invalid verification code", body.Message)
}

func TestUpdateProfile(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	username := "bella_the_golden"
	rec := f.request(t, http.MethodPut, "/api/users/profile", token, payload.UpdateProfileRequest{
		Username: &username,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeBody[payload.UserResponse](t, rec)
	assert.Equal(t, "bella_the_golden", updated.Username)
}

func TestListPlans_PublicAndSorted(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/plans", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	plans := decodeBody[[]payload.PlanResponse](t, rec)
	require.Len(t, plans, 3)
	assert.Equal(t, []float64{50, 70, 100}, []float64{plans[0].Price, plans[1].Price, plans[2].Price})
}

func TestGetPlan_NotFound(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodGet, "/api/plans/000000000000000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(t, http.MethodGet, "/api/plans/not-a-hex-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	plans := decodeBody[[]payload.PlanResponse](t, f.request(t, http.MethodGet, "/api/plans", "", nil))
	require.NotEmpty(t, plans)

	rec := f.request(t, http.MethodPost, "/api/bookings", token, payload.CreateBookingRequest{
		Plan: plans[0].ID,
		Date: "2026-09-15",
		Time: "14:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[payload.BookingResponse](t, rec)
	assert.Equal(t, "confirmed", created.Status)
	require.NotNil(t, created.Plan)
	assert.Equal(t, plans[0].ID, created.Plan.ID)
	require.NotNil(t, created.User)
	assert.Equal(t, "bella@example.com", created.User.Email)

	rec = f.request(t, http.MethodGet, "/api/bookings/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	bookings := decodeBody[[]payload.BookingResponse](t, rec)
	require.Len(t, bookings, 1)
	assert.Equal(t, created.ID, bookings[0].ID)

	rec = f.request(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cancelled := decodeBody[payload.BookingResponse](t, rec)
	assert.Equal(t, "cancelled", cancelled.Status)
}

func TestCreateBooking_RequiresAuth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.request(t, http.MethodPost, "/api/bookings", "", payload.CreateBookingRequest{
		Plan: "000000000000000000000000",
		Date: "2026-09-15",
		Time: "14:00",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBooking_ValidationAndUnknownPlan(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	// Missing required fields.
	rec := f.request(t, http.MethodPost, "/api/bookings", token, payload.CreateBookingRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Well-formed but unknown plan id.
	rec = f.request(t, http.MethodPost, "/api/bookings", token, payload.CreateBookingRequest{
		Plan: "000000000000000000000000",
		Date: "2026-09-15",
		Time: "14:00",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed plan id.
	rec = f.request(t, http.MethodPost, "/api/bookings", token, payload.CreateBookingRequest{
		Plan: "nope",
		Date: "2026-09-15",
		Time: "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelBooking_NotOwned(t *testing.T) {
	f := newAPIFixture(t)
	ownerToken := f.signIn(t, "bella@example.com")
	otherToken := f.signIn(t, "max@example.com")

	plans := decodeBody[[]payload.PlanResponse](t, f.request(t, http.MethodGet, "/api/plans", "", nil))
	created := decodeBody[payload.BookingResponse](t, f.request(t, http.MethodPost, "/api/bookings", ownerToken, payload.CreateBookingRequest{
		Plan: plans[0].ID,
		Date: "2026-09-15",
		Time: "14:00",
	}))

	rec := f.request(t, http.MethodPut, "/api/bookings/"+created.ID+"/cancel", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	rec := f.request(t, http.MethodPost, "/api/posts", token, payload.CreatePostRequest{
		Content: "Bella made a new friend today!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[payload.PostResponse](t, rec)
	assert.Equal(t, "Bella made a new friend today!", created.Content)
	assert.Empty(t, created.Likes)

	// The feed is public.
	rec = f.request(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decodeBody[[]payload.PostResponse](t, rec)
	require.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)

	// Like toggles on and off.
	rec = f.request(t, http.MethodPost, "/api/posts/"+created.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	likes := decodeBody[payload.LikesResponse](t, rec)
	assert.Len(t, likes.Likes, 1)

	rec = f.request(t, http.MethodPost, "/api/posts/"+created.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	likes = decodeBody[payload.LikesResponse](t, rec)
	assert.Empty(t, likes.Likes)

	// Comment appends and echoes the full sequence.
	rec = f.request(t, http.MethodPost, "/api/posts/"+created.ID+"/comments", token, payload.AddCommentRequest{
		Content: "So cute!",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeBody[payload.CommentsResponse](t, rec)
	require.Len(t, comments.Comments, 1)
	assert.Equal(t, "So cute!", comments.Comments[0].Content)
}

func TestPostEndpoints_UnknownPost(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	rec := f.request(t, http.MethodPost, "/api/posts/000000000000000000000000/like", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/posts/000000000000000000000000/comments", token, payload.AddCommentRequest{
		Content: "anyone home?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePost_Validation(t *testing.T) {
	f := newAPIFixture(t)
	token := f.signIn(t, "bella@example.com")

	rec := f.request(t, http.MethodPost, "/api/posts", token, payload.CreatePostRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.request(t, http.MethodPost, "/api/posts", token, payload.CreatePostRequest{
		Content: "ok",
		Image:   "not a url",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
