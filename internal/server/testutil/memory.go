// Package testutil provides in-memory repository implementations for tests.
// They mirror the MongoDB repositories' contracts, including sort order and
// mongo.ErrNoDocuments sentinels, without needing a running database.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
)

// MemoryUserRepository is an in-memory repository.UserRepository.
type MemoryUserRepository struct {
	mu    sync.Mutex
	Users map[bson.ObjectID]*model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{Users: make(map[bson.ObjectID]*model.User)}
}

func (r *MemoryUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.Users {
		if existing.Email == user.Email {
			return nil, mongo.WriteException{
				WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key"}},
			}
		}
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()

	stored := *user
	r.Users[user.ID] = &stored

	return user, nil
}

func (r *MemoryUserRepository) GetUser(_ context.Context, id bson.ObjectID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.Users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (r *MemoryUserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.Users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *MemoryUserRepository) GetUsers(
	_ context.Context,
	ids []bson.ObjectID,
) (map[string]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make(map[string]*model.User, len(ids))
	for _, id := range ids {
		if user, ok := r.Users[id]; ok {
			copied := *user
			users[id.Hex()] = &copied
		}
	}

	return users, nil
}

func (r *MemoryUserRepository) UpdateUser(
	_ context.Context,
	id bson.ObjectID,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.Users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.ProfilePicture != nil {
		user.ProfilePicture = *params.ProfilePicture
	}

	copied := *user
	return &copied, nil
}

// MemoryVerificationCodeRepository is an in-memory
// repository.VerificationCodeRepository keyed by email. Tests can back-date
// Codes[email].ExpiresAt to exercise expiry.
type MemoryVerificationCodeRepository struct {
	mu    sync.Mutex
	Codes map[string]*model.VerificationCode
}

func NewMemoryVerificationCodeRepository() *MemoryVerificationCodeRepository {
	return &MemoryVerificationCodeRepository{Codes: make(map[string]*model.VerificationCode)}
}

func (r *MemoryVerificationCodeRepository) UpsertCode(
	_ context.Context,
	email, code string,
	expiresAt time.Time,
) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.Codes[email]
	if !ok {
		existing = &model.VerificationCode{ID: bson.NewObjectID(), Email: email}
		r.Codes[email] = existing
	}
	existing.Code = code
	existing.ExpiresAt = expiresAt

	copied := *existing
	return &copied, nil
}

func (r *MemoryVerificationCodeRepository) GetCode(
	_ context.Context,
	email string,
) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.Codes[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *code
	return &copied, nil
}

func (r *MemoryVerificationCodeRepository) DeleteCode(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.Codes, email)
	return nil
}

func (r *MemoryVerificationCodeRepository) DeleteExpiredCodes(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	now := time.Now()
	for email, code := range r.Codes {
		if code.ExpiresAt.Before(now) {
			delete(r.Codes, email)
			deleted++
		}
	}

	return deleted, nil
}

// MemoryPlanRepository is an in-memory repository.PlanRepository.
type MemoryPlanRepository struct {
	mu    sync.Mutex
	Plans []*model.Plan
}

func NewMemoryPlanRepository() *MemoryPlanRepository {
	return &MemoryPlanRepository{}
}

func (r *MemoryPlanRepository) ListPlans(_ context.Context) ([]*model.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	plans := make([]*model.Plan, 0, len(r.Plans))
	for _, plan := range r.Plans {
		copied := *plan
		plans = append(plans, &copied)
	}

	sort.Slice(plans, func(i, j int) bool { return plans[i].Price < plans[j].Price })

	return plans, nil
}

func (r *MemoryPlanRepository) GetPlan(_ context.Context, id bson.ObjectID) (*model.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, plan := range r.Plans {
		if plan.ID == id {
			copied := *plan
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *MemoryPlanRepository) CountPlans(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return int64(len(r.Plans)), nil
}

func (r *MemoryPlanRepository) CreatePlans(_ context.Context, plans []*model.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, plan := range plans {
		if plan.ID.IsZero() {
			plan.ID = bson.NewObjectID()
		}
		copied := *plan
		r.Plans = append(r.Plans, &copied)
	}

	return nil
}

// MemoryBookingRepository is an in-memory repository.BookingRepository.
type MemoryBookingRepository struct {
	mu       sync.Mutex
	Bookings []*model.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{}
}

func (r *MemoryBookingRepository) CreateBooking(
	_ context.Context,
	booking *model.Booking,
) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking.ID = bson.NewObjectID()
	// Monotonic creation times keep newest-first ordering deterministic.
	booking.CreatedAt = time.Now().Add(time.Duration(len(r.Bookings)) * time.Millisecond)

	stored := *booking
	r.Bookings = append(r.Bookings, &stored)

	return booking, nil
}

func (r *MemoryBookingRepository) GetBooking(_ context.Context, id bson.ObjectID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, booking := range r.Bookings {
		if booking.ID == id {
			copied := *booking
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *MemoryBookingRepository) ListBookingsByUser(
	_ context.Context,
	userID bson.ObjectID,
) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []*model.Booking
	for _, booking := range r.Bookings {
		if booking.UserID == userID {
			copied := *booking
			bookings = append(bookings, &copied)
		}
	}

	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}

func (r *MemoryBookingRepository) UpdateBookingStatus(
	_ context.Context,
	id, userID bson.ObjectID,
	status model.BookingStatus,
) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, booking := range r.Bookings {
		if booking.ID == id && booking.UserID == userID {
			booking.Status = status
			copied := *booking
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

// MemoryPostRepository is an in-memory repository.PostRepository.
type MemoryPostRepository struct {
	mu    sync.Mutex
	Posts []*model.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{}
}

func (r *MemoryPostRepository) CreatePost(_ context.Context, post *model.Post) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = bson.NewObjectID()
	post.CreatedAt = time.Now().Add(time.Duration(len(r.Posts)) * time.Millisecond)
	if post.Likes == nil {
		post.Likes = []bson.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	stored := clonePost(post)
	r.Posts = append(r.Posts, stored)

	return post, nil
}

func (r *MemoryPostRepository) GetPost(_ context.Context, id bson.ObjectID) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post := r.find(id)
	if post == nil {
		return nil, mongo.ErrNoDocuments
	}

	return clonePost(post), nil
}

func (r *MemoryPostRepository) ListPosts(_ context.Context) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts := make([]*model.Post, 0, len(r.Posts))
	for _, post := range r.Posts {
		posts = append(posts, clonePost(post))
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

func (r *MemoryPostRepository) AddLike(_ context.Context, postID, userID bson.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post := r.find(postID)
	if post == nil {
		return false, nil
	}

	for _, id := range post.Likes {
		if id == userID {
			return false, nil
		}
	}

	post.Likes = append(post.Likes, userID)
	return true, nil
}

func (r *MemoryPostRepository) RemoveLike(_ context.Context, postID, userID bson.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post := r.find(postID)
	if post == nil {
		return false, nil
	}

	for i, id := range post.Likes {
		if id == userID {
			post.Likes = append(post.Likes[:i], post.Likes[i+1:]...)
			return true, nil
		}
	}

	return false, nil
}

func (r *MemoryPostRepository) AppendComment(
	_ context.Context,
	postID bson.ObjectID,
	comment model.Comment,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post := r.find(postID)
	if post == nil {
		return mongo.ErrNoDocuments
	}

	post.Comments = append(post.Comments, comment)
	return nil
}

func (r *MemoryPostRepository) find(id bson.ObjectID) *model.Post {
	for _, post := range r.Posts {
		if post.ID == id {
			return post
		}
	}

	return nil
}

func clonePost(post *model.Post) *model.Post {
	copied := *post
	copied.Likes = append([]bson.ObjectID(nil), post.Likes...)
	copied.Comments = append([]model.Comment(nil), post.Comments...)
	if copied.Likes == nil {
		copied.Likes = []bson.ObjectID{}
	}
	if copied.Comments == nil {
		copied.Comments = []model.Comment{}
	}

	return &copied
}
