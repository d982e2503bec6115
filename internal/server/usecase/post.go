package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
)

// PostUsecase defines the business logic for the community feed.
type PostUsecase interface {
	// CreatePost persists a post authored by the user.
	CreatePost(ctx context.Context, userID bson.ObjectID, content, image string) (*PostDetail, error)

	// ListPosts returns all posts newest first with post and comment
	// authors loaded.
	ListPosts(ctx context.Context) ([]*PostDetail, error)

	// ToggleLike flips the user's membership in the post's like set and
	// returns the resulting set.
	ToggleLike(ctx context.Context, userID, postID bson.ObjectID) ([]bson.ObjectID, error)

	// AddComment appends a comment to the post and returns the updated
	// comment sequence with authors loaded.
	AddComment(ctx context.Context, userID, postID bson.ObjectID, content string) ([]model.Comment, map[string]*model.User, error)
}

// PostDetail is a post together with the author records referenced by the
// post and its comments, keyed by user id hex.
type PostDetail struct {
	Post    *model.Post
	Authors map[string]*model.User
}

var ErrPostNotFound = errors.New("post not found")

type postUsecase struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostUsecase creates a new instance of PostUsecase.
func NewPostUsecase(postRepo repository.PostRepository, userRepo repository.UserRepository) PostUsecase {
	return &postUsecase{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (u *postUsecase) CreatePost(
	ctx context.Context,
	userID bson.ObjectID,
	content, image string,
) (*PostDetail, error) {
	post, err := u.postRepo.CreatePost(ctx, &model.Post{
		UserID:  userID,
		Content: content,
		Image:   image,
	})
	if err != nil {
		return nil, err
	}

	authors, err := u.userRepo.GetUsers(ctx, []bson.ObjectID{userID})
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, Authors: authors}, nil
}

func (u *postUsecase) ListPosts(ctx context.Context) ([]*PostDetail, error) {
	posts, err := u.postRepo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	authors, err := u.userRepo.GetUsers(ctx, collectAuthorIDs(posts))
	if err != nil {
		return nil, err
	}

	details := make([]*PostDetail, 0, len(posts))
	for _, post := range posts {
		details = append(details, &PostDetail{Post: post, Authors: authors})
	}

	return details, nil
}

func (u *postUsecase) ToggleLike(
	ctx context.Context,
	userID, postID bson.ObjectID,
) ([]bson.ObjectID, error) {
	added, err := u.postRepo.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if !added {
		removed, err := u.postRepo.RemoveLike(ctx, postID, userID)
		if err != nil {
			return nil, err
		}
		if !removed {
			return nil, ErrPostNotFound
		}
	}

	post, err := u.postRepo.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return post.Likes, nil
}

func (u *postUsecase) AddComment(
	ctx context.Context,
	userID, postID bson.ObjectID,
	content string,
) ([]model.Comment, map[string]*model.User, error) {
	comment := model.Comment{
		ID:        bson.NewObjectID(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := u.postRepo.AppendComment(ctx, postID, comment); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrPostNotFound
		}
		return nil, nil, err
	}

	post, err := u.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}

	commentAuthorIDs := make([]bson.ObjectID, 0, len(post.Comments))
	for _, c := range post.Comments {
		commentAuthorIDs = append(commentAuthorIDs, c.UserID)
	}

	authors, err := u.userRepo.GetUsers(ctx, commentAuthorIDs)
	if err != nil {
		return nil, nil, err
	}

	return post.Comments, authors, nil
}

func collectAuthorIDs(posts []*model.Post) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{})
	var ids []bson.ObjectID

	add := func(id bson.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for _, post := range posts {
		add(post.UserID)
		for _, comment := range post.Comments {
			add(comment.UserID)
		}
	}

	return ids
}
