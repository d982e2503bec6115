package payload

import (
	"time"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

type CreatePostRequest struct {
	Content string `json:"content"         validate:"required"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
}

type AddCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// PostAuthor is the reduced user shape embedded in feed responses.
type PostAuthor struct {
	ID             string `json:"id"`
	Username       string `json:"username,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type CommentResponse struct {
	ID        string     `json:"id"`
	User      PostAuthor `json:"user"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

type PostResponse struct {
	ID        string            `json:"id"`
	User      PostAuthor        `json:"user"`
	Content   string            `json:"content"`
	Image     string            `json:"image,omitempty"`
	Likes     []string          `json:"likes"`
	Comments  []CommentResponse `json:"comments"`
	CreatedAt time.Time         `json:"createdAt"`
}

type LikesResponse struct {
	Likes []string `json:"likes"`
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

// NewPostAuthor maps a user record to the reduced author shape. An unknown
// author (deleted or missing) degrades to an id-only entry.
func NewPostAuthor(id string, user *model.User) PostAuthor {
	if user == nil {
		return PostAuthor{ID: id}
	}

	return PostAuthor{
		ID:             user.ID.Hex(),
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
	}
}

// NewCommentResponses maps embedded comments, expanding authors from the
// given lookup keyed by user id hex.
func NewCommentResponses(comments []model.Comment, authors map[string]*model.User) []CommentResponse {
	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		userID := comment.UserID.Hex()
		responses = append(responses, CommentResponse{
			ID:        comment.ID.Hex(),
			User:      NewPostAuthor(userID, authors[userID]),
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	return responses
}

// NewPostResponse maps a post with its author and comment authors expanded
// from the given lookup keyed by user id hex.
func NewPostResponse(post *model.Post, authors map[string]*model.User) PostResponse {
	likes := make([]string, 0, len(post.Likes))
	for _, id := range post.Likes {
		likes = append(likes, id.Hex())
	}

	userID := post.UserID.Hex()

	return PostResponse{
		ID:        post.ID.Hex(),
		User:      NewPostAuthor(userID, authors[userID]),
		Content:   post.Content,
		Image:     post.Image,
		Likes:     likes,
		Comments:  NewCommentResponses(post.Comments, authors),
		CreatedAt: post.CreatedAt,
	}
}
