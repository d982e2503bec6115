package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/payload"
)

// PostHandler serves the community feed endpoints.
type PostHandler struct {
	postUsecase usecase.PostUsecase
	logger      *zerolog.Logger
}

// NewPostHandler creates a new PostHandler instance.
func NewPostHandler(postUsecase usecase.PostUsecase, logger *zerolog.Logger) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		logger:      logger,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req payload.CreatePostRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.postUsecase.CreatePost(r.Context(), user.ID, req.Content, req.Image)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create post")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusCreated, payload.NewPostResponse(detail.Post, detail.Authors))
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.postUsecase.ListPosts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list posts")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	responses := make([]payload.PostResponse, 0, len(details))
	for _, detail := range details {
		responses = append(responses, payload.NewPostResponse(detail.Post, detail.Authors))
	}

	respondJSON(w, http.StatusOK, responses)
}

func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	likes, err := h.postUsecase.ToggleLike(r.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to toggle like")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	likeIDs := make([]string, 0, len(likes))
	for _, likeID := range likes {
		likeIDs = append(likeIDs, likeID.Hex())
	}

	respondJSON(w, http.StatusOK, payload.LikesResponse{Likes: likeIDs})
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req payload.AddCommentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "post not found")
		return
	}

	comments, authors, err := h.postUsecase.AddComment(r.Context(), user.ID, id, req.Content)
	if err != nil {
		if errors.Is(err, usecase.ErrPostNotFound) {
			respondError(w, http.StatusNotFound, "post not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to add comment")
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, payload.CommentsResponse{
		Comments: payload.NewCommentResponses(comments, authors),
	})
}
