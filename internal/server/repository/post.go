package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/model"
)

// PostRepository defines the interface for feed post database operations.
// Like and comment writes are atomic field updates rather than whole-document
// read-modify-write, so concurrent toggles and appends cannot clobber each
// other.
type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) (*model.Post, error)
	GetPost(ctx context.Context, id bson.ObjectID) (*model.Post, error)

	// ListPosts returns all posts, newest first.
	ListPosts(ctx context.Context) ([]*model.Post, error)

	// AddLike adds the user to the post's like set if absent. It reports
	// whether a post document matched (absent user included).
	AddLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error)

	// RemoveLike removes the user from the post's like set if present. It
	// reports whether a post document matched.
	RemoveLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error)

	// AppendComment atomically appends a comment to the post. It returns
	// mongo.ErrNoDocuments when the post does not exist.
	AppendComment(ctx context.Context, postID bson.ObjectID, comment model.Comment) error
}

const postCollection = "posts"

type postMongoRepository struct {
	db *mongo.Database
}

// NewPostMongoRepository creates a new MongoDB repository for posts.
func NewPostMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PostRepository {
	collection := db.Collection(postCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create post indexes")
	}

	return &postMongoRepository{db: db}
}

func (r *postMongoRepository) CreatePost(ctx context.Context, post *model.Post) (*model.Post, error) {
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []bson.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	result, err := r.db.Collection(postCollection).InsertOne(ctx, post)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		post.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return post, nil
}

func (r *postMongoRepository) GetPost(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	result := r.db.Collection(postCollection).FindOne(ctx, bson.M{"_id": id})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var post model.Post
	if err := result.Decode(&post); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postMongoRepository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.db.Collection(postCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*model.Post
	for cursor.Next(ctx) {
		var post model.Post
		if err := cursor.Decode(&post); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postMongoRepository) AddLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error) {
	result, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

func (r *postMongoRepository) RemoveLike(ctx context.Context, postID, userID bson.ObjectID) (bool, error) {
	result, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount == 1, nil
}

func (r *postMongoRepository) AppendComment(
	ctx context.Context,
	postID bson.ObjectID,
	comment model.Comment,
) error {
	result, err := r.db.Collection(postCollection).UpdateOne(
		ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
