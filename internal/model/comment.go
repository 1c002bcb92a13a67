package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Referenced fields that can be expanded on read.
const (
	FieldAuthor          = "author"
	FieldPostID          = "postID"
	FieldParentCommentID = "parentCommentID"
	FieldReplies         = "replies"
)

var PopulatableFields = []string{FieldAuthor, FieldPostID, FieldParentCommentID, FieldReplies}

func IsPopulatable(field string) bool {
	for _, f := range PopulatableFields {
		if f == field {
			return true
		}
	}
	return false
}

type Comment struct {
	ID              primitive.ObjectID   `json:"_id"             bson:"_id,omitempty"`
	Author          primitive.ObjectID   `json:"author"          bson:"author"`
	Content         *string              `json:"content"         bson:"content"`
	Likes           int64                `json:"likes"           bson:"likes"`
	PostID          primitive.ObjectID   `json:"postID"          bson:"postID"`
	ParentCommentID *primitive.ObjectID  `json:"parentCommentID" bson:"parentCommentID"`
	Replies         []primitive.ObjectID `json:"replies"         bson:"replies"`
	CreatedAt       time.Time            `json:"createdAt"       bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"       bson:"updatedAt"`

	// Populated holds expanded references keyed by field name.
	Populated map[string]interface{} `json:"populated,omitempty" bson:"-"`
	// Raw is the stored document, only attached on non-lean reads.
	Raw bson.Raw `json:"-" bson:"-"`
}

// NewComment is the creation payload exactly as the caller supplied it.
type NewComment struct {
	Author          string `json:"author"`
	Content         string `json:"content"`
	PostID          string `json:"postID"`
	ParentCommentID string `json:"parentCommentID,omitempty"`
}

type ReadOptions struct {
	Populate []string
	Lean     bool
}

// CommentQuery selects comments of a post created strictly before Before,
// newest first.
type CommentQuery struct {
	PostID string
	Before time.Time
	Limit  int
	ReadOptions
}

// Clone returns a deep copy so cached values are never shared with callers.
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	out := *c
	if c.Content != nil {
		content := *c.Content
		out.Content = &content
	}
	if c.ParentCommentID != nil {
		parent := *c.ParentCommentID
		out.ParentCommentID = &parent
	}
	if c.Replies != nil {
		out.Replies = append([]primitive.ObjectID{}, c.Replies...)
	}
	if c.Populated != nil {
		out.Populated = make(map[string]interface{}, len(c.Populated))
		for k, v := range c.Populated {
			out.Populated[k] = v
		}
	}
	if c.Raw != nil {
		out.Raw = append(bson.Raw{}, c.Raw...)
	}
	return &out
}

func (c *Comment) Table() string {
	return "comment"
}

// Now is the server timestamp, truncated to the precision the database keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (c *Comment) Get(ctx context.Context, db *mongo.Database, lean bool) (*Comment, error) {
	if c.ID.IsZero() {
		return nil, mongo.ErrNoDocuments
	}
	res := db.Collection(c.Table()).FindOne(ctx, bson.D{{Key: "_id", Value: c.ID}})
	if res.Err() != nil {
		return nil, res.Err()
	}
	return decodeSingle(res, lean)
}

func (c *Comment) List(ctx context.Context, db *mongo.Database, filter bson.D, lean bool, finds ...*options.FindOptions) ([]*Comment, error) {
	cursor, err := db.Collection(c.Table()).Find(ctx, filter, finds...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := make([]*Comment, 0)
	for cursor.Next(ctx) {
		var tmp Comment
		if err = cursor.Decode(&tmp); err != nil {
			return nil, err
		}
		if !lean {
			tmp.Raw = append(bson.Raw{}, cursor.Current...)
		}
		comments = append(comments, &tmp)
	}
	return comments, cursor.Err()
}

func (c *Comment) Create(ctx context.Context, db *mongo.Database) (*Comment, error) {
	now := Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Replies == nil {
		c.Replies = []primitive.ObjectID{}
	}
	res, err := db.Collection(c.Table()).InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return c, nil
}

// UpdateContent replaces the content and returns the document as it was before.
func (c *Comment) UpdateContent(ctx context.Context, db *mongo.Database, content *string, lean bool) (*Comment, error) {
	filter := bson.D{{Key: "_id", Value: c.ID}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "content", Value: content},
		{Key: "updatedAt", Value: Now()},
	}}}
	res := db.Collection(c.Table()).FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.Before))
	if res.Err() != nil {
		return nil, res.Err()
	}
	return decodeSingle(res, lean)
}

func (c *Comment) Exists(ctx context.Context, db *mongo.Database) (bool, error) {
	count, err := db.Collection(c.Table()).CountDocuments(ctx, bson.D{{Key: "_id", Value: c.ID}}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *Comment) PushReply(ctx context.Context, db *mongo.Database, replyID primitive.ObjectID) error {
	filter := bson.D{{Key: "_id", Value: c.ID}}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "replies", Value: replyID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: Now()}}},
	}
	res, err := db.Collection(c.Table()).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func decodeSingle(res *mongo.SingleResult, lean bool) (*Comment, error) {
	raw, err := res.DecodeBytes()
	if err != nil {
		return nil, err
	}
	var out Comment
	if err = bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if !lean {
		out.Raw = raw
	}
	return &out, nil
}
