package monogo

import (
	"context"
	"errors"

	"github.com/FavorLabs/favor-comments/internal/core"
	"github.com/FavorLabs/favor-comments/internal/model"
	"github.com/FavorLabs/favor-comments/pkg/util"
	"github.com/Masterminds/semver/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	_ core.CommentModel = (*commentServant)(nil)
	_ core.VersionInfo  = (*commentServant)(nil)
)

type commentServant struct {
	db           *mongo.Database
	userTable    string
	postTable    string
	transactions bool
}

type Option func(*commentServant)

// WithRefTables names the collections author and postID point into.
func WithRefTables(user, post string) Option {
	return func(s *commentServant) {
		if user != "" {
			s.userTable = user
		}
		if post != "" {
			s.postTable = post
		}
	}
}

// WithTransactions makes creation of a reply and the update of its parent atomic.
func WithTransactions(enable bool) Option {
	return func(s *commentServant) {
		s.transactions = enable
	}
}

// NewCommentModel builds the default comment model on top of db.
func NewCommentModel(db *mongo.Database, opts ...Option) core.CommentModel {
	s := &commentServant{
		db:        db,
		userTable: "user",
		postTable: "post",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *commentServant) Name() string {
	return "MongoComment"
}

func (s *commentServant) Version() *semver.Version {
	return semver.MustParse("v0.1.0")
}

func (s *commentServant) IsValidID(id string) bool {
	return util.IsObjectIDHex(id)
}

func (s *commentServant) Find(ctx context.Context, q *model.CommentQuery) ([]*model.Comment, error) {
	postID, err := primitive.ObjectIDFromHex(q.PostID)
	if err != nil {
		return nil, err
	}
	filter := bson.D{
		{Key: "postID", Value: postID},
		{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: q.Before}}},
	}
	finds := []*options.FindOptions{options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})}
	if q.Limit > 0 {
		finds = append(finds, options.Find().SetLimit(int64(q.Limit)))
	}

	comments, err := (&model.Comment{}).List(ctx, s.db, filter, q.Lean, finds...)
	if err != nil {
		return nil, err
	}
	if err = s.populate(ctx, comments, q.Populate); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *commentServant) FindByID(ctx context.Context, id string, opts *model.ReadOptions) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	opts = readOptions(opts)
	comment, err := (&model.Comment{ID: oid}).Get(ctx, s.db, opts.Lean)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err = s.populate(ctx, []*model.Comment{comment}, opts.Populate); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentServant) FindByIDAndUpdate(ctx context.Context, id string, content *string, opts *model.ReadOptions) (*model.Comment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	opts = readOptions(opts)
	old, err := (&model.Comment{ID: oid}).UpdateContent(ctx, s.db, content, opts.Lean)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return old, nil
}

func (s *commentServant) Create(ctx context.Context, c *model.NewComment) (string, error) {
	author, err := primitive.ObjectIDFromHex(c.Author)
	if err != nil {
		return "", err
	}
	postID, err := primitive.ObjectIDFromHex(c.PostID)
	if err != nil {
		return "", err
	}
	parentID, err := util.OptionalObjectID(c.ParentCommentID)
	if err != nil {
		return "", err
	}
	content := c.Content
	comment := &model.Comment{
		Author:          author,
		Content:         &content,
		PostID:          postID,
		ParentCommentID: parentID,
	}

	if parentID == nil {
		if _, err = comment.Create(ctx, s.db); err != nil {
			return "", err
		}
		return comment.ID.Hex(), nil
	}

	parent := &model.Comment{ID: *parentID}
	if s.transactions {
		err = util.MongoTransaction(ctx, s.db, func(ctx context.Context) error {
			if _, err := comment.Create(ctx, s.db); err != nil {
				return err
			}
			return parent.PushReply(ctx, s.db, comment.ID)
		})
		if err != nil {
			return "", err
		}
		return comment.ID.Hex(), nil
	}

	if _, err = comment.Create(ctx, s.db); err != nil {
		return "", err
	}
	// the reply itself is stored, a stale replies list on the parent is tolerated
	if err = parent.PushReply(ctx, s.db, comment.ID); err != nil {
		logrus.Warnf("commentServant.Create push reply %s to parent %s err: %v", comment.ID.Hex(), parentID.Hex(), err)
	}
	return comment.ID.Hex(), nil
}

func (s *commentServant) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	return (&model.Comment{ID: oid}).Exists(ctx, s.db)
}

func readOptions(opts *model.ReadOptions) *model.ReadOptions {
	if opts == nil {
		return &model.ReadOptions{Lean: true}
	}
	return opts
}
