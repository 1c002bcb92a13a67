package monogo

import (
	"context"
	"fmt"

	"github.com/FavorLabs/favor-comments/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// populate expands referenced documents with one $in query per field and
// stitches them back onto the comments.
func (s *commentServant) populate(ctx context.Context, comments []*model.Comment, fields []string) error {
	if len(comments) == 0 {
		return nil
	}
	for _, field := range fields {
		var err error
		switch field {
		case model.FieldAuthor:
			err = s.populateOne(ctx, comments, field, s.userTable, func(c *model.Comment) *primitive.ObjectID {
				return &c.Author
			})
		case model.FieldPostID:
			err = s.populateOne(ctx, comments, field, s.postTable, func(c *model.Comment) *primitive.ObjectID {
				return &c.PostID
			})
		case model.FieldParentCommentID:
			err = s.populateOne(ctx, comments, field, (&model.Comment{}).Table(), func(c *model.Comment) *primitive.ObjectID {
				return c.ParentCommentID
			})
		case model.FieldReplies:
			err = s.populateReplies(ctx, comments)
		default:
			err = fmt.Errorf("cannot populate unknown field %q", field)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *commentServant) populateOne(ctx context.Context, comments []*model.Comment, field, table string, ref func(*model.Comment) *primitive.ObjectID) error {
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		if id := ref(c); id != nil && !id.IsZero() {
			ids = append(ids, *id)
		}
	}
	docs, err := s.lookup(ctx, table, ids)
	if err != nil {
		return err
	}
	for _, c := range comments {
		var value interface{}
		if id := ref(c); id != nil {
			if doc, ok := docs[*id]; ok {
				value = doc
			}
		}
		setPopulated(c, field, value)
	}
	return nil
}

func (s *commentServant) populateReplies(ctx context.Context, comments []*model.Comment) error {
	ids := make([]primitive.ObjectID, 0)
	for _, c := range comments {
		ids = append(ids, c.Replies...)
	}
	docs, err := s.lookup(ctx, (&model.Comment{}).Table(), ids)
	if err != nil {
		return err
	}
	for _, c := range comments {
		replies := make([]bson.M, 0, len(c.Replies))
		for _, id := range c.Replies {
			if doc, ok := docs[id]; ok {
				replies = append(replies, doc)
			}
		}
		setPopulated(c, model.FieldReplies, replies)
	}
	return nil
}

func (s *commentServant) lookup(ctx context.Context, table string, ids []primitive.ObjectID) (map[primitive.ObjectID]bson.M, error) {
	out := make(map[primitive.ObjectID]bson.M, len(ids))
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := s.db.Collection(table).Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if id, ok := doc["_id"].(primitive.ObjectID); ok {
			out[id] = doc
		}
	}
	return out, nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func setPopulated(c *model.Comment, field string, value interface{}) {
	if c.Populated == nil {
		c.Populated = make(map[string]interface{})
	}
	c.Populated[field] = value
}
