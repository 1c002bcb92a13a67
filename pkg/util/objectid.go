package util

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsObjectIDHex reports whether s is a 24 char hex object id.
func IsObjectIDHex(s string) bool {
	return primitive.IsValidObjectID(s)
}

// OptionalObjectID parses s into a pointer, returning nil for the empty string.
func OptionalObjectID(s string) (*primitive.ObjectID, error) {
	if s == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, err
	}
	return &oid, nil
}
