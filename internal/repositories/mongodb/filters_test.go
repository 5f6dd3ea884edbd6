package mongodb

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ppsociety/membership-backend/internal/models"
)

// The removal filters carry the existence check that classifies a miss. A
// filter on _id alone cannot distinguish "no such entry" from a successful
// pull, because the updatedAt $set registers as a modification either way.

func TestRemoveRegistrationFilterRequiresActiveEntry(t *testing.T) {
	eventID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter := removeRegistrationFilter(eventID, userID)
	if filter["_id"] != eventID {
		t.Errorf("filter _id = %v, want %v", filter["_id"], eventID)
	}

	entry, ok := filter["registrations"].(bson.M)
	if !ok {
		t.Fatalf("filter registrations = %T, want bson.M", filter["registrations"])
	}
	match, ok := entry["$elemMatch"].(bson.M)
	if !ok {
		t.Fatalf("registrations clause = %v, want $elemMatch", entry)
	}
	if match["user"] != userID {
		t.Errorf("$elemMatch user = %v, want %v", match["user"], userID)
	}
	status, ok := match["status"].(bson.M)
	if !ok || status["$ne"] != models.RegistrationStatusCancelled {
		t.Errorf("$elemMatch status = %v, want $ne cancelled", match["status"])
	}
}

func TestRemoveLikeFilterRequiresExistingLike(t *testing.T) {
	newsID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	filter := removeLikeFilter(newsID, userID)
	if filter["_id"] != newsID {
		t.Errorf("filter _id = %v, want %v", filter["_id"], newsID)
	}
	if filter["likes.user"] != userID {
		t.Errorf("filter likes.user = %v, want %v", filter["likes.user"], userID)
	}
}
