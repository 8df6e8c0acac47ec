package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Buddy request lifecycle states. A request transitions out of pending
// exactly once; accepted and rejected are terminal.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// BuddyRequest is a directed friendship proposal. At most one pending
// request may exist per ordered (requester, recipient) pair; a rejected
// row does not block a later re-request.
type BuddyRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterID primitive.ObjectID `bson:"requester_id" json:"requester_id"`
	RecipientID primitive.ObjectID `bson:"recipient_id" json:"recipient_id"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// PendingRequestView is a pending request joined with the requester's
// public identity, as shown to the recipient.
type PendingRequestView struct {
	ID                  primitive.ObjectID `json:"id"`
	RequesterID         primitive.ObjectID `json:"requesterId"`
	RequesterUsername   string             `json:"requesterUsername"`
	RequesterScreenName string             `json:"requesterScreenName"`
	CreatedAt           time.Time          `json:"createdAt"`
}
