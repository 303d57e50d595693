package models

import "time"

// Runway event types.
const (
	EventRequestAccepted = "request.accepted"
	EventRequestRejected = "request.rejected"
	EventLanded          = "landed"
	EventApproach        = "approach"
)

// RunwayEvent records one store decision. It is published to Redis and
// appended to the audit journal.
type RunwayEvent struct {
	ID     string    `json:"id" bson:"id"`
	Type   string    `json:"type" bson:"type"`
	Minute int       `json:"minute" bson:"minute"`
	Time   string    `json:"time" bson:"time"`
	Reason string    `json:"reason,omitempty" bson:"reason,omitempty"` // rejection code
	K      int       `json:"k" bson:"k"`
	At     time.Time `json:"at" bson:"at"`
}
