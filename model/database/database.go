package database

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Device is the persisted shape of a device document. LastChecked is stored
// as an RFC3339 string so the document round-trips exactly what the API
// accepted.
type Device struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	IPAddress   string             `bson:"ip_address"`
	Type        string             `bson:"type"`
	Location    string             `bson:"location,omitempty"`
	Status      string             `bson:"status"`
	LastChecked string             `bson:"last_checked,omitempty"`
}
