// Package domain holds the entities and value objects of the player catalog.
package domain

// UpdateStatus marks whether a player document reflects the latest
// authoritative sync or has been flagged for manual correction.
type UpdateStatus string

const (
	// UpdateStatusUpdated means the document reflects the last successful
	// automated or authoritative write. It is the default status and the
	// only value the synchronization path ever produces.
	UpdateStatusUpdated UpdateStatus = "UPDATED"

	// UpdateStatusToUpdate means the document has been flagged for manual
	// correction and must not be overwritten by a non-overwrite merge.
	UpdateStatusToUpdate UpdateStatus = "TO_UPDATE"
)

// Player is a catalog entry keyed by the external provider's player id,
// which is stable across synchronization runs. Date fields are ISO date
// strings as delivered by the provider.
type Player struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Position     string       `bson:"position" json:"position"`
	DateOfBirth  string       `bson:"dateOfBirth" json:"dateOfBirth"`
	Age          int          `bson:"age" json:"age"`
	Nationality  []string     `bson:"nationality" json:"nationality"`
	Height       int          `bson:"height" json:"height"`
	Foot         string       `bson:"foot" json:"foot"`
	JoinedOn     string       `bson:"joinedOn" json:"joinedOn"`
	SignedFrom   string       `bson:"signedFrom" json:"signedFrom"`
	Contract     string       `bson:"contract" json:"contract"`
	MarketValue  int64        `bson:"marketValue" json:"marketValue"`
	Status       string       `bson:"status,omitempty" json:"status,omitempty"`
	ClubID       string       `bson:"clubId" json:"clubId"`
	IsActive     bool         `bson:"isActive" json:"isActive"`
	UpdateStatus UpdateStatus `bson:"updateStatus" json:"-"`
}
