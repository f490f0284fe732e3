package claims

import (
	"time"

	"github.com/google/uuid"
)

// CorrespondenceType is the communication channel of a record
type CorrespondenceType string

const (
	CorrespondenceEmail  CorrespondenceType = "EMAIL"
	CorrespondencePortal CorrespondenceType = "PORTAL"
	CorrespondencePhone  CorrespondenceType = "PHONE"
	CorrespondenceMail   CorrespondenceType = "MAIL"
)

// IsValid checks whether the correspondence type is known
func (t CorrespondenceType) IsValid() bool {
	switch t {
	case CorrespondenceEmail, CorrespondencePortal, CorrespondencePhone, CorrespondenceMail:
		return true
	}
	return false
}

// Direction indicates whether a communication was sent or received
type Direction string

const (
	DirectionSent     Direction = "SENT"
	DirectionReceived Direction = "RECEIVED"
)

// IsValid checks whether the direction is known
func (d Direction) IsValid() bool {
	return d == DirectionSent || d == DirectionReceived
}

// CorrespondenceRecord is an immutable communication record attached to a
// claim. Records are strictly append-only: once added to a claim's history
// they are never modified or removed, which makes the ledger a complete
// audit trail independent of the mutable status field.
type CorrespondenceRecord struct {
	ID          uuid.UUID
	Date        time.Time
	Type        CorrespondenceType
	Direction   Direction
	Subject     string
	Content     string
	Attachments []string // file names
}

// NewCorrespondenceRecord creates a new correspondence record stamped now
func NewCorrespondenceRecord(
	corrType CorrespondenceType,
	direction Direction,
	subject, content string,
	attachments ...string,
) CorrespondenceRecord {
	return CorrespondenceRecord{
		ID:          uuid.New(),
		Date:        time.Now(),
		Type:        corrType,
		Direction:   direction,
		Subject:     subject,
		Content:     content,
		Attachments: attachments,
	}
}
