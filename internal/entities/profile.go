package entities

import "github.com/google/uuid"

type UserType string

const (
	UserDonor     UserType = "donor"
	UserNGO       UserType = "ngo"
	UserVolunteer UserType = "volunteer"
)

func (t UserType) String() string {
	return string(t)
}

func (t UserType) Valid() bool {
	return t == UserDonor || t == UserNGO || t == UserVolunteer
}

type Profile struct {
	ID               uuid.UUID
	UserType         UserType
	FullName         string
	OrganizationName *string
}

// Session контекст вызывающего, передается в каждую операцию сервисов явно.
type Session struct {
	UserID           uuid.UUID
	UserType         UserType
	FullName         string
	OrganizationName *string
}

func NewSession(p Profile) Session {
	return Session{
		UserID:           p.ID,
		UserType:         p.UserType,
		FullName:         p.FullName,
		OrganizationName: p.OrganizationName,
	}
}
