package authz

import (
	"context"
	"errors"
	"fmt"

	"foodshare/internal/entities"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden")

type Action string

const (
	ActionDonationCreate    Action = "donation.create"
	ActionDonationDelete    Action = "donation.delete"
	ActionDonationReserve   Action = "donation.reserve"
	ActionReservationCancel Action = "reservation.cancel"
	ActionDeliveryClaim     Action = "delivery.claim"
	ActionDeliveryPickup    Action = "delivery.pickup"
	ActionDeliveryComplete  Action = "delivery.complete"
	ActionDeliveryCancel    Action = "delivery.cancel"
)

// Resource то, над чем выполняется действие. OwnerID - донор пожертвования,
// AssigneeID - текущий исполнитель (резервирующая НКО или волонтер доставки).
type Resource struct {
	ID         uuid.UUID
	OwnerID    *uuid.UUID
	AssigneeID *uuid.UUID
}

type Rule func(session entities.Session, resource Resource) error

type Option func(*Policy)

// WithRule заменяет правило для действия.
func WithRule(action Action, rule Rule) Option {
	return func(p *Policy) {
		p.rules[action] = rule
	}
}

// Policy набор правил по действиям. Действие без правила запрещено.
type Policy struct {
	rules map[Action]Rule
}

func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		rules: map[Action]Rule{
			ActionDonationCreate:    RequireUserType(entities.UserDonor),
			ActionDonationDelete:    All(RequireUserType(entities.UserDonor), RequireOwner),
			ActionDonationReserve:   All(RequireUserType(entities.UserNGO), ForbidOwner),
			ActionReservationCancel: RequireUserType(entities.UserNGO),
			ActionDeliveryClaim:     RequireUserType(entities.UserVolunteer),
			ActionDeliveryPickup:    RequireUserType(entities.UserVolunteer),
			ActionDeliveryComplete:  RequireUserType(entities.UserVolunteer),
			ActionDeliveryCancel:    All(RequireUserType(entities.UserVolunteer), RequireAssignee),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Policy) Authorize(_ context.Context, session entities.Session, action Action, resource Resource) error {
	rule, ok := p.rules[action]
	if !ok || rule == nil {
		return fmt.Errorf("%w: no rule for %s", ErrForbidden, action)
	}
	if err := rule(session, resource); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

func RequireUserType(userType entities.UserType) Rule {
	return func(session entities.Session, _ Resource) error {
		if session.UserType != userType {
			return fmt.Errorf("%w: only %s accounts can do this", ErrForbidden, userType)
		}
		return nil
	}
}

func RequireOwner(session entities.Session, resource Resource) error {
	if resource.OwnerID == nil || *resource.OwnerID != session.UserID {
		return fmt.Errorf("%w: you do not own this resource", ErrForbidden)
	}
	return nil
}

func ForbidOwner(session entities.Session, resource Resource) error {
	if resource.OwnerID != nil && *resource.OwnerID == session.UserID {
		return fmt.Errorf("%w: you cannot act on your own donation", ErrForbidden)
	}
	return nil
}

func RequireAssignee(session entities.Session, resource Resource) error {
	if resource.AssigneeID == nil || *resource.AssigneeID != session.UserID {
		return fmt.Errorf("%w: you are not assigned to this resource", ErrForbidden)
	}
	return nil
}

// All проверяет правила по порядку до первой ошибки.
func All(rules ...Rule) Rule {
	return func(session entities.Session, resource Resource) error {
		for _, rule := range rules {
			if err := rule(session, resource); err != nil {
				return err
			}
		}
		return nil
	}
}

// Allow правило, пропускающее всех.
func Allow(entities.Session, Resource) error {
	return nil
}
