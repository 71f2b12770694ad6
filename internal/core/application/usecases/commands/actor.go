package commands

import "fulfillment/internal/core/domain/model/kernel"

// Actor is who asks for a transition. Customers act on their own orders;
// admins act on any order.
type Actor struct {
	customerID kernel.UUID
	admin      bool
}

func CustomerActor(customerID kernel.UUID) (Actor, error) {
	if err := requireID("customerID", customerID); err != nil {
		return Actor{}, err
	}
	return Actor{customerID: customerID}, nil
}

func AdminActor() Actor {
	return Actor{admin: true}
}

func (a Actor) IsAdmin() bool { return a.admin }

func (a Actor) CustomerID() kernel.UUID { return a.customerID }
