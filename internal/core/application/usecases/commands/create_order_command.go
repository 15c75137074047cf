package commands

import (
	"errors"

	"github.com/dehanf/Smart-takeout-system/internal/core/domain/model/kernel"
	"github.com/dehanf/Smart-takeout-system/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerNameIsRequired = errors.New("customer name is required")
	ErrPrepTimeIsInvalid      = errors.New("prep time must be greater than 0 minutes")
)

// CreateOrderCommand represents a request to register a new takeout order
// for tracking. Captures the customer, the stationary shop destination and
// the kitchen preparation time the slack rule works against.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	shop, _ := kernel.NewGeoPoint(51.5007, -0.1246)
//	cmd, err := NewCreateOrderCommand(orderID, "Ada", shop, "12 Bridge St", 10)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerName    string
	shopLocation    kernel.GeoPoint
	shopAddress     string
	prepTimeMinutes int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates the order id, customer name, shop coordinates and prep time.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerName string,
	shopLocation kernel.GeoPoint,
	shopAddress string,
	prepTimeMinutes int,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		shopAddress: shopAddress,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerName(customerName),
		cmd.setShopLocation(shopLocation),
		cmd.setPrepTimeMinutes(prepTimeMinutes),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the customer display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// ShopLocation returns the stationary shop destination.
func (c CreateOrderCommand) ShopLocation() kernel.GeoPoint {
	return c.shopLocation
}

// ShopAddress returns the optional human-readable shop address.
func (c CreateOrderCommand) ShopAddress() string {
	return c.shopAddress
}

// PrepTimeMinutes returns the kitchen preparation time in minutes.
func (c CreateOrderCommand) PrepTimeMinutes() int {
	return c.prepTimeMinutes
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}

	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setShopLocation(shopLocation kernel.GeoPoint) error {
	if err := shopLocation.Validate(); err != nil {
		return err
	}

	c.shopLocation = shopLocation
	return nil
}

func (c *CreateOrderCommand) setPrepTimeMinutes(prepTimeMinutes int) error {
	if prepTimeMinutes <= 0 {
		return ErrPrepTimeIsInvalid
	}

	c.prepTimeMinutes = prepTimeMinutes
	return nil
}
