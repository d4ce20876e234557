// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps the order root to a relational row with its child entities in
// dedicated tables, indexed for efficient querying by status.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	StoreID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	Currency         string         `gorm:"type:varchar(3);not null"`
	Status           int            `gorm:"type:int;not null;index"`
	Version          int64          `gorm:"type:bigint;not null;default:1"`
	ShippingAddress  AddressDTO     `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress   AddressDTO     `gorm:"embedded;embeddedPrefix:billing_"`
	ShippingMethodID *uuid.UUID     `gorm:"type:uuid"`
	PromotionCodes   pq.StringArray `gorm:"type:text[]"`

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipments []ShipmentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments  []PaymentDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded postal address within the order table.
// An empty Line1 means the address was never set on the order.
type AddressDTO struct {
	FullName    string `gorm:"type:varchar(255)"`
	Line1       string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(255)"`
	Zip         string `gorm:"type:varchar(32)"`
	CountryCode string `gorm:"type:varchar(2)"`
}

// LineItemDTO represents the database structure for persisting line items.
type LineItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	SKU       string    `gorm:"type:varchar(255);not null"`
	Quantity  int       `gorm:"type:int;not null"`
	UnitPrice int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for line item entities.
func (LineItemDTO) TableName() string {
	return "line_items"
}

// ShipmentDTO represents the database structure for persisting shipments.
type ShipmentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	StockLocationID uuid.UUID `gorm:"type:uuid;not null;index"`
	State           int       `gorm:"type:int;not null;index"`
	TrackingNumber  string    `gorm:"type:varchar(255)"`

	Units []InventoryUnitDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// InventoryUnitDTO represents the database structure for persisting inventory units.
type InventoryUnitDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	State      int       `gorm:"type:int;not null;index"`
}

// TableName specifies the database table name for inventory unit entities.
func (InventoryUnitDTO) TableName() string {
	return "inventory_units"
}

// PaymentDTO represents the database structure for persisting payments.
type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount  int64     `gorm:"type:bigint;not null"`
	State   int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for payment entities.
func (PaymentDTO) TableName() string {
	return "payments"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps the root and every child entity so one save persists the whole aggregate.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	var shippingMethodID *uuid.UUID
	if id := aggregate.ShippingMethodID(); id != nil {
		raw := id.Bytes()
		shippingMethodID = &raw
	}

	lineItems := make([]LineItemDTO, 0, len(aggregate.LineItems()))
	for _, li := range aggregate.LineItems() {
		lineItems = append(lineItems, LineItemDTO{
			ID:        li.ID().Bytes(),
			OrderID:   orderID,
			VariantID: li.VariantID().Bytes(),
			SKU:       li.SKU(),
			Quantity:  li.Quantity(),
			UnitPrice: li.UnitPrice(),
		})
	}

	shipments := make([]ShipmentDTO, 0, len(aggregate.Shipments()))
	for _, s := range aggregate.Shipments() {
		units := make([]InventoryUnitDTO, 0, len(s.Units()))
		for _, u := range s.Units() {
			units = append(units, InventoryUnitDTO{
				ID:         u.ID().Bytes(),
				ShipmentID: s.ID().Bytes(),
				LineItemID: u.LineItemID().Bytes(),
				VariantID:  u.VariantID().Bytes(),
				State:      int(u.State()),
			})
		}
		shipments = append(shipments, ShipmentDTO{
			ID:              s.ID().Bytes(),
			OrderID:         orderID,
			StockLocationID: s.StockLocationID().Bytes(),
			State:           int(s.State()),
			TrackingNumber:  s.TrackingNumber(),
			Units:           units,
		})
	}

	payments := make([]PaymentDTO, 0, len(aggregate.Payments()))
	for _, p := range aggregate.Payments() {
		payments = append(payments, PaymentDTO{
			ID:      p.ID().Bytes(),
			OrderID: orderID,
			Amount:  p.Amount(),
			State:   int(p.State()),
		})
	}

	return OrderDTO{
		ID:               orderID,
		StoreID:          aggregate.StoreID().Bytes(),
		Currency:         aggregate.Currency(),
		Status:           int(aggregate.Status()),
		ShippingAddress:  addressToDTO(aggregate.ShippingAddress()),
		BillingAddress:   addressToDTO(aggregate.BillingAddress()),
		ShippingMethodID: shippingMethodID,
		PromotionCodes:   pq.StringArray(aggregate.PromotionCodes()),
		LineItems:        lineItems,
		Shipments:        shipments,
		Payments:         payments,
	}
}

func addressToDTO(address *order.Address) AddressDTO {
	if address == nil {
		return AddressDTO{}
	}
	return AddressDTO{
		FullName:    address.FullName(),
		Line1:       address.Line1(),
		City:        address.City(),
		Zip:         address.Zip(),
		CountryCode: address.CountryCode(),
	}
}

func addressFromDTO(dto AddressDTO) (*order.Address, error) {
	if dto.Line1 == "" {
		return nil, nil
	}
	address, err := order.NewAddress(dto.FullName, dto.Line1, dto.City, dto.Zip, dto.CountryCode)
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including child entities using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var shippingMethodID *kernel.UUID
	if dto.ShippingMethodID != nil {
		mID, methodErr := kernel.UUIDFromBytes((*dto.ShippingMethodID)[:])
		if methodErr != nil {
			return nil, methodErr
		}
		shippingMethodID = &mID
	}

	shippingAddress, err := addressFromDTO(dto.ShippingAddress)
	if err != nil {
		return nil, err
	}
	billingAddress, err := addressFromDTO(dto.BillingAddress)
	if err != nil {
		return nil, err
	}

	lineItems := make([]*order.LineItem, 0, len(dto.LineItems))
	for _, liDTO := range dto.LineItems {
		li, liErr := lineItemToDomain(liDTO)
		if liErr != nil {
			return nil, liErr
		}
		lineItems = append(lineItems, li)
	}

	shipments := make([]*order.Shipment, 0, len(dto.Shipments))
	for _, sDTO := range dto.Shipments {
		s, sErr := shipmentToDomain(sDTO)
		if sErr != nil {
			return nil, sErr
		}
		shipments = append(shipments, s)
	}

	payments := make([]*order.Payment, 0, len(dto.Payments))
	for _, pDTO := range dto.Payments {
		p, pErr := paymentToDomain(pDTO)
		if pErr != nil {
			return nil, pErr
		}
		payments = append(payments, p)
	}

	return order.RestoreOrder(
		id, storeID,
		dto.Currency,
		order.Status(dto.Status),
		shippingAddress, billingAddress,
		shippingMethodID,
		lineItems,
		shipments,
		payments,
		[]string(dto.PromotionCodes),
	)
}

func lineItemToDomain(dto LineItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreLineItem(id, variantID, dto.SKU, dto.Quantity, dto.UnitPrice)
}

func shipmentToDomain(dto ShipmentDTO) (*order.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.UUIDFromBytes(dto.StockLocationID[:])
	if err != nil {
		return nil, err
	}

	units := make([]*order.InventoryUnit, 0, len(dto.Units))
	for _, uDTO := range dto.Units {
		unit, uErr := unitToDomain(uDTO)
		if uErr != nil {
			return nil, uErr
		}
		units = append(units, unit)
	}

	return order.RestoreShipment(id, locationID, order.ShipmentState(dto.State), dto.TrackingNumber, units)
}

func unitToDomain(dto InventoryUnitDTO) (*order.InventoryUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	lineItemID, err := kernel.UUIDFromBytes(dto.LineItemID[:])
	if err != nil {
		return nil, err
	}
	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreInventoryUnit(id, lineItemID, variantID, order.UnitState(dto.State))
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return order.RestorePayment(id, dto.Amount, order.PaymentState(dto.State))
}
