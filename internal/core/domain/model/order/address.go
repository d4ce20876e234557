package order

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when using an improperly
// initialized Address.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is an immutable value object holding the minimum shipping/billing
// fields the fulfillment core needs. Address verification and richer postal
// modeling belong to the surrounding application.
type Address struct {
	fullName    string
	line1       string
	city        string
	zip         string
	countryCode string
	guard       guard.ConstructorGuard
}

// NewAddress creates an address with validation.
// Line1, city and country code are required.
func NewAddress(fullName, line1, city, zip, countryCode string) (Address, error) {
	if line1 == "" {
		return Address{}, errs.NewValueIsRequiredError("line1")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("city")
	}
	if countryCode == "" {
		return Address{}, errs.NewValueIsRequiredError("countryCode")
	}

	return Address{
		fullName:    fullName,
		line1:       line1,
		city:        city,
		zip:         zip,
		countryCode: countryCode,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Address was properly constructed.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns the addressee's name.
func (a Address) FullName() string {
	return a.fullName
}

// Line1 returns the street line.
func (a Address) Line1() string {
	return a.line1
}

// City returns the city.
func (a Address) City() string {
	return a.city
}

// Zip returns the postal code.
func (a Address) Zip() string {
	return a.zip
}

// CountryCode returns the ISO country code.
func (a Address) CountryCode() string {
	return a.countryCode
}
