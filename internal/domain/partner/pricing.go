package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "JPY"

// Pricing is a unit price agreed with a partner for an item over a period.
type Pricing struct {
	shared.TenantAggregateRoot
	PartnerID uuid.UUID
	ItemCode  string
	ItemName  string
	UnitPrice decimal.Decimal
	Currency  string
	ValidFrom time.Time
	ValidTo   *time.Time
	Notes     string
}

// NewPricing creates a pricing row. validTo may be nil for open-ended prices.
func NewPricing(tenantID, partnerID uuid.UUID, itemCode, itemName string, unitPrice decimal.Decimal, validFrom time.Time, validTo *time.Time) (*Pricing, error) {
	p := &Pricing{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Currency:            DefaultCurrency,
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Pricing must reference a partner")
	}
	p.PartnerID = partnerID
	if err := p.set(itemCode, itemName, unitPrice, validFrom, validTo); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the item, price and validity period.
func (p *Pricing) Update(itemCode, itemName string, unitPrice decimal.Decimal, validFrom time.Time, validTo *time.Time) error {
	if err := p.set(itemCode, itemName, unitPrice, validFrom, validTo); err != nil {
		return err
	}
	p.MarkModified()
	return nil
}

// SetCurrency overrides the ISO 4217 currency code.
func (p *Pricing) SetCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	p.Currency = currency
	p.MarkModified()
	return nil
}

// EffectiveOn reports whether the price applies on the calendar day of day.
// Both ends of the validity period are inclusive.
func (p *Pricing) EffectiveOn(day time.Time) bool {
	day = shared.CalendarDate(day)
	if day.Before(shared.CalendarDate(p.ValidFrom)) {
		return false
	}
	return p.ValidTo == nil || !day.After(shared.CalendarDate(*p.ValidTo))
}

func (p *Pricing) set(itemCode, itemName string, unitPrice decimal.Decimal, validFrom time.Time, validTo *time.Time) error {
	itemCode = strings.TrimSpace(itemCode)
	if itemCode == "" || len(itemCode) > 50 {
		return shared.NewDomainError("INVALID_ITEM_CODE", "Item code must be 1-50 characters")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	validFrom, validTo = shared.CalendarDate(validFrom), shared.CalendarDatePtr(validTo)
	if validFrom.IsZero() {
		return shared.NewDomainError("INVALID_PERIOD", "Valid-from date is required")
	}
	if validTo != nil && validTo.Before(validFrom) {
		return shared.NewDomainError("INVALID_PERIOD", "Valid-to date must not precede valid-from date")
	}
	p.ItemCode = itemCode
	p.ItemName = strings.TrimSpace(itemName)
	p.UnitPrice = unitPrice
	p.ValidFrom = validFrom
	p.ValidTo = validTo
	return nil
}

// SelectEffective returns the pricing effective on day with the latest
// ValidFrom, or nil.
func SelectEffective(pricings []Pricing, day time.Time) *Pricing {
	var best *Pricing
	for i := range pricings {
		p := &pricings[i]
		if !p.EffectiveOn(day) {
			continue
		}
		if best == nil || p.ValidFrom.After(best.ValidFrom) {
			best = p
		}
	}
	return best
}
