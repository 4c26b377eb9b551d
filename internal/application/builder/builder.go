package builder

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

const (
	AttrFabric = "Fabric"
	AttrGrade  = "Grade"
	AttrCorded = "Corded"

	DiscountTitle = "Grade pricing"
	// FallbackTitle names custom lines that arrive without a label.
	FallbackTitle = "Custom item"
)

// customKeys are the attribute keys, lowercased, that mark a line as
// priced by the client.
var customKeys = map[string]struct{}{
	"fabric":      {},
	"fabric name": {},
	"fabric_name": {},
	"custom name": {},
	"custom_name": {},
	"custom-name": {},
}

// LooksCustomPriced reports whether a line names its own fabric, either
// through a label or one of the recognised attribute keys.
func LooksCustomPriced(label string, attrs []domain.Attribute) bool {
	if strings.TrimSpace(label) != "" {
		return true
	}
	for _, a := range attrs {
		if _, ok := customKeys[strings.ToLower(strings.TrimSpace(a.Key))]; ok {
			return true
		}
	}
	return false
}

type Pricer interface {
	UnitPrice(base decimal.Decimal, grade domain.Grade, corded bool) decimal.Decimal
}

// Builder turns normalized lines into upstream line items.
type Builder struct {
	pricer Pricer
}

func New(pricer Pricer) *Builder {
	return &Builder{pricer: pricer}
}

// Build expects a base price for every line reference.
func (b *Builder) Build(lines []domain.Line, prices map[domain.ItemRef]decimal.Decimal) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		base, ok := prices[line.Ref]
		if !ok {
			return nil, &domain.MissingReferenceError{Ref: line.Ref}
		}
		items = append(items, b.BuildLine(line, base))
	}
	return items, nil
}

// BuildLine keeps the catalog reference whenever the final price is at or
// below the catalog price, expressing the gap as a per-unit discount.
// A higher price becomes a custom line.
func (b *Builder) BuildLine(line domain.Line, base decimal.Decimal) domain.LineItem {
	final := b.pricer.UnitPrice(base, line.Grade, line.Corded)
	if line.ClientUnitPrice != nil && line.ClientUnitPrice.IsPositive() &&
		LooksCustomPriced(line.Label, line.Attributes) {
		final = *line.ClientUnitPrice
	}

	item := domain.LineItem{
		Quantity:   line.Quantity,
		Attributes: attributes(line),
	}
	if final.GreaterThan(base) {
		item.Custom = true
		item.Title = line.Label
		if item.Title == "" {
			item.Title = FallbackTitle
		}
		item.OriginalUnitPrice = final
		return item
	}

	item.Ref = line.Ref
	item.OriginalUnitPrice = base
	if off := base.Sub(final); off.IsPositive() {
		item.Discount = &domain.Discount{Amount: off, Title: DiscountTitle}
	}
	return item
}

// attributes puts Fabric, Grade and Corded first. A client attribute with
// one of those keys never appears twice: a Fabric value fills in for a
// missing label, the rest are dropped.
func attributes(line domain.Line) []domain.Attribute {
	corded := "No"
	if line.Corded {
		corded = "Yes"
	}
	fabric := line.Label
	rest := make([]domain.Attribute, 0, len(line.Attributes))
	for _, a := range line.Attributes {
		switch {
		case strings.EqualFold(a.Key, AttrFabric):
			if fabric == "" {
				fabric = strings.TrimSpace(a.Value)
			}
		case strings.EqualFold(a.Key, AttrGrade), strings.EqualFold(a.Key, AttrCorded):
		default:
			rest = append(rest, a)
		}
	}

	attrs := make([]domain.Attribute, 0, 3+len(rest))
	if fabric != "" {
		attrs = append(attrs, domain.Attribute{Key: AttrFabric, Value: fabric})
	}
	attrs = append(attrs,
		domain.Attribute{Key: AttrGrade, Value: string(line.Grade)},
		domain.Attribute{Key: AttrCorded, Value: corded},
	)
	return append(attrs, rest...)
}
