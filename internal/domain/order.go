package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	variantGIDPrefix    = "gid://shopify/ProductVariant/"
	draftOrderGIDPrefix = "gid://shopify/DraftOrder/"
)

// ItemRef is a catalog item identifier in canonical global-id form.
type ItemRef string

// NormalizeItemRef turns a bare numeric variant id into its global id.
// Other non-empty references are opaque and kept as is.
func NormalizeItemRef(raw string) (ItemRef, error) {
	return normalizeGID(raw, variantGIDPrefix, "itemRef")
}

// NormalizeDraftID does the same for draft order ids.
func NormalizeDraftID(raw string) (string, error) {
	id, err := normalizeGID(raw, draftOrderGIDPrefix, "prevDraftId")
	return string(id), err
}

func normalizeGID(raw, prefix, field string) (ItemRef, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", NewValidationError(field + " is required")
	}
	if _, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ItemRef(prefix + s), nil
	}
	if strings.ContainsAny(s, " \t\n") {
		return "", NewValidationError(field + " " + strconv.Quote(s) + " is not a valid id")
	}
	return ItemRef(s), nil
}

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

// Grades lists the known grades in upcharge order.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeF}

// NormalizeGrade uppercases the grade; an empty grade means A.
// Unknown grades are kept and priced without upcharge.
func NormalizeGrade(raw string) Grade {
	g := strings.ToUpper(strings.TrimSpace(raw))
	if g == "" {
		return GradeA
	}
	return Grade(g)
}

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Quantity accepts numbers and numeric strings. Anything else decodes to 0
// and is floored to 1 during normalization.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	*q = 0
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		if !math.IsNaN(n) && !math.IsInf(n, 0) && n < math.MaxInt32 && n > math.MinInt32 {
			*q = Quantity(math.Floor(n))
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			*q = Quantity(v)
		}
	}
	return nil
}

// OrderLineRequest is one line as sent by the client.
type OrderLineRequest struct {
	ItemRef    string      `json:"itemRef"`
	Quantity   Quantity    `json:"quantity"`
	Grade      string      `json:"grade"`
	Corded     bool        `json:"corded"`
	Label      string      `json:"label"`
	Attributes []Attribute `json:"attributes"`
	// UnitPriceCents is the client-asserted unit price in minor units.
	UnitPriceCents *int64 `json:"unitPriceCents,omitempty"`
}

// Line is a normalized order line.
type Line struct {
	Ref             ItemRef
	Quantity        int
	Grade           Grade
	Corded          bool
	Label           string
	Attributes      []Attribute
	ClientUnitPrice *decimal.Decimal
}

// Normalize applies reference, quantity and grade defaults.
func (r OrderLineRequest) Normalize() (Line, error) {
	ref, err := NormalizeItemRef(r.ItemRef)
	if err != nil {
		return Line{}, err
	}
	qty := int(r.Quantity)
	if qty < 1 {
		qty = 1
	}
	line := Line{
		Ref:        ref,
		Quantity:   qty,
		Grade:      NormalizeGrade(r.Grade),
		Corded:     r.Corded,
		Label:      strings.TrimSpace(r.Label),
		Attributes: make([]Attribute, 0, len(r.Attributes)),
	}
	for _, a := range r.Attributes {
		k := strings.TrimSpace(a.Key)
		if k == "" {
			continue
		}
		line.Attributes = append(line.Attributes, Attribute{Key: k, Value: a.Value})
	}
	if r.UnitPriceCents != nil {
		p := decimal.New(*r.UnitPriceCents, -2)
		line.ClientUnitPrice = &p
	}
	return line, nil
}

// Discount is a per-unit fixed amount taken off the catalog price.
type Discount struct {
	Amount decimal.Decimal
	Title  string
}

// LineItem is a draft order line ready for the upstream.
// Catalog lines carry Ref; custom lines carry Title and OriginalUnitPrice.
type LineItem struct {
	Ref               ItemRef
	Custom            bool
	Title             string
	Quantity          int
	OriginalUnitPrice decimal.Decimal
	Discount          *Discount
	Attributes        []Attribute
}

// DraftRequest is the inbound createOrUpdateDraftOrder payload.
type DraftRequest struct {
	Items          []OrderLineRequest `json:"items"`
	Note           string             `json:"note,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	IdempotencyKey string             `json:"idempotencyKey,omitempty"`
	PrevDraftID    string             `json:"prevDraftId,omitempty"`
}

// DraftOrder is what gets sent to the upstream create/update call.
type DraftOrder struct {
	ID        string
	LineItems []LineItem
	Note      string
	Tags      []string
}

type DraftResult struct {
	DraftID    string `json:"draftId"`
	InvoiceURL string `json:"invoiceUrl"`
}
