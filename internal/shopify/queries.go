package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lawchemical/Draft-Order-App/internal/domain"
)

const (
	draftOrderCreate = `mutation DraftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder { id invoiceUrl }
    userErrors { field message }
  }
}`

	draftOrderUpdate = `mutation DraftOrderUpdate($id: ID!, $input: DraftOrderInput!) {
  draftOrderUpdate(id: $id, input: $input) {
    draftOrder { id invoiceUrl }
    userErrors { field message }
  }
}`

	discountFixedAmount = "FIXED_AMOUNT"
)

// pricesQuery selects variant i under alias v<i>, so one request covers
// every reference.
func pricesQuery(n int) string {
	var b strings.Builder
	b.WriteString("query VariantPrices(")
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$id%d: ID!", i)
	}
	b.WriteString(") {\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  v%d: productVariant(id: $id%d) { id price }\n", i, i)
	}
	b.WriteString("}")
	return b.String()
}

type variantPrice struct {
	ID    string          `json:"id"`
	Price decimal.Decimal `json:"price"`
}

// FetchPrices looks up catalog prices for refs in a single call. References
// the shop does not know are absent from the result.
func (c *Client) FetchPrices(ctx context.Context, refs []domain.ItemRef) (map[domain.ItemRef]decimal.Decimal, error) {
	out := make(map[domain.ItemRef]decimal.Decimal, len(refs))
	if len(refs) == 0 {
		return out, nil
	}

	vars := make(map[string]any, len(refs))
	for i, ref := range refs {
		vars["id"+strconv.Itoa(i)] = string(ref)
	}
	data, err := c.Call(ctx, pricesQuery(len(refs)), vars)
	if err != nil {
		return nil, err
	}

	var payload map[string]*variantPrice
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &domain.UpstreamError{Msg: "decode variant prices: " + err.Error(), Err: err}
	}
	for i, ref := range refs {
		if v := payload["v"+strconv.Itoa(i)]; v != nil {
			out[ref] = v.Price
		}
	}
	return out, nil
}

type attributeInput struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type appliedDiscountInput struct {
	Title     string  `json:"title,omitempty"`
	Value     float64 `json:"value"`
	ValueType string  `json:"valueType"`
}

type lineItemInput struct {
	VariantID         string                `json:"variantId,omitempty"`
	Title             string                `json:"title,omitempty"`
	Quantity          int                   `json:"quantity"`
	OriginalUnitPrice string                `json:"originalUnitPrice,omitempty"`
	AppliedDiscount   *appliedDiscountInput `json:"appliedDiscount,omitempty"`
	CustomAttributes  []attributeInput      `json:"customAttributes,omitempty"`
}

type draftOrderInput struct {
	LineItems []lineItemInput `json:"lineItems"`
	Note      string          `json:"note,omitempty"`
	Tags      []string        `json:"tags,omitempty"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type draftOrderPayload struct {
	DraftOrder *struct {
		ID         string `json:"id"`
		InvoiceURL string `json:"invoiceUrl"`
	} `json:"draftOrder"`
	UserErrors []userError `json:"userErrors"`
}

func toInput(order domain.DraftOrder) draftOrderInput {
	in := draftOrderInput{
		LineItems: make([]lineItemInput, 0, len(order.LineItems)),
		Note:      order.Note,
		Tags:      order.Tags,
	}
	for _, li := range order.LineItems {
		item := lineItemInput{Quantity: li.Quantity}
		if li.Custom {
			item.Title = li.Title
			item.OriginalUnitPrice = li.OriginalUnitPrice.StringFixed(2)
		} else {
			item.VariantID = string(li.Ref)
		}
		if li.Discount != nil {
			item.AppliedDiscount = &appliedDiscountInput{
				Title:     li.Discount.Title,
				Value:     li.Discount.Amount.InexactFloat64(),
				ValueType: discountFixedAmount,
			}
		}
		for _, a := range li.Attributes {
			item.CustomAttributes = append(item.CustomAttributes, attributeInput{Key: a.Key, Value: a.Value})
		}
		in.LineItems = append(in.LineItems, item)
	}
	return in
}

// UpsertDraftOrder creates a draft, or replaces every line of order.ID when
// it is set.
func (c *Client) UpsertDraftOrder(ctx context.Context, order domain.DraftOrder) (domain.DraftResult, error) {
	query, field := draftOrderCreate, "draftOrderCreate"
	vars := map[string]any{"input": toInput(order)}
	if order.ID != "" {
		query, field = draftOrderUpdate, "draftOrderUpdate"
		vars["id"] = order.ID
	}

	data, err := c.Call(ctx, query, vars)
	if err != nil {
		return domain.DraftResult{}, err
	}

	var payload map[string]draftOrderPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.DraftResult{}, &domain.UpstreamError{Msg: "decode " + field + ": " + err.Error(), Err: err}
	}
	p := payload[field]
	if len(p.UserErrors) > 0 {
		return domain.DraftResult{}, &domain.UpstreamError{Msg: p.UserErrors[0].Message}
	}
	if p.DraftOrder == nil || p.DraftOrder.ID == "" {
		return domain.DraftResult{}, &domain.UpstreamError{Msg: field + " returned no draft order"}
	}
	if p.DraftOrder.InvoiceURL == "" {
		return domain.DraftResult{}, fmt.Errorf("draft %s: %w", p.DraftOrder.ID, domain.ErrIncompleteResult)
	}
	return domain.DraftResult{DraftID: p.DraftOrder.ID, InvoiceURL: p.DraftOrder.InvoiceURL}, nil
}
