package domain

// CartLineItem is one row of a cart. The same product may appear in several
// rows when option selections differ; rows are never merged on add.
type CartLineItem struct {
	LineID          string            `json:"lineId"`
	ProductID       string            `json:"productId"`
	Name            string            `json:"name"`
	ImageURL        string            `json:"imageUrl,omitempty"`
	Quantity        int               `json:"quantity"`
	UnitPriceCents  int64             `json:"unitPriceCents"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	Options         map[string]string `json:"options,omitempty"`
	Desi            *float64          `json:"desi,omitempty"`
}

// Clone returns a copy sharing no mutable state with the receiver.
func (l CartLineItem) Clone() CartLineItem {
	out := l
	if l.Options != nil {
		out.Options = make(map[string]string, len(l.Options))
		for k, v := range l.Options {
			out.Options[k] = v
		}
	}
	if l.Desi != nil {
		desi := *l.Desi
		out.Desi = &desi
	}
	return out
}

// DesiValue returns the per-unit shipping weight, zero when absent.
func (l CartLineItem) DesiValue() float64 {
	if l.Desi == nil {
		return 0
	}
	return *l.Desi
}

// CartSummary is the derived view of a cart. All fields are recomputed
// together from the line-item list; it is never stored.
type CartSummary struct {
	TotalCount                    int     `json:"totalCount"`
	TotalAmountCents              int64   `json:"totalAmountCents"`
	TotalDesi                     float64 `json:"totalDesi"`
	HasFreeShipping               bool    `json:"hasFreeShipping"`
	ShippingCostCents             int64   `json:"shippingCostCents"`
	GrandTotalCents               int64   `json:"grandTotalCents"`
	RemainingForFreeShippingCents int64   `json:"remainingForFreeShippingCents"`
}
