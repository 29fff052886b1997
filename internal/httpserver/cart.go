package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	cartstore "printcart/internal/cart"
	"printcart/internal/domain"
	cartsvc "printcart/internal/service/cart"
)

// addLineItemRequest is the already-priced payload the catalog collaborator
// builds from product and option data. The core trusts its pricing and does
// not re-derive it from the product id.
type addLineItemRequest struct {
	ProductID       string            `json:"productId" validate:"required"`
	Name            string            `json:"name" validate:"required"`
	ImageURL        string            `json:"imageUrl"`
	Quantity        int               `json:"quantity" validate:"required,gte=1"`
	UnitPriceCents  int64             `json:"unitPriceCents" validate:"gte=0"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	Options         map[string]string `json:"options"`
	Desi            *float64          `json:"desi" validate:"omitempty,gte=0"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	SessionID string                `json:"sessionId"`
	LineItems []domain.CartLineItem `json:"lineItems"`
	Summary   domain.CartSummary    `json:"summary"`
}

type cartHandlers struct {
	svc      *cartsvc.Service
	validate *validatorv10.Validate
}

func newCartHandlers(svc *cartsvc.Service) *cartHandlers {
	v := validatorv10.New()
	// a posted totalPriceCents must match unitPriceCents * quantity
	v.RegisterStructValidation(addLineItemStructValidation, addLineItemRequest{})
	return &cartHandlers{svc: svc, validate: v}
}

func addLineItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(addLineItemRequest)
	if req.TotalPriceCents != 0 && req.TotalPriceCents != req.UnitPriceCents*int64(req.Quantity) {
		sl.ReportError(req.TotalPriceCents, "totalPriceCents", "TotalPriceCents", "total_match_unit_price", "")
	}
}

func (h *cartHandlers) getCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	items, summary := h.svc.Snapshot(sessionID)
	c.JSON(http.StatusOK, toCartResponse(sessionID, items, summary))
}

func (h *cartHandlers) addLineItem(c *gin.Context) {
	sessionID := c.Param("sessionId")

	var req addLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.svc.AddItem(sessionID, cartstore.AddItemInput{
		ProductID:      req.ProductID,
		Name:           req.Name,
		ImageURL:       req.ImageURL,
		Quantity:       req.Quantity,
		UnitPriceCents: req.UnitPriceCents,
		Options:        req.Options,
		Desi:           req.Desi,
	})

	items, summary := h.svc.Snapshot(sessionID)
	c.JSON(http.StatusCreated, toCartResponse(sessionID, items, summary))
}

func (h *cartHandlers) updateLineItemQuantity(c *gin.Context) {
	sessionID := c.Param("sessionId")
	lineID := c.Param("lineId")

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// quantities below 1 and unknown line ids are silent no-ops
	h.svc.UpdateQuantity(sessionID, lineID, *req.Quantity)

	items, summary := h.svc.Snapshot(sessionID)
	c.JSON(http.StatusOK, toCartResponse(sessionID, items, summary))
}

func (h *cartHandlers) removeLineItem(c *gin.Context) {
	sessionID := c.Param("sessionId")
	h.svc.RemoveItem(sessionID, c.Param("lineId"))

	items, summary := h.svc.Snapshot(sessionID)
	c.JSON(http.StatusOK, toCartResponse(sessionID, items, summary))
}

func (h *cartHandlers) clearCart(c *gin.Context) {
	sessionID := c.Param("sessionId")
	h.svc.Clear(sessionID)

	items, summary := h.svc.Snapshot(sessionID)
	c.JSON(http.StatusOK, toCartResponse(sessionID, items, summary))
}

func toCartResponse(sessionID string, items []domain.CartLineItem, summary domain.CartSummary) cartResponse {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	return cartResponse{
		SessionID: sessionID,
		LineItems: items,
		Summary:   summary,
	}
}
