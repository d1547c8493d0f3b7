package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/model"
)

// PriceStore is the keyed collection of nightly prices.  Upsert replaces
// any existing entry for the date (last write wins).
type PriceStore interface {
    Upsert(ctx context.Context, date string, price int64) error
    All(ctx context.Context) (map[string]int64, error)
}

// PriceHandler serves the public price snapshot and the gated price
// upsert endpoint.
type PriceHandler struct {
    Prices PriceStore
}

// NewPriceHandler constructs a PriceHandler.  The store must be non-nil.
func NewPriceHandler(prices PriceStore) *PriceHandler {
    if prices == nil {
        panic("nil store passed to NewPriceHandler")
    }
    return &PriceHandler{Prices: prices}
}

type setPriceReq struct {
    Date  string `json:"date"`
    Price *int64 `json:"price"` // pointer so an explicit 0 is distinguishable from a missing field
}

// List handles GET /api/prices.  It returns the full date -> price
// mapping; no pagination, latest committed writes visible.
func (h *PriceHandler) List(c echo.Context) error {
    prices, err := h.Prices.All(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list prices: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load prices"})
    }
    return c.JSON(http.StatusOK, prices)
}

// Set handles POST /api/prices.  It upserts the price for one date and
// responds 204 on success, 400 on a missing or malformed field.
func (h *PriceHandler) Set(c echo.Context) error {
    var req setPriceReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.Date == "" || req.Price == nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date & price are required"})
    }
    if !model.ValidDate(req.Date) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be a YYYY-MM-DD date"})
    }
    if err := h.Prices.Upsert(c.Request().Context(), req.Date, *req.Price); err != nil {
        c.Logger().Errorf("set price for %s: %v", req.Date, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to set price"})
    }
    return c.NoContent(http.StatusNoContent)
}
