package handler

import (
    "errors"   // errors.Is comparisons against service sentinels
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/condo-booking/internal/repository"
    "github.com/iliyamo/condo-booking/internal/service"
)

// BookingHandler serves the public booking list and the gated booking
// creation endpoint.  Authorization has already been performed by
// middleware on the write route; the handler owns only binding and the
// mapping from service errors to HTTP statuses.
type BookingHandler struct {
    Svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.  The service must be
// non-nil.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{Svc: svc}
}

type createBookingReq struct {
    Name  string `json:"name"`
    Email string `json:"email"`
    Start string `json:"start"`
    End   string `json:"end"`
}

// List handles GET /api/bookings.  It returns all bookings ordered by id
// ascending; an empty store yields an empty array, never null.
func (h *BookingHandler) List(c echo.Context) error {
    bookings, err := h.Svc.ListBookings(c.Request().Context())
    if err != nil {
        c.Logger().Errorf("list bookings: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, bookings)
}

// Create handles POST /api/bookings.  It admits the candidate booking
// and responds 201 with the persisted record, 400 on missing or
// malformed fields, 409 when the range intersects an existing booking.
func (h *BookingHandler) Create(c echo.Context) error {
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    b, err := h.Svc.CreateBooking(c.Request().Context(), req.Name, req.Email, req.Start, req.End)
    if err != nil {
        if errors.Is(err, service.ErrInvalid) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
        }
        if errors.Is(err, repository.ErrConflict) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "That date range is already booked."})
        }
        c.Logger().Errorf("create booking: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
    }
    return c.JSON(http.StatusCreated, b)
}
