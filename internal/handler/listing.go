package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-pass-market/internal/config"
	"github.com/iliyamo/event-pass-market/internal/model"
	"github.com/iliyamo/event-pass-market/internal/queue"
	"github.com/iliyamo/event-pass-market/internal/repository"
	"github.com/iliyamo/event-pass-market/internal/search"
	queue_publisher "github.com/iliyamo/event-pass-market/internal/service"
)

// ListingHandler bundles everything the listing endpoints need: the
// repositories, the process-wide prefix index holder and config for
// the unlock fee.
type ListingHandler struct {
	Cfg      config.Config
	Listings *repository.ListingRepo
	Unlocks  *repository.UnlockRepo
	Users    *repository.UserRepo
	Index    *search.Holder
}

func NewListingHandler(cfg config.Config, l *repository.ListingRepo, un *repository.UnlockRepo, u *repository.UserRepo, idx *search.Holder) *ListingHandler {
	if l == nil || un == nil || u == nil || idx == nil {
		panic("nil dependency passed to NewListingHandler")
	}
	return &ListingHandler{Cfg: cfg, Listings: l, Unlocks: un, Users: u, Index: idx}
}

// ----- DTOs -----

type createListingReq struct {
	EventName      string   `json:"eventName"`
	City           string   `json:"city"`
	PassType       string   `json:"passType"`
	Price          uint64   `json:"price"`
	AvailableDates []string `json:"availableDates"`
	Tags           []string `json:"tags"`
	Description    string   `json:"description"`
}

type contactResp struct {
	ListingID uint64 `json:"listingId"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	FeeCents  int    `json:"feeCents"` // 0 when the unlock was already paid
}

// CreateListing creates a listing owned by the authenticated user.
func (h *ListingHandler) CreateListing(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	req.City = strings.TrimSpace(req.City)
	req.PassType = strings.ToUpper(strings.TrimSpace(req.PassType))
	if req.EventName == "" || req.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "eventName/city required"})
	}
	if !validPassTypes[req.PassType] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passType"})
	}

	l := model.Listing{
		SellerID:       uid,
		EventName:      req.EventName,
		City:           req.City,
		PassType:       req.PassType,
		Price:          req.Price,
		AvailableDates: req.AvailableDates,
		Tags:           req.Tags,
		Description:    req.Description,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Listings.Create(ctx, &l); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// GetListings returns every available listing, ranked: boosted first,
// ties broken by newest.  Each full fetch also rebuilds the prefix
// index snapshot from the batch, so autocomplete reflects the listings
// the caller just saw.
func (h *ListingHandler) GetListings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Listings.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}

	h.Index.RebuildFromListings(items)

	ranked := search.Rank(items)
	return c.JSON(http.StatusOK, echo.Map{
		"data":  ranked,
		"total": len(ranked),
	})
}

// SearchListings returns available listings matching the query
// parameters, ranked like GetListings.  Filtered reads do not touch
// the prefix index.
func (h *ListingHandler) SearchListings(c echo.Context) error {
	f := repository.ListingFilter{
		City:      strings.TrimSpace(c.QueryParam("city")),
		PassType:  strings.TrimSpace(c.QueryParam("pass_type")),
		Date:      strings.TrimSpace(c.QueryParam("date")),
		TextQuery: strings.TrimSpace(c.QueryParam("q")),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Listings.Search(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
	}

	ranked := search.Rank(items)
	return c.JSON(http.StatusOK, echo.Map{
		"data":  ranked,
		"total": len(ranked),
	})
}

// GetListing returns a single listing by id.  Seller contact is never
// part of the listing payload; it is only revealed through Unlock.
func (h *ListingHandler) GetListing(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Boost raises the caller's listing to the boosted priority so it sorts
// ahead of unboosted results.
func (h *ListingHandler) Boost(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.Boost(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "boost failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// MarkSold flips the caller's listing AVAILABLE -> SOLD and publishes a
// listing.sold event.  The publish is best effort; the sale stands even
// if the broker is down.
func (h *ListingHandler) MarkSold(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.MarkSold(ctx, id, uid)
	if err != nil {
		switch err {
		case repository.ErrListingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing already sold"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	ev := queue.ListingSoldEvent{
		ListingID: l.ID,
		SellerID:  l.SellerID,
		EventName: l.EventName,
		City:      l.City,
		PassType:  l.PassType,
		Price:     l.Price,
		SoldAt:    time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	go func() { _ = queue_publisher.PublishListingSold(context.Background(), ev) }()

	return c.JSON(http.StatusOK, l)
}

// Unlock charges the flat contact-reveal fee and returns the seller's
// contact info.  Repeat unlocks by the same user are free.
func (h *ListingHandler) Unlock(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Listings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrListingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if l.SellerID == uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot unlock your own listing"})
	}

	// A repeat unlock skips the INSERT round trip and charges nothing.
	already, err := h.Unlocks.Exists(ctx, uid, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unlock failed"})
	}
	fee := 0
	if !already {
		inserted, err := h.Unlocks.Record(ctx, uid, id, h.Cfg.UnlockFeeCents)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unlock failed"})
		}
		if inserted {
			fee = h.Cfg.UnlockFeeCents
		}
	}

	seller, err := h.Users.GetByID(ctx, l.SellerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seller failed"})
	}
	return c.JSON(http.StatusOK, contactResp{
		ListingID: l.ID,
		Email:     seller.Email,
		Phone:     seller.Phone,
		FeeCents:  fee,
	})
}
