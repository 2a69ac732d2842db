// Package repository contains data access logic for the marketplace.
// This file holds listing persistence: CRUD, the filtered search the
// gateway runs, and the event-name index feed consumed by the prefix
// index rebuild.  Results returned here are in store-native order;
// ranking is applied by callers via the search package.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/iliyamo/event-pass-market/internal/model"
	"github.com/iliyamo/event-pass-market/internal/search"
)

// ErrListingNotFound indicates that a listing was not located in the DB.
var ErrListingNotFound = errors.New("listing not found")

// ListingRepo manages persistence for listings.
type ListingRepo struct {
	db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the given DB handle.
func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

// ListingFilter defines the optional field-level criteria for a search.
// Zero values mean "not filtered".  Status is always restricted to
// AVAILABLE regardless of the filter.
type ListingFilter struct {
	City      string // exact match, case-insensitive
	PassType  string // exact match
	Date      string // must be a member of available_dates
	TextQuery string // case-insensitive substring over event_name
}

const listingColumns = `id, seller_id, event_name, city, pass_type, status, price_cents,
	available_dates, tags, description, priority, created_at, updated_at`

// Create inserts a new listing and populates the generated ID and
// DB-default fields (status, priority, timestamps) back onto l.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
	dates, err := json.Marshal(l.AvailableDates)
	if err != nil {
		return err
	}
	tags, err := json.Marshal(l.Tags)
	if err != nil {
		return err
	}
	const q = `INSERT INTO listings
		(seller_id, event_name, city, pass_type, price_cents, available_dates, tags, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		l.SellerID, l.EventName, l.City, l.PassType, l.Price, dates, tags, l.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	const sel = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	return scanListing(r.db.QueryRowContext(ctx, sel, l.ID), l)
}

// GetByID retrieves a listing by its ID.  It returns ErrListingNotFound
// if there is no matching row.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (*model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
	var l model.Listing
	if err := scanListing(r.db.QueryRowContext(ctx, q, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListAvailable returns every AVAILABLE listing in store-native order.
// Callers rank the batch before returning it to API consumers.
func (r *ListingRepo) ListAvailable(ctx context.Context) ([]model.Listing, error) {
	const q = `SELECT ` + listingColumns + ` FROM listings WHERE status = 'AVAILABLE'`
	return r.queryListings(ctx, q)
}

// Search returns AVAILABLE listings matching the filter.  City and pass
// type match by equality, the date must appear in available_dates, and
// the text query matches event_name as a case-insensitive substring.
func (r *ListingRepo) Search(ctx context.Context, f ListingFilter) ([]model.Listing, error) {
	where := []string{"status = 'AVAILABLE'"}
	args := []any{}

	if f.City != "" {
		where = append(where, "LOWER(city) = ?")
		args = append(args, strings.ToLower(f.City))
	}
	if f.PassType != "" {
		where = append(where, "pass_type = ?")
		args = append(args, strings.ToUpper(f.PassType))
	}
	if f.Date != "" {
		where = append(where, "JSON_CONTAINS(available_dates, JSON_QUOTE(?))")
		args = append(args, f.Date)
	}
	if f.TextQuery != "" {
		where = append(where, "LOWER(event_name) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.TextQuery)+"%")
	}

	q := `SELECT ` + listingColumns + ` FROM listings WHERE ` + strings.Join(where, " AND ")
	return r.queryListings(ctx, q, args...)
}

// NameIndex returns (event name -> listing ids) for available listings
// only.  It feeds the prefix index rebuild, e.g. the warm build at
// startup before the first read-all request has run.
func (r *ListingRepo) NameIndex(ctx context.Context) ([]search.NameEntry, error) {
	const q = `SELECT event_name, id FROM listings WHERE status = 'AVAILABLE' ORDER BY event_name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out     []search.NameEntry
		current *search.NameEntry
	)
	for rows.Next() {
		var (
			name string
			id   uint64
		)
		if err := rows.Scan(&name, &id); err != nil {
			return nil, err
		}
		if current == nil || current.Name != name {
			out = append(out, search.NameEntry{Name: name})
			current = &out[len(out)-1]
		}
		current.IDs = append(current.IDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkSold flips a listing from AVAILABLE to SOLD.  Only the owning
// seller may do this; the transition is never reversed.  Returns
// ErrListingNotFound, ErrForbidden (wrong seller) or ErrConflict
// (already sold) as appropriate.
func (r *ListingRepo) MarkSold(ctx context.Context, id, sellerID uint64) (*model.Listing, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, ErrForbidden
	}
	if l.Status != model.ListingAvailable {
		return nil, ErrConflict
	}
	const q = `UPDATE listings SET status = 'SOLD', updated_at = NOW()
		WHERE id = ? AND seller_id = ? AND status = 'AVAILABLE'`
	res, err := r.db.ExecContext(ctx, q, id, sellerID)
	if err != nil {
		return nil, err
	}
	// A lost race with another flip of the same listing surfaces here.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrConflict
	}
	l.Status = model.ListingSold
	return l, nil
}

// Boost raises a listing's priority to the boosted weight.  Owner only.
// Boosting an already boosted listing is a no-op.
func (r *ListingRepo) Boost(ctx context.Context, id, sellerID uint64) (*model.Listing, error) {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, ErrForbidden
	}
	const q = `UPDATE listings SET priority = ?, updated_at = NOW() WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, model.PriorityBoosted, id); err != nil {
		return nil, err
	}
	l.Priority = model.PriorityBoosted
	return l, nil
}

// queryListings runs a listing SELECT and scans all rows.
func (r *ListingRepo) queryListings(ctx context.Context, q string, args ...any) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Listing{}
	for rows.Next() {
		var l model.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanListing decodes one listing row, unmarshalling the JSON columns.
func scanListing(row rowScanner, l *model.Listing) error {
	var dates, tags []byte
	if err := row.Scan(
		&l.ID, &l.SellerID, &l.EventName, &l.City, &l.PassType, &l.Status, &l.Price,
		&dates, &tags, &l.Description, &l.Priority, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return err
	}
	if len(dates) > 0 {
		if err := json.Unmarshal(dates, &l.AvailableDates); err != nil {
			return err
		}
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &l.Tags); err != nil {
			return err
		}
	}
	return nil
}
