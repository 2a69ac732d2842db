package repository

import (
	"context"
	"database/sql"
)

// UnlockRepo records which buyers paid the contact-reveal fee for which
// listings.  The (user_id, listing_id) pair is unique, so unlocking is
// idempotent: a second unlock of the same listing charges nothing and
// simply reveals the contact again.
type UnlockRepo struct{ DB *sql.DB }

func NewUnlockRepo(db *sql.DB) *UnlockRepo { return &UnlockRepo{DB: db} }

// Record stores an unlock.  Returns true when a new row was inserted,
// false when the user had already unlocked this listing.
func (r *UnlockRepo) Record(ctx context.Context, userID, listingID uint64, feeCents int) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO listing_unlocks (user_id, listing_id, fee_cents) VALUES (?,?,?)",
		userID, listingID, feeCents)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists reports whether the user has already unlocked the listing.
func (r *UnlockRepo) Exists(ctx context.Context, userID, listingID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM listing_unlocks WHERE user_id=? AND listing_id=? LIMIT 1",
		userID, listingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
