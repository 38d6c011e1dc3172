package db

import (
	"context"
	"fmt"

	"github.com/jonathan/jobmatch/internal/types"
)

// ListActiveListings retrieves up to limit active job listings, most recently
// posted first.
func (db *DB) ListActiveListings(ctx context.Context, limit int) ([]types.JobListing, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, company, COALESCE(location, ''), remote,
		        required_skills, preferred_skills, keywords,
		        min_years, max_years, active, posted_at
		 FROM job_listings
		 WHERE active = true
		 ORDER BY posted_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active listings: %w", err)
	}
	defer rows.Close()

	var listings []types.JobListing
	for rows.Next() {
		var l types.JobListing
		if err := rows.Scan(&l.ID, &l.Title, &l.Company, &l.Location, &l.Remote,
			&l.RequiredSkills, &l.PreferredSkills, &l.Keywords,
			&l.MinYears, &l.MaxYears, &l.Active, &l.PostedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
