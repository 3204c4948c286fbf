package playlist

import (
	"context"
	"fmt"

	"github.com/appsqueeze/wpslider/internal/database"
)

// DatabaseSource reads active rows of the wallpapers table in display order.
type DatabaseSource struct {
	db database.DBTX
}

func NewDatabaseSource(db database.DBTX) *DatabaseSource {
	return &DatabaseSource{db: db}
}

func (s *DatabaseSource) Fetch(ctx context.Context) ([]RawEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, media_url
		 FROM wallpapers
		 WHERE active = true
		 ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query wallpapers: %v", ErrUpstream, err)
	}
	defer rows.Close()

	entries := make([]RawEntry, 0)
	for rows.Next() {
		var name *string
		var mediaURL string
		if err := rows.Scan(&name, &mediaURL); err != nil {
			return nil, fmt.Errorf("%w: scan wallpaper: %v", ErrUpstream, err)
		}
		entry := RawEntry{Path: mediaURL}
		if name != nil {
			entry.Wallpaper = *name
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate wallpapers: %v", ErrUpstream, err)
	}
	return entries, nil
}
