package jobs

import (
	"context"
	"log"
	"time"

	"mapdex/internal/db"
	"mapdex/internal/geocode"
	"mapdex/internal/models"
)

// GeocodeBackfiller fills in missing address fields of entries that were
// created from a dropped pin while the reverse-geocode call was still in
// flight (or failed). Submission never waits for geocoding; this job closes
// the gap afterwards.
type GeocodeBackfiller struct {
	db       *db.DB
	geo      *geocode.Client
	interval time.Duration
}

// NewGeocodeBackfiller creates a new backfiller.
func NewGeocodeBackfiller(database *db.DB, geo *geocode.Client, interval time.Duration) *GeocodeBackfiller {
	return &GeocodeBackfiller{db: database, geo: geo, interval: interval}
}

// Start begins the background backfill loop.
func (g *GeocodeBackfiller) Start(ctx context.Context) {
	log.Printf("Geocode backfiller started (interval: %v)", g.interval)

	// Run immediately on start
	g.backfillAll(ctx)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Geocode backfiller stopped")
			return
		case <-ticker.C:
			g.backfillAll(ctx)
		}
	}
}

// backfillAll resolves addresses for a batch of entries missing one.
func (g *GeocodeBackfiller) backfillAll(ctx context.Context) {
	entries, err := g.db.GetEntriesNeedingGeocode(ctx, 10*time.Minute, 25)
	if err != nil {
		log.Printf("Geocode backfiller: failed to get entries: %v", err)
		return
	}

	if len(entries) == 0 {
		return
	}

	log.Printf("Geocode backfiller: resolving %d entries", len(entries))

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		addr, err := g.geo.Reverse(ctx, models.NewPoint(entry.Lat, entry.Lng))
		if err != nil {
			log.Printf("Geocode backfiller: failed to resolve %s: %v", entry.ID, err)
			continue
		}

		if err := g.db.UpdateEntryAddress(ctx, entry.ID, addr.Street, addr.Zip, addr.City, addr.Country, addr.State); err != nil {
			log.Printf("Geocode backfiller: failed to update %s: %v", entry.ID, err)
			continue
		}

		// Be polite to the upstream geocoder
		time.Sleep(1 * time.Second)
	}
}
