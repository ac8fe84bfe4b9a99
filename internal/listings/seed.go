package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	"github.com/goliatone/go-slug"
)

type fixtureFile struct {
	Listings []*Listing `json:"listings"`
}

// DecodeFixtures parses a {"listings": [...]} document.
func DecodeFixtures(data []byte) ([]*Listing, error) {
	var file fixtureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("listings: decode fixtures: %w", err)
	}
	return file.Listings, nil
}

// Normalize validates a listing and normalises its slugs in place.
func Normalize(listing *Listing) error {
	if _, err := entity.ParseType(string(listing.EntityType)); err != nil {
		return err
	}
	listing.Name = strings.TrimSpace(listing.Name)
	if listing.Name == "" {
		return ErrNameRequired
	}
	var err error
	if listing.Slug, err = normalizeSlug(listing.Slug); err != nil {
		return err
	}
	if listing.TownSlug, err = normalizeSlug(listing.TownSlug); err != nil {
		return err
	}
	return nil
}

// Seed upserts listings by id.
func Seed(ctx context.Context, repo ListingRepository, list []*Listing) error {
	for _, listing := range list {
		if err := Normalize(listing); err != nil {
			return fmt.Errorf("listings: seed %q: %w", listing.Name, err)
		}
		if _, err := repo.GetByID(ctx, listing.ID); err == nil {
			if _, err := repo.Update(ctx, listing); err != nil {
				return err
			}
			continue
		} else if !errors.Is(err, ErrListingNotFound) {
			return err
		}
		if _, err := repo.Create(ctx, listing); err != nil {
			return err
		}
	}
	return nil
}

func normalizeSlug(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", ErrSlugRequired
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil || normalized == "" {
		return "", fmt.Errorf("%w: %q", ErrSlugRequired, raw)
	}
	return normalized, nil
}
