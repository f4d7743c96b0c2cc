package usecase

import (
	"context"
	"net/http"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

type ListingUseCase struct {
	hairdresserRepo repository.HairdresserRepository
	locations       repository.LocationResolver
	rules           []OverrideRule
}

func NewListingUseCase(
	hairdresserRepo repository.HairdresserRepository,
	locations repository.LocationResolver,
	rules []OverrideRule,
) *ListingUseCase {
	return &ListingUseCase{
		hairdresserRepo: hairdresserRepo,
		locations:       locations,
		rules:           rules,
	}
}

func (uc *ListingUseCase) List(ctx context.Context, filter ListingFilter) ([]*entity.HairdresserWithLocation, error) {
	profiles, err := uc.hairdresserRepo.ListPaid(ctx)
	if err != nil {
		logger.Error("Failed to fetch listings: %v", err)
		return nil, errors.New("LISTINGS_FETCH_FAILED", "failed to fetch listings", http.StatusInternalServerError, err)
	}

	ranked := Rank(profiles, filter, uc.rules)

	out := make([]*entity.HairdresserWithLocation, 0, len(ranked))
	for _, h := range ranked {
		out = append(out, withLocation(uc.locations, h))
	}
	return out, nil
}

func withLocation(locations repository.LocationResolver, h *entity.Hairdresser) *entity.HairdresserWithLocation {
	town, estate, subEstate := locations.Resolve(h.TownID, h.EstateID, h.SubEstateID)
	return &entity.HairdresserWithLocation{
		Hairdresser: h,
		Town:        town,
		Estate:      estate,
		SubEstate:   subEstate,
	}
}
