package usecase

import (
	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
)

type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{
		locationRepo: locationRepo,
	}
}

func (uc *LocationUseCase) Towns() []entity.Town {
	return uc.locationRepo.Towns()
}

func (uc *LocationUseCase) Estates(townID int) []entity.Estate {
	return uc.locationRepo.EstatesByTown(townID)
}

func (uc *LocationUseCase) SubEstates(estateID int) []entity.SubEstate {
	return uc.locationRepo.SubEstatesByEstate(estateID)
}
