package repository

import "hairconnect/internal/domain/entity"

type LocationRepository interface {
	Towns() []entity.Town
	EstatesByTown(townID int) []entity.Estate
	SubEstatesByEstate(estateID int) []entity.SubEstate
	LocationResolver
}

// LocationResolver denormalizes profile location ids. Dangling ids resolve
// to "Unknown X" placeholders rather than failing.
type LocationResolver interface {
	Resolve(townID, estateID, subEstateID int) (entity.Town, entity.Estate, entity.SubEstate)
}
