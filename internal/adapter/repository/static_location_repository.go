package repository

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
)

//go:embed data/locations.yaml
var defaultLocations []byte

type locationKey struct {
	parent int
	id     int
}

type staticLocationRepository struct {
	towns []entity.Town

	townByID   map[int]entity.Town
	estates    map[locationKey]entity.Estate // keyed by (townID, estateID)
	estateByID map[int]entity.Estate
	subEstates map[locationKey]entity.SubEstate // keyed by (estateID, subEstateID)
}

// NewStaticLocationRepository loads the embedded town tree.
func NewStaticLocationRepository() (repository.LocationRepository, error) {
	return NewLocationRepositoryFromYAML(defaultLocations)
}

func NewLocationRepositoryFromYAML(raw []byte) (repository.LocationRepository, error) {
	var doc struct {
		Towns []entity.Town `yaml:"towns"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}

	r := &staticLocationRepository{
		townByID:   make(map[int]entity.Town),
		estates:    make(map[locationKey]entity.Estate),
		estateByID: make(map[int]entity.Estate),
		subEstates: make(map[locationKey]entity.SubEstate),
	}

	for _, town := range doc.Towns {
		for i := range town.Estates {
			estate := &town.Estates[i]
			estate.TownID = town.ID
			for j := range estate.SubEstates {
				estate.SubEstates[j].EstateID = estate.ID
				r.subEstates[locationKey{estate.ID, estate.SubEstates[j].ID}] = estate.SubEstates[j]
			}
			r.estates[locationKey{town.ID, estate.ID}] = *estate
			if _, exists := r.estateByID[estate.ID]; !exists {
				r.estateByID[estate.ID] = *estate
			}
		}
		r.townByID[town.ID] = town
		r.towns = append(r.towns, town)
	}

	return r, nil
}

// Towns returns the top level only; nested estates are served separately.
func (r *staticLocationRepository) Towns() []entity.Town {
	out := make([]entity.Town, 0, len(r.towns))
	for _, t := range r.towns {
		out = append(out, entity.Town{ID: t.ID, Name: t.Name})
	}
	return out
}

func (r *staticLocationRepository) EstatesByTown(townID int) []entity.Estate {
	town, ok := r.townByID[townID]
	if !ok {
		return []entity.Estate{}
	}
	out := make([]entity.Estate, 0, len(town.Estates))
	for _, e := range town.Estates {
		out = append(out, entity.Estate{ID: e.ID, TownID: e.TownID, Name: e.Name})
	}
	return out
}

func (r *staticLocationRepository) SubEstatesByEstate(estateID int) []entity.SubEstate {
	estate, ok := r.estateByID[estateID]
	if !ok {
		return []entity.SubEstate{}
	}
	out := make([]entity.SubEstate, len(estate.SubEstates))
	copy(out, estate.SubEstates)
	return out
}

func (r *staticLocationRepository) Resolve(townID, estateID, subEstateID int) (entity.Town, entity.Estate, entity.SubEstate) {
	town := entity.Town{ID: townID, Name: entity.UnknownTownName}
	if t, ok := r.townByID[townID]; ok {
		town = entity.Town{ID: t.ID, Name: t.Name}
	}

	estate := entity.Estate{ID: estateID, TownID: townID, Name: entity.UnknownEstateName}
	if e, ok := r.estates[locationKey{townID, estateID}]; ok {
		estate = entity.Estate{ID: e.ID, TownID: e.TownID, Name: e.Name}
	}

	subEstate := entity.SubEstate{ID: subEstateID, EstateID: estateID, Name: entity.UnknownSubEstateName}
	if s, ok := r.subEstates[locationKey{estateID, subEstateID}]; ok {
		subEstate = s
	}

	return town, estate, subEstate
}
