package entity

type Town struct {
	ID      int      `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Estates []Estate `json:"estates,omitempty" yaml:"estates"`
}

type Estate struct {
	ID         int         `json:"id" yaml:"id"`
	TownID     int         `json:"townId" yaml:"-"`
	Name       string      `json:"name" yaml:"name"`
	SubEstates []SubEstate `json:"subEstates,omitempty" yaml:"subEstates"`
}

// SubEstate ids are only unique within their estate.
type SubEstate struct {
	ID       int    `json:"id" yaml:"id"`
	EstateID int    `json:"estateId" yaml:"-"`
	Name     string `json:"name" yaml:"name"`
}

const (
	UnknownTownName      = "Unknown Town"
	UnknownEstateName    = "Unknown Estate"
	UnknownSubEstateName = "Unknown SubEstate"
)
