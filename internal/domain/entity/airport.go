// internal/domain/entity/airport.go
package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport is reference data for one IATA airport code
type Airport struct {
	ID          uint
	Code        string
	AirportName string
	CityName    string
	CountryName string
	TzName      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
}
