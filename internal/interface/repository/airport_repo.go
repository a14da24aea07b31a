package repository

import (
	"context"
	"errors"
	"strings"

	"flightsearch-service/internal/domain/entity"
	"flightsearch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	gorm.Model
	Code        string `gorm:"column:code;unique"`
	AirportName string `gorm:"column:airport_name"`
	CityName    string `gorm:"column:city_name"`
	CountryName string `gorm:"column:country_name"`
	TzName      string `gorm:"column:tz_name"`
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airport_list"
}

// GetByCode finds an airport by IATA code
func (r *GormAirportRepository) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("code = ?", strings.ToUpper(code)).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAirportNotFound
		}
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:          airport.ID,
		Code:        airport.Code,
		AirportName: airport.AirportName,
		CityName:    airport.CityName,
		CountryName: airport.CountryName,
		TzName:      airport.TzName,
		CreatedAt:   airport.CreatedAt,
		UpdatedAt:   airport.UpdatedAt,
		DeletedAt:   airport.DeletedAt,
	}, nil
}
