package models

import "time"

// The geographic master is a six-level hierarchy:
// country -> state -> district -> city -> zone -> area.
// Levels use integer keys because the master is seeded from legacy data.

type Country struct {
	CountryID   uint      `gorm:"column:country_id;primaryKey;autoIncrement"`
	CountryName string    `gorm:"column:country_name;not null;uniqueIndex:uq_countries_name"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type State struct {
	StateID   uint      `gorm:"column:state_id;primaryKey;autoIncrement"`
	StateName string    `gorm:"column:state_name;not null"`
	CountryID uint      `gorm:"column:country_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type District struct {
	DistrictID   uint      `gorm:"column:district_id;primaryKey;autoIncrement"`
	DistrictName string    `gorm:"column:district_name;not null"`
	StateID      uint      `gorm:"column:state_id;not null;index"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type City struct {
	CityID     uint      `gorm:"column:city_id;primaryKey;autoIncrement"`
	CityName   string    `gorm:"column:city_name;not null"`
	DistrictID uint      `gorm:"column:district_id;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Zone struct {
	ZoneID    uint      `gorm:"column:zone_id;primaryKey;autoIncrement"`
	ZoneName  string    `gorm:"column:zone_name;not null"`
	CityID    uint      `gorm:"column:city_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Area struct {
	AreaID    uint      `gorm:"column:area_id;primaryKey;autoIncrement"`
	AreaName  string    `gorm:"column:area_name;not null"`
	Pincode   *string   `gorm:"column:pincode"`
	ZoneID    uint      `gorm:"column:zone_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
