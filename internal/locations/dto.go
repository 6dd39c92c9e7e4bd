package locations

type CountryRequest struct {
	CountryName string `json:"countryName" validate:"required,min=2"`
}

type StateRequest struct {
	StateName string `json:"stateName" validate:"required,min=2"`
	CountryID uint   `json:"countryId" validate:"required"`
}

type DistrictRequest struct {
	DistrictName string `json:"districtName" validate:"required,min=2"`
	StateID      uint   `json:"stateId" validate:"required"`
}

type CityRequest struct {
	CityName   string `json:"cityName" validate:"required,min=2"`
	DistrictID uint   `json:"districtId" validate:"required"`
}

type ZoneRequest struct {
	ZoneName string `json:"zoneName" validate:"required,min=2"`
	CityID   uint   `json:"cityId" validate:"required"`
}

type AreaRequest struct {
	AreaName string  `json:"areaName" validate:"required,min=2"`
	Pincode  *string `json:"pincode" validate:"omitempty,len=6,numeric"`
	ZoneID   uint    `json:"zoneId" validate:"required"`
}
