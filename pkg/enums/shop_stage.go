package enums

import "fmt"

// ShopStage is the sales-funnel status of a discovered shop.
type ShopStage string

const (
	ShopStageNew       ShopStage = "new"
	ShopStageFollowUp  ShopStage = "follow-up"
	ShopStageConverted ShopStage = "converted"
	ShopStageLost      ShopStage = "lost"
)

var validShopStages = []ShopStage{
	ShopStageNew,
	ShopStageFollowUp,
	ShopStageConverted,
	ShopStageLost,
}

// String implements fmt.Stringer.
func (s ShopStage) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShopStage.
func (s ShopStage) IsValid() bool {
	for _, candidate := range validShopStages {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShopStage converts raw input into a ShopStage.
func ParseShopStage(value string) (ShopStage, error) {
	for _, candidate := range validShopStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop stage %q", value)
}
