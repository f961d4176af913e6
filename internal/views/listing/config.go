// internal/views/listing/config.go
package listing

import (
	appconfig "pixisphere/internal/common/config"
	"pixisphere/internal/models"
)

type Config struct {
	PriceMax      float64
	PriceStep     float64
	Styles        []string
	RatingOptions []float64
	SkeletonCount int
}

func LoadConfig(cfg appconfig.ListingConfig) *Config {
	c := &Config{
		PriceMax:      cfg.PriceMax,
		PriceStep:     cfg.PriceStep,
		Styles:        cfg.Styles,
		RatingOptions: cfg.RatingOptions,
		SkeletonCount: 3,
	}
	if c.PriceMax <= 0 {
		c.PriceMax = models.DefaultPriceCeiling
	}
	if c.PriceStep <= 0 {
		c.PriceStep = 1000
	}
	if len(c.Styles) == 0 {
		c.Styles = []string{"Traditional", "Candid", "Studio", "Outdoor"}
	}
	if len(c.RatingOptions) == 0 {
		c.RatingOptions = []float64{0, 4, 3, 2}
	}
	return c
}
