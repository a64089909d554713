package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if _, err := url.ParseRequestURI(c.Assessor.BaseURL); err != nil {
		return fmt.Errorf("assessor.base_url: %w", err)
	}
	if c.Assessor.MaxImageBytes <= 0 {
		return fmt.Errorf("assessor.max_image_bytes must be > 0 (got %d)", c.Assessor.MaxImageBytes)
	}

	if err := c.Delivery.validate(); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}

	return nil
}

func (d *DeliveryConfig) validate() error {
	if d.MinDistanceKm <= 0 {
		return fmt.Errorf("min_distance_km must be > 0 (got %v)", d.MinDistanceKm)
	}
	if d.MaxDistanceKm < d.MinDistanceKm {
		return fmt.Errorf("max_distance_km must be >= min_distance_km (got %v < %v)",
			d.MaxDistanceKm, d.MinDistanceKm)
	}
	if d.BasePayment < 0 || d.PaymentPerKm < 0 {
		return fmt.Errorf("payment parameters must be >= 0")
	}
	if d.MinutesPerKm <= 0 {
		return fmt.Errorf("minutes_per_km must be > 0 (got %v)", d.MinutesPerKm)
	}
	return nil
}
