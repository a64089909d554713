package matching

import (
	"math"
	"math/rand/v2"

	"github.com/resqbite/resqbite-backend/internal/config"
	"github.com/resqbite/resqbite-backend/internal/domain"
)

// randEstimator produces simulated figures from configured bounds. No real
// geocoding happens anywhere; the numbers exist for display and for the
// volunteer payment, and are generated exactly once per delivery.
type randEstimator struct {
	cfg config.DeliveryConfig
}

// NewEstimator creates the production Estimator.
func NewEstimator(cfg config.DeliveryConfig) Estimator {
	return &randEstimator{cfg: cfg}
}

func (e *randEstimator) Estimate() domain.Estimate {
	distance := e.cfg.MinDistanceKm + rand.Float64()*(e.cfg.MaxDistanceKm-e.cfg.MinDistanceKm)
	distance = math.Round(distance*10) / 10

	minutes := int(math.Ceil(distance*e.cfg.MinutesPerKm)) + e.cfg.PickupOverhead
	payment := math.Round((e.cfg.BasePayment+distance*e.cfg.PaymentPerKm)*100) / 100

	return domain.Estimate{
		DistanceKm: distance,
		EstMinutes: minutes,
		Payment:    payment,
	}
}
