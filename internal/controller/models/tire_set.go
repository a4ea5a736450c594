package models

import "time"

const (
	TirePositionFront = "front"
	TirePositionRear  = "rear"
)

// TireSet records one tire mounted on a motorcycle. A motorcycle has
// at most one active (not yet removed) set per position
type TireSet struct {
	Id               string     `json:"id"`
	MotorcycleId     string     `json:"motorcycleId"`
	Position         string     `json:"position"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	InstalledAt      *time.Time `json:"installedAt"`
	InstalledMileage int        `json:"installedMileage"`
	ExpectedLifeKm   *int       `json:"expectedLifeKm"`
	RemovedAt        *time.Time `json:"removedAt"`
	CreatedAt        *time.Time `json:"createdAt"`
	LastUpdatedAt    *time.Time `json:"lastUpdatedAt"`
}

// GetWearPercent estimates wear from the distance covered since the
// tire was installed, clamped to 100
func (t TireSet) GetWearPercent(currentMileage int) float64 {
	if t.ExpectedLifeKm == nil || *t.ExpectedLifeKm <= 0 {
		return 0
	}
	covered := currentMileage - t.InstalledMileage
	if covered <= 0 {
		return 0
	}
	wear := float64(covered) / float64(*t.ExpectedLifeKm) * 100
	if wear > 100 {
		return 100
	}
	return wear
}

type TireSets []TireSet
