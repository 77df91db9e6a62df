package domain

import (
	"errors"
	"time"
)

var ErrCountdownNotFound = errors.New("countdown not found")

type Countdown struct {
	Slug      string
	Label     string
	TargetAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Remaining struct {
	Days         int64 `json:"days"`
	Hours        int64 `json:"hours"`
	Minutes      int64 `json:"minutes"`
	Seconds      int64 `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
	Expired      bool  `json:"expired"`
}

// Remaining breaks the time left until TargetAt into whole units.
// Sub-second remainders are truncated.
func (c *Countdown) Remaining(now time.Time) Remaining {
	if !now.Before(c.TargetAt) {
		return Remaining{Expired: true}
	}

	total := int64(c.TargetAt.Sub(now) / time.Second)
	return Remaining{
		Days:         total / 86400,
		Hours:        total % 86400 / 3600,
		Minutes:      total % 3600 / 60,
		Seconds:      total % 60,
		TotalSeconds: total,
	}
}
