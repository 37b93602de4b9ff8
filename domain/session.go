package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session owns the cash-flow series edited by one caller between calculations.
type Session struct {
	ID        string         `json:"id"`
	Series    CashFlowSeries `json:"series"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type SessionInput struct {
	Prefill bool `json:"prefill"`
	Years   int  `json:"years,omitempty"`
}

type SessionCalculationInput struct {
	Investment  float64 `json:"investment"`
	RatePercent float64 `json:"rate_percent"`
	Explain     bool    `json:"explain,omitempty"`
}
