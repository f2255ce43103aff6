package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/dwkim-dev/cryptobrief/internal/engine"
	"github.com/dwkim-dev/cryptobrief/internal/models"
)

func TestCycleError(t *testing.T) {
	sendErr := errors.New("telegram: 502")
	smtpErr := errors.New("smtp: connection refused")

	tests := []struct {
		name        string
		present     int
		telegramErr error
		mailErr     error
		wantErr     bool
		wantSubstr  string
	}{
		{
			name:    "healthy cycle",
			present: 12,
		},
		{
			name:    "partial outage still succeeds",
			present: 3,
		},
		{
			name:       "every fetch failed",
			present:    0,
			wantErr:    true,
			wantSubstr: "all 12 metric fetches failed",
		},
		{
			name:        "telegram delivery failed",
			present:     12,
			telegramErr: sendErr,
			wantErr:     true,
			wantSubstr:  "telegram delivery failed",
		},
		{
			name:       "email delivery failed",
			present:    12,
			mailErr:    smtpErr,
			wantErr:    true,
			wantSubstr: "email delivery failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cycleError(tt.present, 12, tt.telegramErr, tt.mailErr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("cycleError() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("cycleError() = %q, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestCycleErrorWrapsDeliveryError(t *testing.T) {
	sendErr := errors.New("telegram: 502")
	err := cycleError(12, 12, sendErr, nil)
	if !errors.Is(err, sendErr) {
		t.Errorf("cycleError should wrap the delivery error, got %v", err)
	}
}

func TestVerdictChange(t *testing.T) {
	neutral := &engine.Verdict{Call: engine.CallNeutral}
	bullish := &engine.Verdict{Call: engine.CallBullish}

	tests := []struct {
		name    string
		prev    *models.CycleRecord
		verdict *engine.Verdict
		want    bool
	}{
		{"no previous cycle", nil, bullish, false},
		{"aggregation disabled", &models.CycleRecord{Verdict: "NEUTRAL"}, nil, false},
		{"previous had no verdict", &models.CycleRecord{}, bullish, false},
		{"unchanged call", &models.CycleRecord{Verdict: "NEUTRAL"}, neutral, false},
		{"call flipped", &models.CycleRecord{Verdict: "NEUTRAL"}, bullish, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change, got := verdictChange(tt.prev, tt.verdict)
			if got != tt.want {
				t.Fatalf("verdictChange() = %v, want %v", got, tt.want)
			}
			if got && !strings.Contains(change, "NEUTRAL") {
				t.Errorf("change message should name both calls, got %q", change)
			}
		})
	}
}
