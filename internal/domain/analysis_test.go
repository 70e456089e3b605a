package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyForm(t *testing.T) {
	tests := []struct {
		tsb  float64
		want FormStatus
	}{
		{25, FormVeryFresh},
		{20.01, FormVeryFresh},
		{20, FormRecovered},
		{5.5, FormRecovered},
		{5, FormOptimal},
		{0, FormOptimal},
		{-10, FormFatigued},
		{-29.9, FormFatigued},
		{-30, FormVeryFatigued},
		{-60, FormVeryFatigued},
	}
	for _, tt := range tests {
		got, description := ClassifyForm(tt.tsb)
		assert.Equal(t, tt.want, got, "tsb=%v", tt.tsb)
		assert.NotEmpty(t, description)
	}
}

func TestClassifyRampRate(t *testing.T) {
	tests := []struct {
		rate float64
		want RampStatus
	}{
		{9, RampHighRisk},
		{8, RampCaution},
		{6, RampCaution},
		{5, RampGood},
		{0.1, RampGood},
		{0, RampDeclining},
		{-4.9, RampDeclining},
		{-5, RampDecliningSignificantly},
		{-12, RampDecliningSignificantly},
	}
	for _, tt := range tests {
		got, _ := ClassifyRampRate(tt.rate)
		assert.Equal(t, tt.want, got, "rate=%v", tt.rate)
	}
}
