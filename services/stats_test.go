package services

import (
	"testing"

	"tolet/models"
	"tolet/utils"
)

func TestGenerateEmpty(t *testing.T) {
	s := NewStatsService(utils.NewLogger())
	report := s.Generate(nil)

	if report.TotalListings != 0 || report.AverageRent != 0 {
		t.Errorf("empty report = %+v", report)
	}
	if report.ByType == nil {
		t.Error("ByType must be initialized even when empty")
	}
}

func TestGenerate(t *testing.T) {
	props := []models.Property{
		{PropertyType: models.TypeRoom, Rent: 8500, Verified: true},
		{PropertyType: models.TypeHostelPG, Rent: 6500},
		{PropertyType: models.TypeRoom, Rent: 12000},
	}

	s := NewStatsService(utils.NewLogger())
	report := s.Generate(props)

	if report.TotalListings != 3 {
		t.Errorf("total = %d; want 3", report.TotalListings)
	}
	if report.Verified != 1 {
		t.Errorf("verified = %d; want 1", report.Verified)
	}
	if report.MinRent != 6500 || report.MaxRent != 12000 {
		t.Errorf("rent range = [%d, %d]; want [6500, 12000]", report.MinRent, report.MaxRent)
	}
	if report.AverageRent != 9000 {
		t.Errorf("average = %v; want 9000", report.AverageRent)
	}
	if report.ByType[models.TypeRoom] != 2 || report.ByType[models.TypeHostelPG] != 1 {
		t.Errorf("by type = %v", report.ByType)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{7333.333333, 7333.33},
		{7500.456, 7500.46},
		{0, 0},
	}
	for _, tc := range tests {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v; want %v", tc.in, got, tc.want)
		}
	}
}
