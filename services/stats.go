package services

import (
	"tolet/models"
	"tolet/utils"
)

// StatsService computes aggregate rent statistics over the current listing
// set, shown on the dashboard and fed into the AI insight prompt.
type StatsService struct {
	logger *utils.Logger
}

// NewStatsService creates a StatsService with the given logger.
func NewStatsService(logger *utils.Logger) *StatsService {
	return &StatsService{logger: logger}
}

// Generate builds a RentReport from the given listings.
func (s *StatsService) Generate(props []models.Property) *models.RentReport {
	report := &models.RentReport{
		ByType: make(map[models.PropertyType]int),
	}
	if len(props) == 0 {
		return report
	}

	report.TotalListings = len(props)
	report.MinRent = props[0].Rent
	report.MaxRent = props[0].Rent

	var total int
	for _, p := range props {
		if p.Verified {
			report.Verified++
		}
		report.ByType[p.PropertyType]++

		total += p.Rent
		if p.Rent < report.MinRent {
			report.MinRent = p.Rent
		}
		if p.Rent > report.MaxRent {
			report.MaxRent = p.Rent
		}
	}
	report.AverageRent = round2(float64(total) / float64(len(props)))
	return report
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
