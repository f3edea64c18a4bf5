package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

// SeedData is the YAML document accepted by the seed command.
type SeedData struct {
	Countries      []SeedCountry       `yaml:"countries"`
	Projects       []SeedProject       `yaml:"projects"`
	FailureReasons []SeedFailureReason `yaml:"failure_reasons"`
}

type SeedCountry struct {
	Name      string `yaml:"name"`
	Code      string `yaml:"code"`
	PhoneCode string `yaml:"phone_code"`
}

type SeedProject struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

type SeedFailureReason struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
}

type SeedReport struct {
	Countries      int
	Projects       int
	FailureReasons int
}

func LoadSeedFile(path string) (*SeedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data SeedData
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return &data, nil
}

type Seeder struct {
	countries interfaces.CountryRepository
	projects  interfaces.ProjectRepository
	reasons   interfaces.FailureReasonRepository
}

func NewSeeder(countries interfaces.CountryRepository, projects interfaces.ProjectRepository, reasons interfaces.FailureReasonRepository) *Seeder {
	return &Seeder{countries: countries, projects: projects, reasons: reasons}
}

// Apply upserts countries and projects by code and failure reasons by name.
// It stops at the first invalid or failed entry.
func (s *Seeder) Apply(ctx context.Context, data *SeedData) (SeedReport, error) {
	var report SeedReport

	for i, c := range data.Countries {
		code := strings.ToLower(strings.TrimSpace(c.Code))
		if c.Name == "" || code == "" {
			return report, fmt.Errorf("countries[%d]: name and code are required", i)
		}
		if err := s.countries.UpsertByCode(ctx, &models.Country{Name: c.Name, Code: code, PhoneCode: c.PhoneCode}); err != nil {
			return report, err
		}
		report.Countries++
	}

	for i, p := range data.Projects {
		code := strings.ToLower(strings.TrimSpace(p.Code))
		if p.Name == "" || code == "" {
			return report, fmt.Errorf("projects[%d]: name and code are required", i)
		}
		if err := s.projects.UpsertByCode(ctx, &models.Project{Name: p.Name, Code: code}); err != nil {
			return report, err
		}
		report.Projects++
	}

	for i, r := range data.FailureReasons {
		category := r.Category
		if category == "" {
			category = "other"
		}
		if r.Name == "" {
			return report, fmt.Errorf("failure_reasons[%d]: name is required", i)
		}
		switch category {
		case "technical", "service", "policy", "other":
		default:
			return report, fmt.Errorf("failure_reasons[%d]: unknown category %q", i, category)
		}
		if err := s.reasons.UpsertByName(ctx, &models.FailureReason{Name: r.Name, Description: r.Description, Category: category}); err != nil {
			return report, err
		}
		report.FailureReasons++
	}

	logrus.WithFields(logrus.Fields{
		"countries":       report.Countries,
		"projects":        report.Projects,
		"failure_reasons": report.FailureReasons,
	}).Info("seed applied")
	return report, nil
}
