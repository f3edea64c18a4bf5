package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

type countryRepository struct {
	db *sql.DB
}

func NewCountryRepository(db *sql.DB) interfaces.CountryRepository {
	return &countryRepository{db: db}
}

func (r *countryRepository) Create(ctx context.Context, country *models.Country) error {
	query := `
		INSERT INTO countries (name, code, phone_code)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, country.Name, country.Code, country.PhoneCode).
		Scan(&country.ID, &country.CreatedAt)
	if err != nil {
		logrus.WithError(err).WithField("code", country.Code).Error("failed to create country")
		return fmt.Errorf("failed to create country: %w", mapError(err))
	}
	return nil
}

// UpsertByCode inserts the country or refreshes the name and phone code of
// the row that already holds its code.
func (r *countryRepository) UpsertByCode(ctx context.Context, country *models.Country) error {
	query := `
		INSERT INTO countries (name, code, phone_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, phone_code = EXCLUDED.phone_code
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, country.Name, country.Code, country.PhoneCode).
		Scan(&country.ID, &country.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert country %s: %w", country.Code, err)
	}
	return nil
}

func (r *countryRepository) GetByID(ctx context.Context, id string) (*models.Country, error) {
	var c models.Country
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, code, phone_code, created_at FROM countries WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Code, &c.PhoneCode, &c.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *countryRepository) List(ctx context.Context) ([]models.Country, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, code, phone_code, created_at FROM countries ORDER BY name`)
	if err != nil {
		logrus.WithError(err).Error("failed to list countries")
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	countries := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.PhoneCode, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return countries, nil
}

func (r *countryRepository) Update(ctx context.Context, id string, req *models.UpdateCountryRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argID := 1

	if req.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argID))
		args = append(args, *req.Name)
		argID++
	}
	if req.Code != nil {
		setValues = append(setValues, fmt.Sprintf("code = $%d", argID))
		args = append(args, strings.ToLower(*req.Code))
		argID++
	}
	if req.PhoneCode != nil {
		setValues = append(setValues, fmt.Sprintf("phone_code = $%d", argID))
		args = append(args, *req.PhoneCode)
		argID++
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE countries SET %s WHERE id = $%d", strings.Join(setValues, ", "), argID)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update country: %w", mapError(err))
	}
	return expectOneRow(result)
}

func (r *countryRepository) Delete(ctx context.Context, id string) error {
	if err := submissionReferences(ctx, r.db, "country", "country_id", id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}
	return expectOneRow(result)
}
