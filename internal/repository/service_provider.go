package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
)

var ErrServiceProviderNotFound = errors.New("service provider not found")

type ServiceProviderRepository interface {
	WithDB(db db.DB) ServiceProviderRepository
	CreateProvider(ctx context.Context, provider model.ServiceProvider) error
	GetProvider(ctx context.Context, id uuid.UUID) (model.ServiceProvider, error)
	ListAllProviders(ctx context.Context) ([]model.ServiceProvider, error)
	UpdateProvider(ctx context.Context, provider model.ServiceProvider) error
	DeleteProvider(ctx context.Context, id uuid.UUID) error
}

type serviceProviderRepository struct {
	db db.DB
}

func NewServiceProviderRepository(db db.DB) ServiceProviderRepository {
	return &serviceProviderRepository{db: db}
}

func (r serviceProviderRepository) WithDB(db db.DB) ServiceProviderRepository {
	return &serviceProviderRepository{db: db}
}

const providerColumns = `id, name, expertise, description, location, contact_email, phone, image_url, available`

func (r serviceProviderRepository) CreateProvider(ctx context.Context, provider model.ServiceProvider) error {
	if _, err := r.db.Exec(ctx, `
		INSERT INTO service_providers (`+providerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		provider.ID, provider.Name, provider.Expertise, provider.Description,
		provider.Location, provider.ContactEmail, provider.Phone,
		provider.ImageURL, provider.Available,
	); err != nil {
		return fmt.Errorf("create service provider: %w", err)
	}

	return nil
}

func (r serviceProviderRepository) GetProvider(ctx context.Context, id uuid.UUID) (model.ServiceProvider, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+providerColumns+`
		FROM service_providers
		WHERE id = $1
	`, id)

	provider, err := scanServiceProvider(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ServiceProvider{}, ErrServiceProviderNotFound
	}
	if err != nil {
		return model.ServiceProvider{}, fmt.Errorf("get service provider: %w", err)
	}

	return provider, nil
}

func (r serviceProviderRepository) ListAllProviders(ctx context.Context) ([]model.ServiceProvider, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+providerColumns+`
		FROM service_providers
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list service providers: %w", err)
	}
	defer rows.Close()

	providers := make([]model.ServiceProvider, 0)
	for rows.Next() {
		provider, err := scanServiceProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service provider: %w", err)
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate service providers: %w", err)
	}

	return providers, nil
}

func (r serviceProviderRepository) UpdateProvider(ctx context.Context, provider model.ServiceProvider) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE service_providers
		SET name = $2, expertise = $3, description = $4, location = $5,
			contact_email = $6, phone = $7, image_url = $8, available = $9
		WHERE id = $1
	`,
		provider.ID, provider.Name, provider.Expertise, provider.Description,
		provider.Location, provider.ContactEmail, provider.Phone,
		provider.ImageURL, provider.Available,
	)
	if err != nil {
		return fmt.Errorf("update service provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceProviderNotFound
	}

	return nil
}

func (r serviceProviderRepository) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM service_providers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service provider: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceProviderNotFound
	}

	return nil
}

func scanServiceProvider(row pgx.Row) (model.ServiceProvider, error) {
	var provider model.ServiceProvider
	if err := row.Scan(
		&provider.ID, &provider.Name, &provider.Expertise, &provider.Description,
		&provider.Location, &provider.ContactEmail, &provider.Phone,
		&provider.ImageURL, &provider.Available,
	); err != nil {
		return model.ServiceProvider{}, err
	}

	return provider, nil
}
