package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
)

type CreateProviderParams struct {
	Name         string
	Expertise    string
	Description  string
	Location     string
	ContactEmail string
	Phone        string
	ImageURL     string
	Available    bool
}

type UpdateProviderParams struct {
	Name         *string
	Expertise    *string
	Description  *string
	Location     *string
	ContactEmail *string
	Phone        *string
	ImageURL     *string
	Available    *bool
}

type ProviderService interface {
	CreateProvider(ctx context.Context, params CreateProviderParams) (model.ServiceProvider, error)
	GetProvider(ctx context.Context, id uuid.UUID) (model.ServiceProvider, error)
	ListAllProviders(ctx context.Context) ([]model.ServiceProvider, error)
	UpdateProvider(ctx context.Context, id uuid.UUID, params UpdateProviderParams) (model.ServiceProvider, error)
	DeleteProvider(ctx context.Context, id uuid.UUID) error
}

type providerService struct {
	providerRepo repository.ServiceProviderRepository
}

func NewProviderService(providerRepo repository.ServiceProviderRepository) ProviderService {
	return &providerService{providerRepo: providerRepo}
}

func (s *providerService) CreateProvider(ctx context.Context, params CreateProviderParams) (model.ServiceProvider, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.ServiceProvider{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	provider := model.ServiceProvider{
		ID:           id,
		Name:         params.Name,
		Expertise:    params.Expertise,
		Description:  params.Description,
		Location:     params.Location,
		ContactEmail: params.ContactEmail,
		Phone:        params.Phone,
		ImageURL:     params.ImageURL,
		Available:    params.Available,
	}

	if err := s.providerRepo.CreateProvider(ctx, provider); err != nil {
		return model.ServiceProvider{}, fmt.Errorf("provider repository create provider: %w", err)
	}

	return provider, nil
}

func (s *providerService) GetProvider(ctx context.Context, id uuid.UUID) (model.ServiceProvider, error) {
	provider, err := s.providerRepo.GetProvider(ctx, id)
	if errors.Is(err, repository.ErrServiceProviderNotFound) {
		return model.ServiceProvider{}, apperr.ServiceProviderGoneErr
	}
	if err != nil {
		return model.ServiceProvider{}, fmt.Errorf("provider repository get provider: %w", err)
	}

	return provider, nil
}

func (s *providerService) ListAllProviders(ctx context.Context) ([]model.ServiceProvider, error) {
	providers, err := s.providerRepo.ListAllProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider repository list all providers: %w", err)
	}

	return providers, nil
}

func (s *providerService) UpdateProvider(ctx context.Context, id uuid.UUID, params UpdateProviderParams) (model.ServiceProvider, error) {
	provider, err := s.providerRepo.GetProvider(ctx, id)
	if errors.Is(err, repository.ErrServiceProviderNotFound) {
		return model.ServiceProvider{}, apperr.ServiceProviderGoneErr
	}
	if err != nil {
		return model.ServiceProvider{}, fmt.Errorf("provider repository get provider: %w", err)
	}

	if params.Name != nil {
		provider.Name = *params.Name
	}
	if params.Expertise != nil {
		provider.Expertise = *params.Expertise
	}
	if params.Description != nil {
		provider.Description = *params.Description
	}
	if params.Location != nil {
		provider.Location = *params.Location
	}
	if params.ContactEmail != nil {
		provider.ContactEmail = *params.ContactEmail
	}
	if params.Phone != nil {
		provider.Phone = *params.Phone
	}
	if params.ImageURL != nil {
		provider.ImageURL = *params.ImageURL
	}
	if params.Available != nil {
		provider.Available = *params.Available
	}

	if err := s.providerRepo.UpdateProvider(ctx, provider); err != nil {
		if errors.Is(err, repository.ErrServiceProviderNotFound) {
			return model.ServiceProvider{}, apperr.ServiceProviderGoneErr
		}
		return model.ServiceProvider{}, fmt.Errorf("provider repository update provider: %w", err)
	}

	return provider, nil
}

func (s *providerService) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	if err := s.providerRepo.DeleteProvider(ctx, id); err != nil {
		if errors.Is(err, repository.ErrServiceProviderNotFound) {
			return apperr.ServiceProviderGoneErr
		}
		return fmt.Errorf("provider repository delete provider: %w", err)
	}

	return nil
}
