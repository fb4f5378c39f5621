package service

import (
	"context"

	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"
	"civiscore/internal/places"
)

// PlaceLookup is the slice of the places client the catalog needs.
type PlaceLookup interface {
	Enabled() bool
	Search(ctx context.Context, query, placeType, location string, radius int) ([]places.Place, error)
	Details(ctx context.Context, placeID string) (*places.Place, error)
}

type CatalogService interface {
	Create(req dto.CreateServiceDTO) (*dto.ServiceResponse, error)
	GetByID(id string) (*dto.ServiceResponse, error)
	List(query dto.ListServicesQuery) (*dto.Paginated[dto.ServiceResponse], error)
	LookupPlaces(ctx context.Context, query, placeType string) ([]places.Place, error)
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
	countryRepo repository.CountryRepository
	placeLookup PlaceLookup
}

func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	countryRepo repository.CountryRepository,
	placeLookup PlaceLookup,
) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		countryRepo: countryRepo,
		placeLookup: placeLookup,
	}
}

// Create registers a new public service under an existing country.
func (s *catalogService) Create(req dto.CreateServiceDTO) (*dto.ServiceResponse, error) {
	if _, err := s.countryRepo.GetByID(req.CountryID); err != nil {
		return nil, ErrCountryNotFound
	}

	service := &models.Service{
		Name:      req.Name,
		Category:  req.Category,
		CountryID: req.CountryID,
		PlaceID:   req.PlaceID,
	}

	if err := s.serviceRepo.Create(service); err != nil {
		return nil, err
	}

	return dto.FromModelToServiceResponse(service), nil
}

func (s *catalogService) GetByID(id string) (*dto.ServiceResponse, error) {
	service, err := s.serviceRepo.GetByIDWithCountry(id)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	return dto.FromModelToServiceResponse(service), nil
}

func (s *catalogService) List(query dto.ListServicesQuery) (*dto.Paginated[dto.ServiceResponse], error) {
	services, total, err := s.serviceRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, *dto.FromModelToServiceResponse(&services[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

// LookupPlaces searches the Places API for civic places matching the query.
// Used to enrich the catalog when registering services.
func (s *catalogService) LookupPlaces(ctx context.Context, query, placeType string) ([]places.Place, error) {
	if s.placeLookup == nil || !s.placeLookup.Enabled() {
		return []places.Place{}, nil
	}
	return s.placeLookup.Search(ctx, query, placeType, "", 0)
}
