package service

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/models"
	"civiscore/internal/httpapi/repository"
)

type CountryService interface {
	Create(req dto.CreateCountryDTO) (*dto.CountryResponse, error)
	GetByID(id string) (*dto.CountryResponse, error)
	List(query dto.ListCountriesQuery) (*dto.Paginated[dto.CountryResponse], error)
	Delete(id string) error
}

type countryService struct {
	countryRepo repository.CountryRepository
}

func NewCountryService(countryRepo repository.CountryRepository) CountryService {
	return &countryService{countryRepo: countryRepo}
}

func (s *countryService) Create(req dto.CreateCountryDTO) (*dto.CountryResponse, error) {
	country := &models.Country{
		Name:   req.Name,
		Region: req.Region,
		Code:   req.Code,
	}

	if err := s.countryRepo.Create(country); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}

	return dto.FromModelToCountryResponse(country), nil
}

func (s *countryService) GetByID(id string) (*dto.CountryResponse, error) {
	country, err := s.countryRepo.GetByID(id)
	if err != nil {
		return nil, ErrCountryNotFound
	}
	return dto.FromModelToCountryResponse(country), nil
}

func (s *countryService) List(query dto.ListCountriesQuery) (*dto.Paginated[dto.CountryResponse], error) {
	countries, total, err := s.countryRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CountryResponse, 0, len(countries))
	for i := range countries {
		items = append(items, *dto.FromModelToCountryResponse(&countries[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

// Delete removes a country. Blocked while any service references it.
func (s *countryService) Delete(id string) error {
	if _, err := s.countryRepo.GetByID(id); err != nil {
		return ErrCountryNotFound
	}

	count, err := s.countryRepo.CountServices(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCountryInUse
	}

	return s.countryRepo.Delete(id)
}
