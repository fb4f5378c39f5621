package service

import (
	"civiscore/internal/httpapi/dto"
	"civiscore/internal/httpapi/repository"
)

// UserService covers the admin-facing user management surface; the
// authenticated user's own profile goes through AuthService.
type UserService interface {
	List(query dto.ListUsersQuery) (*dto.Paginated[dto.UserResponse], error)
	GetByID(id string) (*dto.UserResponse, error)
	SetActive(id string, active bool) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(query dto.ListUsersQuery) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(query)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *dto.FromModelToUserResponse(&users[i]))
	}

	return dto.NewPaginated(items, total, query.Page, query.Limit), nil
}

func (s *userService) GetByID(id string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return dto.FromModelToUserResponse(user), nil
}

// SetActive toggles an account. Deactivated users fail login but their
// evaluations and votes stay on record.
func (s *userService) SetActive(id string, active bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}
