package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"blogcms/internal/models"
	"blogcms/internal/repositories"
	"blogcms/internal/validation"
)

// IdentityService handles business logic for the user lifecycle:
// validated create/update/delete/fetch and credential handling.
type IdentityService struct {
	userRepo repositories.UserRepository
	validate *validation.Validator
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userRepo repositories.UserRepository) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		validate: validation.New(),
	}
}

// CreateUser validates the input, hashes the password and stores the new
// user. The role defaults to SUBSCRIBER when unset. The returned payload
// never contains the credential.
func (s *IdentityService) CreateUser(input validation.UserCreateInput) Envelope[*models.User] {
	if fieldErrors := s.validate.Check(input); fieldErrors != nil {
		return invalid[*models.User](fieldErrors)
	}

	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return failure[*models.User](fmt.Sprintf("email '%s' already registered", input.Email))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		return failure[*models.User](msgInternalError)
	}

	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleSubscriber
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
		Image:    input.Image,
	}
	if err := s.userRepo.Create(user); err != nil {
		log.Printf("Failed to create user: %v", err)
		return failure[*models.User](msgInternalError)
	}

	created := user.Sanitized()
	return success(&created, "User created successfully")
}

// UpdateUser validates the input against the update schema and persists
// the changes. When both password fields are empty the stored credential
// is left untouched; when present, validation already guaranteed they
// match and the credential is re-derived.
func (s *IdentityService) UpdateUser(id string, input validation.UserUpdateInput) Envelope[*models.User] {
	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.User]("User not found with id: " + id)
		}
		log.Printf("Failed to fetch user %s: %v", id, err)
		return failure[*models.User](msgInternalError)
	}

	if fieldErrors := s.validate.Check(input); fieldErrors != nil {
		return invalid[*models.User](fieldErrors)
	}

	if input.Email != existing.Email {
		if other, err := s.userRepo.GetByEmail(input.Email); err == nil && other != nil {
			return failure[*models.User](fmt.Sprintf("email '%s' already registered", input.Email))
		}
	}

	existing.Name = input.Name
	existing.Email = input.Email
	existing.Image = input.Image
	if input.Role != "" {
		existing.Role = models.Role(input.Role)
	}

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash password: %v", err)
			return failure[*models.User](msgInternalError)
		}
		existing.Password = string(hashedPassword)
	}

	if err := s.userRepo.Update(existing); err != nil {
		log.Printf("Failed to update user %s: %v", id, err)
		return failure[*models.User](msgInternalError)
	}

	updated := existing.Sanitized()
	return success(&updated, "User updated successfully")
}

// DeleteUser removes a user by id and returns the removed record.
func (s *IdentityService) DeleteUser(id string) Envelope[*models.User] {
	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.User]("User not found with id: " + id)
		}
		log.Printf("Failed to fetch user %s: %v", id, err)
		return failure[*models.User](msgInternalError)
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.User]("User not found with id: " + id)
		}
		log.Printf("Failed to delete user %s: %v", id, err)
		return failure[*models.User](msgInternalError)
	}

	deleted := existing.Sanitized()
	return success(&deleted, "User deleted successfully")
}

// GetUserByID returns a single user by id, credential stripped.
func (s *IdentityService) GetUserByID(id string) Envelope[*models.User] {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.User]("User not found with id: " + id)
		}
		log.Printf("Failed to fetch user %s: %v", id, err)
		return failure[*models.User](msgInternalError)
	}
	found := user.Sanitized()
	return success(&found, "User fetched successfully")
}

// GetUserByEmail returns a single user by email, credential stripped.
func (s *IdentityService) GetUserByEmail(email string) Envelope[*models.User] {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return failure[*models.User]("User not found with email: " + email)
		}
		log.Printf("Failed to fetch user by email %s: %v", email, err)
		return failure[*models.User](msgInternalError)
	}
	found := user.Sanitized()
	return success(&found, "User fetched successfully")
}

// GetAllUsers returns all users with credentials stripped. An empty
// result is a valid success.
func (s *IdentityService) GetAllUsers() Envelope[[]models.User] {
	users, err := s.userRepo.GetAll()
	if err != nil {
		log.Printf("Failed to fetch users: %v", err)
		return failure[[]models.User](msgInternalError)
	}
	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitized())
	}
	return success(sanitized, "Users fetched successfully")
}
