package dto

import (
	"time"

	"github.com/ecolearners/platform-api/internal/models"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID      uint             `json:"id"`
	Email   string           `json:"email"`
	Name    string           `json:"name"`
	Role    string           `json:"role"`
	Points  int              `json:"points"`
	Profile *ProfileResponse `json:"profile,omitempty"`
}

// ProfileResponse serializes a user profile with the derived age.
type ProfileResponse struct {
	Name           string  `json:"name"`
	RegisterNumber string  `json:"register_number,omitempty"`
	DateOfBirth    *string `json:"date_of_birth,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	Address        string  `json:"address,omitempty"`
	Residence      string  `json:"residence,omitempty"`
	Age            *int    `json:"age,omitempty"`
}

// ProfileUpdateRequest carries editable profile fields.
type ProfileUpdateRequest struct {
	Name           string  `json:"name" validate:"required,min=1"`
	RegisterNumber string  `json:"register_number" validate:"omitempty,max=64"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string  `json:"gender" validate:"omitempty,max=32"`
	Address        string  `json:"address" validate:"omitempty,max=512"`
	Residence      string  `json:"residence" validate:"omitempty,max=255"`
}

// NewUserResponse converts a User model into its public DTO.
func NewUserResponse(model models.User) UserResponse {
	response := UserResponse{
		ID:     model.ID,
		Email:  model.Email,
		Name:   model.Name,
		Role:   model.Role,
		Points: model.Points,
	}

	if model.Profile != nil {
		profile := NewProfileResponse(model.Name, *model.Profile, time.Now())
		response.Profile = &profile
	}

	return response
}

// NewUserResponseSlice converts a slice of users.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}

// NewProfileResponse builds the profile view, deriving age at read time.
func NewProfileResponse(name string, profile models.UserProfile, reference time.Time) ProfileResponse {
	response := ProfileResponse{
		Name:           name,
		RegisterNumber: profile.RegisterNumber,
		Gender:         profile.Gender,
		Address:        profile.Address,
		Residence:      profile.Residence,
		Age:            profile.Age(reference),
	}

	if profile.DateOfBirth != nil {
		dob := time.Time(*profile.DateOfBirth).Format("2006-01-02")
		response.DateOfBirth = &dob
	}

	return response
}
