package service

import (
	"context"
	"strings"

	"linknet/internal/blob"
	"linknet/internal/models"
	"linknet/internal/repository"
)

// SearchLimit caps people-search results.
const SearchLimit = 20

// ProfileService provides professional-profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	blobs       blob.Store
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, blobs blob.Store) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		blobs:       blobs,
	}
}

// ProfileInput carries the caller-editable profile fields.
type ProfileInput struct {
	FirstName string
	LastName  string
	Headline  string
	Location  string
	About     string
}

// CreateOrUpdate upserts the caller's profile. First and last name and a
// headline are required; experience, skills, and image are managed through
// their own operations and left untouched here.
func (s *ProfileService) CreateOrUpdate(ctx context.Context, userID uint, input ProfileInput) (*models.Profile, error) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Headline = strings.TrimSpace(input.Headline)
	if input.FirstName == "" || input.LastName == "" {
		return nil, models.NewValidationError("First and last name are required")
	}
	if input.Headline == "" {
		return nil, models.NewValidationError("Headline is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &models.Profile{UserID: userID}
	}
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Headline = input.Headline
	profile.Location = strings.TrimSpace(input.Location)
	profile.About = strings.TrimSpace(input.About)

	if profile.ID == 0 {
		err = s.profileRepo.Create(ctx, profile)
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}
	return s.withImageURL(profile), nil
}

// Get returns a user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return s.withImageURL(profile), nil
}

// AddExperience appends one position to the caller's work history.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, exp models.Experience) (*models.Profile, error) {
	exp.Title = strings.TrimSpace(exp.Title)
	exp.Company = strings.TrimSpace(exp.Company)
	if exp.Title == "" || exp.Company == "" {
		return nil, models.NewValidationError("Experience title and company are required")
	}

	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.Experience = append(profile.Experience, exp)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.withImageURL(profile), nil
}

// AddSkill adds a skill to the caller's profile. Duplicates compare
// case-insensitively and are dropped silently.
func (s *ProfileService) AddSkill(ctx context.Context, userID uint, skill string) (*models.Profile, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, models.NewValidationError("Skill cannot be empty")
	}

	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, existing := range profile.Skills {
		if strings.EqualFold(existing, skill) {
			return s.withImageURL(profile), nil
		}
	}
	profile.Skills = append(profile.Skills, skill)
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.withImageURL(profile), nil
}

// UpdateImage points the caller's profile at a stored blob reference.
func (s *ProfileService) UpdateImage(ctx context.Context, userID uint, ref string) (*models.Profile, error) {
	profile, err := s.mustGet(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.ImageRef = ref
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.withImageURL(profile), nil
}

// SearchPeople matches the query against names and headlines.
func (s *ProfileService) SearchPeople(ctx context.Context, query string) ([]models.Profile, error) {
	profiles, err := s.profileRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		s.withImageURL(&profiles[i])
	}
	return profiles, nil
}

func (s *ProfileService) mustGet(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	return profile, nil
}

func (s *ProfileService) withImageURL(profile *models.Profile) *models.Profile {
	if s.blobs != nil {
		profile.ImageURL = s.blobs.URL(profile.ImageRef)
	}
	return profile
}
