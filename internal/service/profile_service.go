package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

const (
	msgNoProfile     = "There is no profile for this user"
	msgNoProfiles    = "There are no profiles"
	msgHandleExists  = "That handle already exists"
	fieldNoProfile   = "noprofile"
	fieldHandleTaken = "handle"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// SkillList accepts either a comma separated string or a JSON array.
type SkillList []string

func (l *SkillList) UnmarshalJSON(data []byte) error {
	var raw []string
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// ProfileInput is a profile submission. Empty optional fields leave the
// stored value in place.
type ProfileInput struct {
	Handle         string    `json:"handle"`
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	Skills         SkillList `json:"skills"`
	Bio            string    `json:"bio"`
	GithubUsername string    `json:"githubusername"`
	Youtube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	Linkedin       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *ProfileService) Current(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr("get profile", err, fieldNoProfile, msgNoProfile)
	}
	return profile, nil
}

func (s *ProfileService) ByUser(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.Current(ctx, userID)
}

func (s *ProfileService) ByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByHandle(ctx, handle)
	if err != nil {
		return nil, notFoundOr("get profile by handle", err, fieldNoProfile, msgNoProfile)
	}
	return profile, nil
}

func (s *ProfileService) All(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, wrapInternal("list profiles", err)
	}
	if len(profiles) == 0 {
		return nil, models.NewNotFoundError(fieldNoProfile, msgNoProfiles)
	}
	return profiles, nil
}

// Upsert creates the actor's profile or updates the fields present in in.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	in.Handle = strings.TrimSpace(in.Handle)
	if res := validation.ValidateProfile(validation.ProfileData{
		Handle:    in.Handle,
		Status:    in.Status,
		Skills:    in.Skills,
		Website:   in.Website,
		Youtube:   in.Youtube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Linkedin:  in.Linkedin,
		Instagram: in.Instagram,
	}); !res.IsValid() {
		return nil, invalid(res)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	creating := false
	switch {
	case repository.IsNotFound(err):
		creating = true
		profile = &models.Profile{UserID: userID}
	case err != nil:
		return nil, wrapInternal("get profile", err)
	}

	if creating || profile.Handle != in.Handle {
		taken, err := s.profileRepo.HandleTaken(ctx, in.Handle, userID)
		if err != nil {
			return nil, wrapInternal("check handle", err)
		}
		if taken {
			return nil, models.NewValidationError(fieldHandleTaken, msgHandleExists)
		}
	}

	applyProfileInput(profile, in)

	if creating {
		err = s.profileRepo.Create(ctx, profile)
		if repository.IsUniqueViolation(err) {
			err = s.updateConcurrent(ctx, userID, in, err)
		}
	} else {
		err = s.profileRepo.Update(ctx, profile)
	}
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, models.NewValidationError(fieldHandleTaken, msgHandleExists)
		}
		return nil, wrapInternal("save profile", err)
	}

	return s.Current(ctx, userID)
}

// updateConcurrent handles a create that lost a race on the user_id
// constraint by applying in to the profile that won. When the user still
// has no profile the conflict was on the handle and createErr is returned.
func (s *ProfileService) updateConcurrent(ctx context.Context, userID uint, in ProfileInput, createErr error) error {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if repository.IsNotFound(err) {
		return createErr
	}
	if err != nil {
		return err
	}
	applyProfileInput(existing, in)
	return s.profileRepo.Update(ctx, existing)
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func applyProfileInput(p *models.Profile, in ProfileInput) {
	p.Handle = in.Handle
	setIfPresent(&p.Status, in.Status)
	p.Skills = models.StringList(in.Skills)

	setIfPresent(&p.Company, in.Company)
	setIfPresent(&p.Website, in.Website)
	setIfPresent(&p.Location, in.Location)
	setIfPresent(&p.Bio, in.Bio)
	setIfPresent(&p.GithubUsername, in.GithubUsername)

	setIfPresent(&p.Social.Youtube, in.Youtube)
	setIfPresent(&p.Social.Twitter, in.Twitter)
	setIfPresent(&p.Social.Facebook, in.Facebook)
	setIfPresent(&p.Social.Linkedin, in.Linkedin)
	setIfPresent(&p.Social.Instagram, in.Instagram)
}

func parseRange(from, to string) (time.Time, *time.Time, error) {
	start, err := validation.ParseDate(from)
	if err != nil {
		return time.Time{}, nil, err
	}
	if strings.TrimSpace(to) == "" {
		return start, nil, nil
	}
	end, err := validation.ParseDate(to)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	if res := validation.ValidateExperience(validation.ExperienceData{
		Title:   in.Title,
		Company: in.Company,
		From:    in.From,
		To:      in.To,
	}); !res.IsValid() {
		return nil, invalid(res)
	}
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, models.NewValidationError("from", "Not a valid date")
	}

	profile, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    in.Location,
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, wrapInternal("add experience", err)
	}
	return s.Current(ctx, userID)
}

// RemoveExperience deletes one entry. An id that is not on the profile is
// ignored.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, wrapInternal("remove experience", err)
	}
	return s.Current(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	if res := validation.ValidateEducation(validation.EducationData{
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
	}); !res.IsValid() {
		return nil, invalid(res)
	}
	from, to, err := parseRange(in.From, in.To)
	if err != nil {
		return nil, models.NewValidationError("from", "Not a valid date")
	}

	profile, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, wrapInternal("add education", err)
	}
	return s.Current(ctx, userID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, wrapInternal("remove education", err)
	}
	return s.Current(ctx, userID)
}

// DeleteAccount removes the actor's profile and user record. It succeeds
// when neither exists.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.DeleteAccount(ctx, userID); err != nil {
		return wrapInternal("delete account", err)
	}
	return nil
}
