package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"evolution/fitness-dashboard/internal/domain"
	"evolution/fitness-dashboard/internal/repository"
	"evolution/fitness-dashboard/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PhotoUpload is the backend half of the capture contract: the client PUTs
// the captured still to URL, then saves the profile carrying Key.
type PhotoUpload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ProfileView is a profile with its photo key resolved to a download URL.
type ProfileView struct {
	domain.UserProfile
	PhotoURL *string `json:"photo"`
}

// ProfileService owns the single per-user profile record.
type ProfileService interface {
	// GetProfile returns the persisted profile, or one seeded from the
	// fallback name/photo with default weight and level when none exists yet.
	GetProfile(ctx context.Context, userID, fallbackName, fallbackPhoto string) (*ProfileView, error)
	// UpdateProfile overwrites the profile wholesale.
	UpdateProfile(ctx context.Context, profile *domain.UserProfile) (*ProfileView, error)
	// NewPhotoUpload issues a presigned upload slot for a captured photo.
	NewPhotoUpload(ctx context.Context, userID, contentType string) (*PhotoUpload, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		fileStorage: fileStorage,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID, fallbackName, fallbackPhoto string) (*ProfileView, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// No row yet: seed from the fallback identity, numeric fields at
		// their defaults. Not persisted until the first update.
		profile = &domain.UserProfile{
			UserID: userID,
			Name:   fallbackName,
			Weight: domain.DefaultProfileWeight,
			Level:  domain.DefaultProfileLevel,
		}
		if fallbackName == "" {
			profile.Name = "Atleta Evolution"
		}
		if fallbackPhoto != "" {
			return &ProfileView{UserProfile: *profile, PhotoURL: &fallbackPhoto}, nil
		}
		return &ProfileView{UserProfile: *profile}, nil
	}

	return s.withPhotoURL(ctx, profile), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, profile *domain.UserProfile) (*ProfileView, error) {
	if profile == nil || profile.UserID == "" {
		return nil, errors.New("profile with user ID is required")
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.withPhotoURL(ctx, profile), nil
}

func (s *profileService) NewPhotoUpload(ctx context.Context, userID, contentType string) (*PhotoUpload, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("profile-photos/%s/%s", userID, uuid.NewString())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &PhotoUpload{Key: key, URL: url}, nil
}

// withPhotoURL resolves the stored photo key to a presigned download URL.
// A failed presign degrades to a profile without a photo rather than
// failing the whole read.
func (s *profileService) withPhotoURL(ctx context.Context, profile *domain.UserProfile) *ProfileView {
	view := &ProfileView{UserProfile: *profile}
	if profile.PhotoKey == nil || *profile.PhotoKey == "" {
		return view
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, *profile.PhotoKey, 1*time.Hour)
	if err != nil {
		log.WithError(err).WithField("user", profile.UserID).Warn("presign profile photo failed")
		return view
	}
	view.PhotoURL = &url
	return view
}
