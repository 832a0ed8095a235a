package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/repositories"
	"github.com/Dosada05/sports-day-system/storage"
)

var (
	ErrHouseCreationFailed = errors.New("failed to create house")
	ErrHouseUpdateFailed   = errors.New("failed to update house")
	ErrHouseDeleteFailed   = errors.New("failed to delete house")
	ErrHouseLogoUploadFailed = errors.New("failed to upload house logo")
)

type HouseService interface {
	CreateHouse(ctx context.Context, input CreateHouseInput) (*models.House, error)
	GetHouseByID(ctx context.Context, id int) (*models.House, error)
	GetAllHouses(ctx context.Context) ([]models.House, error)
	UpdateHouse(ctx context.Context, id int, input UpdateHouseInput) (*models.House, error)
	DeleteHouse(ctx context.Context, id int) error
	UploadHouseLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.House, error)
}

type CreateHouseInput struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	CaptainID *int   `json:"captain_id"`
}

type UpdateHouseInput struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	CaptainID *int   `json:"captain_id"`
}

type houseService struct {
	houseRepo repositories.HouseRepository
	userRepo  repositories.UserRepository
	uploader  storage.FileUploader
}

func NewHouseService(
	houseRepo repositories.HouseRepository,
	userRepo repositories.UserRepository,
	uploader storage.FileUploader,
) HouseService {
	return &houseService{
		houseRepo: houseRepo,
		userRepo:  userRepo,
		uploader:  uploader,
	}
}

func (s *houseService) CreateHouse(ctx context.Context, input CreateHouseInput) (*models.House, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHouseNameRequired
	}

	house := &models.House{
		Name:      name,
		Color:     strings.TrimSpace(input.Color),
		CaptainID: input.CaptainID,
	}

	if err := s.houseRepo.Create(ctx, house); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHouseNameConflict):
			return nil, ErrHouseNameConflict
		case errors.Is(err, repositories.ErrHouseCaptainInvalid):
			return nil, fmt.Errorf("%w: captain does not exist", ErrValidationFailed)
		default:
			return nil, fmt.Errorf("%w: %w", ErrHouseCreationFailed, err)
		}
	}

	return house, nil
}

func (s *houseService) GetHouseByID(ctx context.Context, id int) (*models.House, error) {
	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to get house by id %d: %w", id, err)
	}

	if house.CaptainID != nil {
		captain, capErr := s.userRepo.GetByID(ctx, *house.CaptainID)
		if capErr == nil {
			captain.PasswordHash = ""
			house.Captain = captain
		}
	}

	s.populateLogoURL(house)
	return house, nil
}

func (s *houseService) GetAllHouses(ctx context.Context) ([]models.House, error) {
	houses, err := s.houseRepo.GetAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get all houses: %w", err)
	}
	for i := range houses {
		s.populateLogoURL(&houses[i])
	}
	return houses, nil
}

func (s *houseService) UpdateHouse(ctx context.Context, id int, input UpdateHouseInput) (*models.House, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrHouseNameRequired
	}

	current, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("%w (id: %d): %w", ErrHouseUpdateFailed, id, err)
	}

	current.Name = name
	current.Color = strings.TrimSpace(input.Color)
	current.CaptainID = input.CaptainID

	if err := s.houseRepo.Update(ctx, current); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHouseNotFound):
			return nil, ErrHouseNotFound
		case errors.Is(err, repositories.ErrHouseNameConflict):
			return nil, ErrHouseNameConflict
		case errors.Is(err, repositories.ErrHouseCaptainInvalid):
			return nil, fmt.Errorf("%w: captain does not exist", ErrValidationFailed)
		default:
			return nil, fmt.Errorf("%w (id: %d): %w", ErrHouseUpdateFailed, id, err)
		}
	}

	s.populateLogoURL(current)
	return current, nil
}

func (s *houseService) DeleteHouse(ctx context.Context, id int) error {
	if err := s.houseRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrHouseNotFound):
			return ErrHouseNotFound
		case errors.Is(err, repositories.ErrHouseInUse):
			return ErrHouseInUse
		default:
			return fmt.Errorf("%w (id: %d): %w", ErrHouseDeleteFailed, id, err)
		}
	}
	return nil
}

func (s *houseService) UploadHouseLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.House, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", ErrHouseLogoUploadFailed)
	}

	house, err := s.houseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHouseNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrHouseLogoUploadFailed, err)
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported content type %q", ErrValidationFailed, contentType)
	}

	key := fmt.Sprintf("houses/%d/logo%s", id, ext)
	uploadResult, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHouseLogoUploadFailed, err)
	}

	oldKey := house.LogoKey
	if err := s.houseRepo.UpdateLogoKey(ctx, id, &uploadResult.Key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHouseLogoUploadFailed, err)
	}
	// old object with a different extension would otherwise be orphaned
	if oldKey != nil && *oldKey != uploadResult.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	house.LogoKey = &uploadResult.Key
	s.populateLogoURL(house)
	return house, nil
}

func (s *houseService) populateLogoURL(house *models.House) {
	if house.LogoKey != nil && s.uploader != nil {
		url := s.uploader.GetPublicURL(*house.LogoKey)
		house.LogoURL = &url
	}
}

func extensionForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
