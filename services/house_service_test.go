package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Dosada05/sports-day-system/models"
	"github.com/Dosada05/sports-day-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func TestCreateHouse(t *testing.T) {
	service := NewHouseService(newFakeHouseRepo(), newFakeUserRepo(), nil)

	house, err := service.CreateHouse(context.Background(), CreateHouseInput{
		Name:  " Red ",
		Color: "#cc0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Red", house.Name)
	assert.Zero(t, house.TotalPoints)
}

func TestCreateHouseRequiresName(t *testing.T) {
	service := NewHouseService(newFakeHouseRepo(), newFakeUserRepo(), nil)

	_, err := service.CreateHouse(context.Background(), CreateHouseInput{Color: "#cc0000"})
	require.ErrorIs(t, err, ErrHouseNameRequired)
}

func TestUploadHouseLogo(t *testing.T) {
	uploader := &fakeUploader{}
	houseRepo := newFakeHouseRepo(&models.House{ID: 1, Name: "Red"})
	service := NewHouseService(houseRepo, newFakeUserRepo(), uploader)

	house, err := service.UploadHouseLogo(context.Background(), 1, strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	require.NotNil(t, house.LogoURL)
	assert.Equal(t, "https://cdn.test/houses/1/logo.png", *house.LogoURL)
	assert.Equal(t, []string{"houses/1/logo.png"}, uploader.uploaded)
}

func TestUploadHouseLogoReplacesOldObject(t *testing.T) {
	uploader := &fakeUploader{}
	oldKey := "houses/1/logo.jpg"
	houseRepo := newFakeHouseRepo(&models.House{ID: 1, Name: "Red", LogoKey: &oldKey})
	service := NewHouseService(houseRepo, newFakeUserRepo(), uploader)

	_, err := service.UploadHouseLogo(context.Background(), 1, strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, []string{"houses/1/logo.jpg"}, uploader.deleted)
}

func TestUploadHouseLogoRejectsUnknownType(t *testing.T) {
	houseRepo := newFakeHouseRepo(&models.House{ID: 1, Name: "Red"})
	service := NewHouseService(houseRepo, newFakeUserRepo(), &fakeUploader{})

	_, err := service.UploadHouseLogo(context.Background(), 1, strings.NewReader("x"), "application/zip")
	require.ErrorIs(t, err, ErrValidationFailed)
}

func TestUploadHouseLogoWithoutStorage(t *testing.T) {
	houseRepo := newFakeHouseRepo(&models.House{ID: 1, Name: "Red"})
	service := NewHouseService(houseRepo, newFakeUserRepo(), nil)

	_, err := service.UploadHouseLogo(context.Background(), 1, strings.NewReader("x"), "image/png")
	require.ErrorIs(t, err, ErrHouseLogoUploadFailed)
}
