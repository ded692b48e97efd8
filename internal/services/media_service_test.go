// internal/services/media_service_test.go
package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/models"
)

type MediaServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cfg     *config.Config
	service *MediaService

	broker      *models.User
	property    *models.Property
	photography *models.Service
}

func (suite *MediaServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	suite.cfg = testConfig(suite.T())

	storage, err := NewStorageService(suite.cfg)
	suite.Require().NoError(err)
	suite.service = NewMediaService(suite.db, storage)

	suite.broker = createUser(suite.T(), suite.db, "broker@example.com", models.RoleBroker)
	suite.property = createProperty(suite.T(), suite.db, suite.broker)
	suite.photography = createCatalogService(suite.T(), suite.db, "Photography", 199)
}

func (suite *MediaServiceTestSuite) TestUploadRoundTrip() {
	content := "jpeg bytes here"
	file, header := formFile("living-room.jpg", content)

	media, err := suite.service.Upload(asPrincipal(suite.broker), suite.property.ID, suite.photography.ID, models.MediaTypePhoto, file, header)
	suite.Require().NoError(err)

	suite.Equal("living-room.jpg", media.FileName)
	suite.Equal(int64(len(content)), media.FileSize)
	suite.True(strings.HasPrefix(media.URL, "http://localhost:8080/uploads/property-media/"))

	// The blob the URL resolves to holds the exact bytes that were stored.
	stored, err := os.ReadFile(suite.localPath(media.FileKey))
	suite.Require().NoError(err)
	suite.Equal(content, string(stored))

	// The stored key resolves to the same URL on read.
	fetched, err := suite.service.Get(media.ID)
	suite.Require().NoError(err)
	suite.Equal(media.URL, fetched.URL)
	suite.Equal(media.FileSize, fetched.FileSize)
}

func (suite *MediaServiceTestSuite) localPath(key string) string {
	return filepath.Join(suite.cfg.Storage.LocalRoot, filepath.FromSlash(key))
}

func (suite *MediaServiceTestSuite) TestUploadUnknownProperty() {
	file, header := formFile("x.jpg", "bytes")

	_, err := suite.service.Upload(asPrincipal(suite.broker), uuid.New(), suite.photography.ID, models.MediaTypePhoto, file, header)
	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
}

func (suite *MediaServiceTestSuite) TestUploadUnknownService() {
	file, header := formFile("x.jpg", "bytes")

	_, err := suite.service.Upload(asPrincipal(suite.broker), suite.property.ID, uuid.New(), models.MediaTypePhoto, file, header)
	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
}

func (suite *MediaServiceTestSuite) TestDeleteForbiddenForNonOwner() {
	file, header := formFile("x.jpg", "bytes")
	media, err := suite.service.Upload(asPrincipal(suite.broker), suite.property.ID, suite.photography.ID, models.MediaTypePhoto, file, header)
	suite.Require().NoError(err)

	other := createUser(suite.T(), suite.db, "other@example.com", models.RoleBroker)
	err = suite.service.Delete(asPrincipal(other), media.ID)
	suite.Require().Error(err)
	suite.IsType(&ForbiddenError{}, err)

	suite.Require().NoError(suite.service.Delete(asPrincipal(suite.broker), media.ID))

	_, err = os.Stat(suite.localPath(media.FileKey))
	suite.True(os.IsNotExist(err))
}

func TestMediaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MediaServiceTestSuite))
}
