package bootcamp

import (
	"context"
	"io"

	"campfinder/models"
	"campfinder/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadPhoto stores an uploaded image for the bootcamp after checking
// ownership. The image is stored as photo_<bootcampID><ext> and that name is
// written onto the bootcamp record. MIME and size validation happen at the
// handler, where the multipart header is available.
func (s *DefaultBootcampService) UploadPhoto(ctx context.Context, actor *models.User, id primitive.ObjectID, file io.Reader, ext string) (string, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := authorizeOwner(actor, existing.Publisher, "update"); err != nil {
		return "", err
	}

	publicID := "photo_" + id.Hex()
	if _, err := s.Storage.UploadPhoto(ctx, file, publicID); err != nil {
		return "", utils.NewServerError("Problem with file upload")
	}

	filename := publicID + ext
	if _, err := s.Repo.Update(ctx, id, bson.M{"photo": filename}); err != nil {
		return "", utils.FromStoreError(err, "photo")
	}
	return filename, nil
}
