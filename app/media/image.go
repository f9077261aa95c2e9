package media

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/joefazee/betpoints/models"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Image is an upload whose type has been sniffed from its bytes.
type Image struct {
	Data        []byte
	ContentType string
	Ext         string
}

// ReadImage reads at most maxBytes from r and checks the content is a supported image.
// The declared content type of the upload is ignored.
func ReadImage(r io.Reader, maxBytes int64) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, models.ErrImageTooLarge
	}

	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, models.ErrUnsupportedImage
	}
	return &Image{Data: data, ContentType: contentType, Ext: ext}, nil
}

func (i *Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

func (i *Image) Size() int64 {
	return int64(len(i.Data))
}

// AvatarKey names a fresh object per upload so cached URLs never go stale.
func AvatarKey(userID uuid.UUID, ext string) string {
	return fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New(), ext)
}
