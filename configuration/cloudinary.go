package configuration

import (
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
)

// InitCloudinary builds the Cloudinary client from environment credentials.
func InitCloudinary() (*cloudinary.Cloudinary, error) {
	return cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
}
