package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Upload stores metadata about a file managed through the admin panel
// (marketing assets, progress photos). The actual file resides in S3.
type Upload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Admin who uploaded the file
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`   // Unique key in the S3 bucket - internal use
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // MIME type (e.g., "image/png")
	Size        int64              `bson:"size" json:"size"`               // File size in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
