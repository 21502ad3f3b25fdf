// internal/domain/models/artifact.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Artifact is a document or diagram attached to a project and optionally
// to a single component. The file fields describe an external file in
// storage; the row and the file have independent lifecycles (file
// removal is best-effort during deletion). Artifacts are
// create-or-delete only.
type Artifact struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	FilePath    string              `bson:"file_path" json:"file_path"` // storage path (local or S3 key)
	FileType    string              `bson:"file_type" json:"file_type"`
	FileSize    int64               `bson:"file_size" json:"file_size"` // size in bytes
	ProjectID   primitive.ObjectID  `bson:"project_id" json:"project_id"`
	ComponentID *primitive.ObjectID `bson:"component_id,omitempty" json:"component_id,omitempty"`
	UploadedBy  primitive.ObjectID  `bson:"uploaded_by" json:"uploaded_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// HasFile returns true if this artifact has a backing file in storage.
func (a *Artifact) HasFile() bool {
	return a.FilePath != ""
}
