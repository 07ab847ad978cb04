package users

import (
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
)

// Collection stores one document per account.
const Collection = "user"

const (
	FieldStudentID    = "student_id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPasswordHash = "password_hash"
	FieldAvatarURL    = "avatar_url"
	FieldBio          = "bio"
)

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	StudentID    string
	Name         string
	Email        string
	PasswordHash string
}

// ToDocument builds the stored user. avatar_url and bio start out null.
func (c CreateUserDTO) ToDocument(now time.Time) docstore.Document {
	now = now.UTC()
	return docstore.Document{
		FieldStudentID:          c.StudentID,
		FieldName:               c.Name,
		FieldEmail:              c.Email,
		FieldPasswordHash:       c.PasswordHash,
		FieldAvatarURL:          nil,
		FieldBio:                nil,
		docstore.FieldCreatedAt: now,
		docstore.FieldUpdatedAt: now,
	}
}

// ToWire serializes a stored user. The password hash is dropped unless
// exposeHash is set.
func ToWire(user docstore.Document, exposeHash bool) docstore.WireRecord {
	out := docstore.Serialize(user)
	if out != nil && !exposeHash {
		delete(out, FieldPasswordHash)
	}
	return out
}
