package users

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/universe-backend/pkg/docstore"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	store docstore.Store
	now   func() time.Time
}

// NewRepository constructs a users repo bound to the provided store. A nil
// store is allowed; every call then fails with docstore.ErrUnavailable.
func NewRepository(store docstore.Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

// Create inserts a new user and returns its id.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (docstore.ID, error) {
	if r.store == nil {
		return docstore.ID{}, docstore.ErrUnavailable
	}
	return r.store.InsertOne(ctx, Collection, dto.ToDocument(r.now()))
}

// FindByIdentifier returns the first user whose email or student_id equals
// identifier, or docstore.ErrNotFound.
func (r *Repository) FindByIdentifier(ctx context.Context, identifier string) (docstore.Document, error) {
	if r.store == nil {
		return nil, docstore.ErrUnavailable
	}
	return r.store.FindOne(ctx, Collection, docstore.Or{
		docstore.Eq{Field: FieldEmail, Value: identifier},
		docstore.Eq{Field: FieldStudentID, Value: identifier},
	})
}

// ExistsByStudentIDOrEmail reports whether either key is already taken.
func (r *Repository) ExistsByStudentIDOrEmail(ctx context.Context, studentID, email string) (bool, error) {
	if r.store == nil {
		return false, docstore.ErrUnavailable
	}
	_, err := r.store.FindOne(ctx, Collection, docstore.Or{
		docstore.Eq{Field: FieldStudentID, Value: studentID},
		docstore.Eq{Field: FieldEmail, Value: email},
	})
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, docstore.ErrNotFound):
		return false, nil
	}
	return false, err
}
