package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/voyage/api/internal/database"
	"github.com/forgo/voyage/api/internal/model"
)

// UserRepository handles user data access
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Email uniqueness is enforced by the store; a
// violation surfaces as database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			email: $email,
			hash: $hash,
			name: IF $name IS NOT NULL THEN $name ELSE NONE END,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"email": user.Email,
		"hash":  derefOrNil(user.Hash),
		"name":  derefOrNil(user.Name),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already exists", database.ErrDuplicate)
		}
		return err
	}

	created := extractQueryResults(result)
	if len(created) == 0 {
		return errors.New("no result returned")
	}

	data, ok := created[0].(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}

	user.ID = convertSurrealID(data["id"])
	user.CreatedOn = parseTime(data["created_on"])
	user.UpdatedOn = parseTime(data["updated_on"])
	return nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUser(result)
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUser(result)
}

func parseUser(result interface{}) (*model.User, error) {
	data, ok := extractRecord(result)
	if !ok {
		return nil, nil
	}

	user := &model.User{
		ID:        convertSurrealID(data["id"]),
		Email:     extractString(data, "email"),
		CreatedOn: parseTime(data["created_on"]),
		UpdatedOn: parseTime(data["updated_on"]),
	}
	if h, ok := data["hash"].(string); ok {
		user.Hash = &h
	}
	if n, ok := data["name"].(string); ok && n != "" {
		user.Name = &n
	}

	return user, nil
}

// derefOrNil converts an optional string to its value or nil, so queries can
// distinguish absent fields with IS NOT NULL checks.
func derefOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
