package repository

import (
	"database/sql"
	"fmt"
	"time"

	"aicademy/internal/database"
	"aicademy/internal/models"
)

// KidRepository handles database operations for kid profiles
type KidRepository struct {
	db *database.DB
}

// NewKidRepository creates a new kid repository
func NewKidRepository(db *database.DB) *KidRepository {
	return &KidRepository{db: db}
}

// CreateKid creates a new kid profile
func (r *KidRepository) CreateKid(parentID int64, name string, age int, grade, avatar string) (*models.Kid, error) {
	query := `
		INSERT INTO kids (parent_id, name, age, grade, avatar)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, parentID, name, age, grade, avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to create kid: %w", err)
	}

	kid := &models.Kid{
		ID:        id,
		ParentID:  parentID,
		Name:      name,
		Age:       age,
		Grade:     grade,
		Avatar:    avatar,
		CreatedAt: time.Now(),
	}

	return kid, nil
}

// GetKidByID retrieves a kid by ID
func (r *KidRepository) GetKidByID(kidID int64) (*models.Kid, error) {
	query := `
		SELECT id, parent_id, name, age, grade, avatar, created_at
		FROM kids
		WHERE id = ?
	`
	kid := &models.Kid{}
	err := r.db.QueryRow(query, kidID).Scan(
		&kid.ID,
		&kid.ParentID,
		&kid.Name,
		&kid.Age,
		&kid.Grade,
		&kid.Avatar,
		&kid.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kid: %w", err)
	}

	return kid, nil
}

// GetParentKids retrieves all kids belonging to a parent in creation order
func (r *KidRepository) GetParentKids(parentID int64) ([]models.Kid, error) {
	query := `
		SELECT id, parent_id, name, age, grade, avatar, created_at
		FROM kids
		WHERE parent_id = ?
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query kids: %w", err)
	}
	defer rows.Close()

	return scanKids(rows)
}

// GetAllKids retrieves all kids across all parents, for the kid-selection
// picker. Listing is deliberately unscoped: the deployment model is a single
// household per install.
func (r *KidRepository) GetAllKids() ([]models.Kid, error) {
	query := `
		SELECT id, parent_id, name, age, grade, avatar, created_at
		FROM kids
		ORDER BY name ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query kids: %w", err)
	}
	defer rows.Close()

	return scanKids(rows)
}

func scanKids(rows *sql.Rows) ([]models.Kid, error) {
	var kids []models.Kid
	for rows.Next() {
		var kid models.Kid
		if err := rows.Scan(
			&kid.ID,
			&kid.ParentID,
			&kid.Name,
			&kid.Age,
			&kid.Grade,
			&kid.Avatar,
			&kid.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan kid: %w", err)
		}
		kids = append(kids, kid)
	}

	return kids, rows.Err()
}
