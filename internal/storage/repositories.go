package storage

import (
	"database/sql"
	"fmt"
	"time"

	"kin/internal/kinship"
)

// PersonRepository provides CRUD operations for the people table
type PersonRepository struct {
	db *DB
}

// NewPersonRepository creates a new person repository
func NewPersonRepository(db *DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Put inserts or updates a person record
func (r *PersonRepository) Put(p kinship.Person) error {
	_, err := r.db.Exec(`
		INSERT INTO people (id, name, gender, photo, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender,
			photo = excluded.photo,
			notes = excluded.notes,
			updated_at = excluded.updated_at
	`,
		p.ID,
		p.Name,
		string(p.Gender),
		p.Photo,
		p.Notes,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("failed to put person: %w", err)
	}

	return nil
}

// List returns all person records
func (r *PersonRepository) List() ([]kinship.Person, error) {
	rows, err := r.db.Query(`
		SELECT id, name, gender, photo, notes, created_at, updated_at
		FROM people
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []kinship.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	return people, rows.Err()
}

func scanPerson(rows *sql.Rows) (kinship.Person, error) {
	var p kinship.Person
	var gender, createdAt, updatedAt string

	if err := rows.Scan(&p.ID, &p.Name, &gender, &p.Photo, &p.Notes, &createdAt, &updatedAt); err != nil {
		return p, fmt.Errorf("failed to scan person: %w", err)
	}

	p.Gender = kinship.Gender(gender)

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return p, fmt.Errorf("invalid created_at format: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return p, fmt.Errorf("invalid updated_at format: %w", err)
	}

	return p, nil
}

// RelationshipRepository provides CRUD operations for the relationships table
type RelationshipRepository struct {
	db *DB
}

// NewRelationshipRepository creates a new relationship repository
func NewRelationshipRepository(db *DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

// Put inserts or updates a relationship record
func (r *RelationshipRepository) Put(rel kinship.Relationship) error {
	_, err := r.db.Exec(`
		INSERT INTO relationships (id, person_a, person_b, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			person_a = excluded.person_a,
			person_b = excluded.person_b,
			type = excluded.type,
			updated_at = excluded.updated_at
	`,
		rel.ID,
		rel.PersonA,
		rel.PersonB,
		string(rel.Type),
		rel.CreatedAt.Format(time.RFC3339),
		rel.UpdatedAt.Format(time.RFC3339),
	)

	if err != nil {
		return fmt.Errorf("failed to put relationship: %w", err)
	}

	return nil
}

// List returns all relationship records in insertion order
func (r *RelationshipRepository) List() ([]kinship.Relationship, error) {
	rows, err := r.db.Query(`
		SELECT id, person_a, person_b, type, created_at, updated_at
		FROM relationships
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var rels []kinship.Relationship
	for rows.Next() {
		var rel kinship.Relationship
		var relType, createdAt, updatedAt string

		if err := rows.Scan(&rel.ID, &rel.PersonA, &rel.PersonB, &relType, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}

		rel.Type = kinship.RelType(relType)
		rel.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at format: %w", err)
		}
		rel.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid updated_at format: %w", err)
		}

		rels = append(rels, rel)
	}

	return rels, rows.Err()
}

// Delete removes a relationship by id
func (r *RelationshipRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM relationships WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	return nil
}

// SettingsRepository provides access to the settings key/value table
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the value for a key, or empty string when unset
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting: %w", err)
	}
	return value, nil
}

// Put sets the value for a key
func (r *SettingsRepository) Put(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to put setting: %w", err)
	}
	return nil
}

// Delete removes a key
func (r *SettingsRepository) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
