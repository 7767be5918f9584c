package storage

import (
	"database/sql"
	"fmt"
	"time"

	"kin/internal/kinship"
)

// Store is the SQLite-backed persistence layer behind a directory.
// All multi-row mutations run inside a single transaction.
type Store struct {
	db       *DB
	people   *PersonRepository
	rels     *RelationshipRepository
	settings *SettingsRepository
}

// NewStore wraps an open database with the repository set
func NewStore(db *DB) *Store {
	return &Store{
		db:       db,
		people:   NewPersonRepository(db),
		rels:     NewRelationshipRepository(db),
		settings: NewSettingsRepository(db),
	}
}

// DB exposes the underlying database handle
func (s *Store) DB() *DB {
	return s.db
}

func (s *Store) LoadPeople() ([]kinship.Person, error) {
	return s.people.List()
}

func (s *Store) LoadRelationships() ([]kinship.Relationship, error) {
	return s.rels.List()
}

func (s *Store) PutPerson(p kinship.Person) error {
	return s.people.Put(p)
}

func (s *Store) PutRelationship(rel kinship.Relationship) error {
	return s.rels.Put(rel)
}

func (s *Store) DeleteRelationship(id string) error {
	return s.rels.Delete(id)
}

// DeletePerson removes the person row and the given incident relationship
// rows in one transaction.
func (s *Store) DeletePerson(personID string, relIDs []string) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		for _, relID := range relIDs {
			if _, err := tx.Exec("DELETE FROM relationships WHERE id = ?", relID); err != nil {
				return fmt.Errorf("failed to delete relationship: %w", err)
			}
		}
		if _, err := tx.Exec("DELETE FROM people WHERE id = ?", personID); err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return nil
	})
}

func (s *Store) GetSetting(key string) (string, error) {
	return s.settings.Get(key)
}

func (s *Store) PutSetting(key, value string) error {
	return s.settings.Put(key, value)
}

func (s *Store) DeleteSetting(key string) error {
	return s.settings.Delete(key)
}

// Replace swaps the entire data set in one transaction. Settings survive.
func (s *Store) Replace(people []kinship.Person, rels []kinship.Relationship) error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM relationships"); err != nil {
			return fmt.Errorf("failed to clear relationships: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM people"); err != nil {
			return fmt.Errorf("failed to clear people: %w", err)
		}

		for _, p := range people {
			if _, err := tx.Exec(`
				INSERT INTO people (id, name, gender, photo, notes, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`,
				p.ID, p.Name, string(p.Gender), p.Photo, p.Notes,
				p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("failed to insert person: %w", err)
			}
		}

		for _, rel := range rels {
			if _, err := tx.Exec(`
				INSERT INTO relationships (id, person_a, person_b, type, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`,
				rel.ID, rel.PersonA, rel.PersonB, string(rel.Type),
				rel.CreatedAt.Format(time.RFC3339), rel.UpdatedAt.Format(time.RFC3339),
			); err != nil {
				return fmt.Errorf("failed to insert relationship: %w", err)
			}
		}

		return nil
	})
}

// Clear removes all people and relationships plus the perspective setting
func (s *Store) Clear() error {
	return s.db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM relationships"); err != nil {
			return fmt.Errorf("failed to clear relationships: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM people"); err != nil {
			return fmt.Errorf("failed to clear people: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM settings WHERE key = 'perspective'"); err != nil {
			return fmt.Errorf("failed to clear perspective: %w", err)
		}
		return nil
	})
}
