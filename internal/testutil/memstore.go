// Package testutil provides in-memory test doubles and fixtures shared by
// engine and CLI tests.
package testutil

import (
	"errors"
	"sort"

	"kin/internal/kinship"
)

// MemStore is an in-memory implementation of the directory's persistence
// collaborator. FailNext makes the next write fail, for exercising the
// write-then-commit contract.
type MemStore struct {
	People        map[string]kinship.Person
	Relationships map[string]kinship.Relationship
	Settings      map[string]string

	// FailNext causes the next mutating call to return an error.
	FailNext bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		People:        make(map[string]kinship.Person),
		Relationships: make(map[string]kinship.Relationship),
		Settings:      make(map[string]string),
	}
}

func (s *MemStore) failNext() error {
	if s.FailNext {
		s.FailNext = false
		return errors.New("simulated storage failure")
	}
	return nil
}

func (s *MemStore) LoadPeople() ([]kinship.Person, error) {
	out := make([]kinship.Person, 0, len(s.People))
	for _, p := range s.People {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadRelationships returns relationships ordered by creation time then id,
// matching the SQLite store's reload order.
func (s *MemStore) LoadRelationships() ([]kinship.Relationship, error) {
	out := make([]kinship.Relationship, 0, len(s.Relationships))
	for _, r := range s.Relationships {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) PutPerson(p kinship.Person) error {
	if err := s.failNext(); err != nil {
		return err
	}
	s.People[p.ID] = p
	return nil
}

func (s *MemStore) PutRelationship(r kinship.Relationship) error {
	if err := s.failNext(); err != nil {
		return err
	}
	s.Relationships[r.ID] = r
	return nil
}

func (s *MemStore) DeleteRelationship(id string) error {
	if err := s.failNext(); err != nil {
		return err
	}
	delete(s.Relationships, id)
	return nil
}

func (s *MemStore) DeletePerson(personID string, relIDs []string) error {
	if err := s.failNext(); err != nil {
		return err
	}
	delete(s.People, personID)
	for _, id := range relIDs {
		delete(s.Relationships, id)
	}
	return nil
}

func (s *MemStore) GetSetting(key string) (string, error) {
	return s.Settings[key], nil
}

func (s *MemStore) PutSetting(key, value string) error {
	if err := s.failNext(); err != nil {
		return err
	}
	s.Settings[key] = value
	return nil
}

func (s *MemStore) DeleteSetting(key string) error {
	if err := s.failNext(); err != nil {
		return err
	}
	delete(s.Settings, key)
	return nil
}

func (s *MemStore) Replace(people []kinship.Person, rels []kinship.Relationship) error {
	if err := s.failNext(); err != nil {
		return err
	}
	s.People = make(map[string]kinship.Person, len(people))
	for _, p := range people {
		s.People[p.ID] = p
	}
	s.Relationships = make(map[string]kinship.Relationship, len(rels))
	for _, r := range rels {
		s.Relationships[r.ID] = r
	}
	return nil
}

func (s *MemStore) Clear() error {
	if err := s.failNext(); err != nil {
		return err
	}
	s.People = make(map[string]kinship.Person)
	s.Relationships = make(map[string]kinship.Relationship)
	delete(s.Settings, "perspective")
	return nil
}
