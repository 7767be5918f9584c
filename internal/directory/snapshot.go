package directory

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	kinerrors "kin/internal/errors"
	"kin/internal/kinship"
)

// SnapshotVersion is the current snapshot payload version.
const SnapshotVersion = 1

// Snapshot is the full export/import shape: a pair of lists. Any wire
// framing (compression, encryption) is layered on top of this by the caller.
type Snapshot struct {
	Version       int                    `json:"version" yaml:"version"`
	ExportedAt    time.Time              `json:"exportedAt" yaml:"exportedAt"`
	People        []kinship.Person       `json:"people" yaml:"people"`
	Relationships []kinship.Relationship `json:"relationships" yaml:"relationships"`
}

// Validate checks the snapshot's internal consistency: unique ids, known
// relationship types and genders, and relationship endpoints that exist in
// the people list.
func (s *Snapshot) Validate() error {
	if s.Version <= 0 || s.Version > SnapshotVersion {
		return kinerrors.New(kinerrors.ImportInvalid,
			fmt.Sprintf("unsupported snapshot version %d", s.Version), nil)
	}

	peopleIDs := make(map[string]bool, len(s.People))
	for _, p := range s.People {
		if p.ID == "" || p.Name == "" {
			return kinerrors.New(kinerrors.ImportInvalid, "person with empty id or name", nil)
		}
		if peopleIDs[p.ID] {
			return kinerrors.New(kinerrors.ImportInvalid, "duplicate person id "+p.ID, nil)
		}
		if _, err := kinship.ParseGender(string(p.Gender)); err != nil {
			return kinerrors.New(kinerrors.ImportInvalid, "person "+p.ID, err)
		}
		peopleIDs[p.ID] = true
	}

	relIDs := make(map[string]bool, len(s.Relationships))
	pairs := make(map[pairKey]bool, len(s.Relationships))
	for _, r := range s.Relationships {
		if r.ID == "" {
			return kinerrors.New(kinerrors.ImportInvalid, "relationship with empty id", nil)
		}
		if relIDs[r.ID] {
			return kinerrors.New(kinerrors.ImportInvalid, "duplicate relationship id "+r.ID, nil)
		}
		relIDs[r.ID] = true
		if _, err := kinship.ParseRelType(string(r.Type)); err != nil {
			return kinerrors.New(kinerrors.ImportInvalid, "relationship "+r.ID, err)
		}
		if !peopleIDs[r.PersonA] || !peopleIDs[r.PersonB] {
			return kinerrors.New(kinerrors.ImportInvalid,
				"relationship "+r.ID+" references an unknown person", nil)
		}
		if r.PersonA == r.PersonB {
			return kinerrors.New(kinerrors.ImportInvalid,
				"relationship "+r.ID+" links a person to themselves", nil)
		}
		key := pairKey{r.PersonA, r.PersonB, r.Type}
		if pairs[key] {
			return kinerrors.New(kinerrors.ImportInvalid,
				"duplicate relationship for pair "+r.PersonA+"/"+r.PersonB, nil)
		}
		pairs[key] = true
	}

	return nil
}

// EncodeJSON renders the snapshot as indented JSON.
func (s *Snapshot) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// EncodeYAML renders the snapshot as YAML.
func (s *Snapshot) EncodeYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeSnapshot parses a snapshot payload, accepting JSON or YAML.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
		return &snap, nil
	}
	if yamlErr := yaml.Unmarshal(data, &snap); yamlErr == nil {
		return &snap, nil
	}
	return nil, kinerrors.New(kinerrors.ImportInvalid, "snapshot is neither valid JSON nor YAML", nil)
}
