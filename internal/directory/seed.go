package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	kinerrors "kin/internal/errors"
	"kin/internal/kinship"
)

// seedFile is the hand-writable TOML shape for bulk entry: people by name,
// relationship facts by the names of their endpoints.
//
//	[[people]]
//	name = "Alice"
//	gender = "female"
//
//	[[facts]]
//	a = "Alice"
//	b = "Bob"
//	type = "parent"
type seedFile struct {
	People []seedPerson `toml:"people"`
	Facts  []seedFact   `toml:"facts"`
}

type seedPerson struct {
	Name   string `toml:"name"`
	Gender string `toml:"gender"`
	Photo  string `toml:"photo"`
	Notes  string `toml:"notes"`
}

type seedFact struct {
	A    string `toml:"a"`
	B    string `toml:"b"`
	Type string `toml:"type"`
}

// DecodeSeed parses a TOML seed file into an importable snapshot, generating
// ids and timestamps. Names must be unique within the file since facts
// reference people by name.
func DecodeSeed(data []byte) (*Snapshot, error) {
	var seed seedFile
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, kinerrors.New(kinerrors.ImportInvalid, "invalid TOML seed file", err)
	}

	now := time.Now().UTC()
	snap := &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now,
	}

	idByName := make(map[string]string, len(seed.People))
	for _, sp := range seed.People {
		if sp.Name == "" {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "seed person with empty name", nil)
		}
		if _, dup := idByName[sp.Name]; dup {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "duplicate seed person name "+sp.Name, nil)
		}
		gender, err := kinship.ParseGender(sp.Gender)
		if err != nil {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "seed person "+sp.Name, err)
		}
		p := kinship.Person{
			ID:        uuid.NewString(),
			Name:      sp.Name,
			Gender:    gender,
			Photo:     sp.Photo,
			Notes:     sp.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		idByName[sp.Name] = p.ID
		snap.People = append(snap.People, p)
	}

	for _, f := range seed.Facts {
		t, err := kinship.ParseRelType(f.Type)
		if err != nil {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "seed fact "+f.A+"/"+f.B, err)
		}
		aID, ok := idByName[f.A]
		if !ok {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "seed fact references unknown person "+f.A, nil)
		}
		bID, ok := idByName[f.B]
		if !ok {
			return nil, kinerrors.New(kinerrors.ImportInvalid, "seed fact references unknown person "+f.B, nil)
		}
		snap.Relationships = append(snap.Relationships, kinship.Relationship{
			ID:        uuid.NewString(),
			PersonA:   aID,
			PersonB:   bID,
			Type:      t,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
