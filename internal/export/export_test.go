package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kin/internal/directory"
	kinerrors "kin/internal/errors"
	"kin/internal/kinship"
)

func sampleSnapshot() *directory.Snapshot {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &directory.Snapshot{
		Version:    directory.SnapshotVersion,
		ExportedAt: now,
		People: []kinship.Person{
			{ID: "p1", Name: "Alice", Gender: kinship.GenderFemale, CreatedAt: now, UpdatedAt: now},
			{ID: "p2", Name: "Bob", Gender: kinship.GenderMale, CreatedAt: now, UpdatedAt: now},
		},
		Relationships: []kinship.Relationship{
			{ID: "r1", PersonA: "p1", PersonB: "p2", Type: kinship.Parent, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func assertSnapshotEqual(t *testing.T, got *directory.Snapshot) {
	t.Helper()
	if len(got.People) != 2 || len(got.Relationships) != 1 {
		t.Fatalf("Unexpected snapshot shape: %d people, %d relationships",
			len(got.People), len(got.Relationships))
	}
	if got.People[0].Name != "Alice" || got.People[0].Gender != kinship.GenderFemale {
		t.Errorf("Unexpected first person: %+v", got.People[0])
	}
	if got.Relationships[0].Type != kinship.Parent {
		t.Errorf("Unexpected relationship type: %s", got.Relationships[0].Type)
	}
}

func TestRoundTripPlainJSON(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatJSON})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	snap, err := Decode(data, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestRoundTripYAML(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatYAML})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	snap, err := Decode(data, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestRoundTripCompressed(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatJSON, Compress: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !isGzip(data) {
		t.Fatal("Expected gzip magic on compressed output")
	}
	snap, err := Decode(data, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestRoundTripSealed(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatJSON, Passphrase: "hunter2"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !isSealed(data) {
		t.Fatal("Expected seal magic on encrypted output")
	}
	snap, err := Decode(data, "hunter2")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestRoundTripSealedAndCompressed(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{
		Format:     FormatYAML,
		Compress:   true,
		Passphrase: "hunter2",
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// Decode sniffs both layers without being told about them
	snap, err := Decode(data, "hunter2")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestWrongPassphrase(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatJSON, Passphrase: "hunter2"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	_, err = Decode(data, "letmein")
	if err == nil {
		t.Fatal("Expected decode to fail with wrong passphrase")
	}
	if code := kinerrors.CodeOf(err); code != kinerrors.DecryptFailed {
		t.Errorf("Expected %s, got %s", kinerrors.DecryptFailed, code)
	}
}

func TestSealedWithoutPassphrase(t *testing.T) {
	data, err := Encode(sampleSnapshot(), Options{Format: FormatJSON, Passphrase: "hunter2"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	_, err = Decode(data, "")
	if err == nil {
		t.Fatal("Expected decode to fail without passphrase")
	}
	if code := kinerrors.CodeOf(err); code != kinerrors.DecryptFailed {
		t.Errorf("Expected %s, got %s", kinerrors.DecryptFailed, code)
	}
}

func TestTruncatedSealedFile(t *testing.T) {
	data := []byte(sealMagic + "short")
	if _, err := Decode(data, "hunter2"); err == nil {
		t.Fatal("Expected decode to fail on truncated sealed file")
	}
}

func TestWriteAndReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.yaml.gz")

	opts := Options{Format: FormatForPath(path), Compress: true}
	if opts.Format != FormatYAML {
		t.Fatalf("Expected yaml format for %s, got %s", path, opts.Format)
	}

	if err := WriteFile(path, sampleSnapshot(), opts); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file back: %v", err)
	}
	if !isGzip(raw) {
		t.Error("Expected file on disk to be gzip-compressed")
	}

	snap, err := ReadFile(path, "")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	assertSnapshotEqual(t, snap)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"), "")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if code := kinerrors.CodeOf(err); code != kinerrors.StorageFailure {
		t.Errorf("Expected %s, got %s", kinerrors.StorageFailure, code)
	}
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]Format{
		"people.json":    FormatJSON,
		"people.yaml":    FormatYAML,
		"people.yml":     FormatYAML,
		"people.yaml.gz": FormatYAML,
		"people.json.gz": FormatJSON,
		"people":         FormatJSON,
	}
	for path, want := range cases {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YAML"); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(YAML) = %s, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(\"\") = %s, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}
