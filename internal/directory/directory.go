// Package directory is the relationship engine facade: the in-memory entity
// store, the kinship graph built over it, and the explanation surface the
// CLI talks to. Mutations are written to the persistence collaborator first
// and applied in memory only after the write succeeds, so the two layers
// never disagree from a caller's point of view.
package directory

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	kinerrors "kin/internal/errors"
	"kin/internal/explain"
	"kin/internal/kinship"
)

// perspectiveKey is the settings key holding the current viewer's person id.
const perspectiveKey = "perspective"

// Store is the persistence collaborator. Implementations must make
// DeletePerson and Replace atomic; the engine applies its in-memory updates
// only after a call returns nil.
type Store interface {
	LoadPeople() ([]kinship.Person, error)
	LoadRelationships() ([]kinship.Relationship, error)
	PutPerson(kinship.Person) error
	PutRelationship(kinship.Relationship) error
	DeleteRelationship(id string) error
	// DeletePerson removes the person and the given incident relationship
	// ids as one unit.
	DeletePerson(personID string, relIDs []string) error
	GetSetting(key string) (string, error)
	PutSetting(key, value string) error
	DeleteSetting(key string) error
	// Replace swaps the entire stored data set (people and relationships)
	// as one unit. Settings survive.
	Replace(people []kinship.Person, rels []kinship.Relationship) error
	Clear() error
}

// Options tunes a Directory instance.
type Options struct {
	Explain explain.Options
}

type pairKey struct {
	a, b string
	t    kinship.RelType
}

// Directory holds the engine state. It guards mutations and reads with an
// instance lock so concurrent callers cannot corrupt adjacency bookkeeping;
// the underlying graph itself assumes a single writer.
type Directory struct {
	mu     sync.RWMutex
	store  Store
	logger *slog.Logger
	opts   Options

	people      map[string]kinship.Person
	rels        map[string]kinship.Relationship
	relOrder    []string
	byPair      map[pairKey]string
	graph       *kinship.Graph
	explainer   *explain.Explainer
	perspective string
}

// lockedSource exposes the people map to the explainer. It does no locking
// of its own: the explainer only runs while the directory lock is held.
type lockedSource struct {
	d *Directory
}

func (s lockedSource) Person(id string) (kinship.Person, bool) {
	p, ok := s.d.people[id]
	return p, ok
}

// Open loads everything from the store and builds the graph.
func Open(store Store, logger *slog.Logger, opts Options) (*Directory, error) {
	d := &Directory{
		store:  store,
		logger: logger,
		opts:   opts,
	}
	if err := d.load(); err != nil {
		return nil, err
	}
	return d, nil
}

// load reinitializes all in-memory state from the store. Callers hold the
// write lock (or are constructing the instance).
func (d *Directory) load() error {
	people, err := d.store.LoadPeople()
	if err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "loading people failed", err)
	}
	rels, err := d.store.LoadRelationships()
	if err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "loading relationships failed", err)
	}

	d.people = make(map[string]kinship.Person, len(people))
	for _, p := range people {
		d.people[p.ID] = p
	}

	d.rels = make(map[string]kinship.Relationship, len(rels))
	d.relOrder = d.relOrder[:0]
	d.byPair = make(map[pairKey]string, len(rels))
	d.graph = kinship.NewGraph()
	for _, r := range rels {
		if _, ok := d.people[r.PersonA]; !ok {
			d.logger.Warn("Skipping relationship with unknown endpoint", "relId", r.ID, "person", r.PersonA)
			continue
		}
		if _, ok := d.people[r.PersonB]; !ok {
			d.logger.Warn("Skipping relationship with unknown endpoint", "relId", r.ID, "person", r.PersonB)
			continue
		}
		d.indexRelationship(r)
	}

	d.explainer = explain.NewExplainer(d.graph, lockedSource{d}, d.logger, d.opts.Explain)

	d.perspective = ""
	if id, err := d.store.GetSetting(perspectiveKey); err == nil && id != "" {
		if _, ok := d.people[id]; ok {
			d.perspective = id
		}
	}

	d.logger.Debug("Directory loaded",
		"people", len(d.people),
		"relationships", len(d.rels))
	return nil
}

func (d *Directory) indexRelationship(r kinship.Relationship) {
	d.rels[r.ID] = r
	d.relOrder = append(d.relOrder, r.ID)
	d.byPair[pairKey{r.PersonA, r.PersonB, r.Type}] = r.ID
	d.graph.AddEdge(r)
}

// AddPerson creates a new person record.
func (d *Directory) AddPerson(name string, gender kinship.Gender, photo, notes string) (kinship.Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return kinship.Person{}, kinerrors.New(kinerrors.InvalidInput, "person name must not be empty", nil)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UTC()
	p := kinship.Person{
		ID:        uuid.NewString(),
		Name:      name,
		Gender:    gender,
		Photo:     photo,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.store.PutPerson(p); err != nil {
		return kinship.Person{}, kinerrors.New(kinerrors.StorageFailure, "persisting person failed", err)
	}
	d.people[p.ID] = p

	d.logger.Info("Person added", "id", p.ID, "name", p.Name)
	return p, nil
}

// PersonUpdate carries optional field changes; nil fields are untouched.
type PersonUpdate struct {
	Name   *string
	Gender *kinship.Gender
	Photo  *string
	Notes  *string
}

// UpdatePerson applies a partial update to an existing person.
func (d *Directory) UpdatePerson(id string, upd PersonUpdate) (kinship.Person, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.people[id]
	if !ok {
		return kinship.Person{}, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+id, nil)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return kinship.Person{}, kinerrors.New(kinerrors.InvalidInput, "person name must not be empty", nil)
		}
		p.Name = name
	}
	if upd.Gender != nil {
		p.Gender = *upd.Gender
	}
	if upd.Photo != nil {
		p.Photo = *upd.Photo
	}
	if upd.Notes != nil {
		p.Notes = *upd.Notes
	}
	p.UpdatedAt = time.Now().UTC()

	if err := d.store.PutPerson(p); err != nil {
		return kinship.Person{}, kinerrors.New(kinerrors.StorageFailure, "persisting person failed", err)
	}
	d.people[id] = p
	return p, nil
}

// DeletePerson removes a person and cascades to every relationship that
// references them, on both the store and the in-memory graph. The
// perspective is cleared if it pointed at the person.
func (d *Directory) DeletePerson(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.people[id]; !ok {
		return kinerrors.New(kinerrors.PersonNotFound, "no person with id "+id, nil)
	}

	var relIDs []string
	for _, e := range d.graph.Neighbors(id) {
		relIDs = append(relIDs, e.RelID)
	}

	if err := d.store.DeletePerson(id, relIDs); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "deleting person failed", err)
	}

	for _, relID := range relIDs {
		d.forgetRelationship(relID)
	}
	d.graph.RemovePerson(id)
	delete(d.people, id)

	if d.perspective == id {
		d.perspective = ""
		if err := d.store.DeleteSetting(perspectiveKey); err != nil {
			d.logger.Warn("Failed to clear persisted perspective", "error", err)
		}
	}

	d.logger.Info("Person deleted", "id", id, "cascadedRelationships", len(relIDs))
	return nil
}

// forgetRelationship drops a relationship from the indexes and the graph.
func (d *Directory) forgetRelationship(relID string) {
	r, ok := d.rels[relID]
	if !ok {
		return
	}
	delete(d.rels, relID)
	delete(d.byPair, pairKey{r.PersonA, r.PersonB, r.Type})
	for i, id := range d.relOrder {
		if id == relID {
			d.relOrder = append(d.relOrder[:i], d.relOrder[i+1:]...)
			break
		}
	}
	d.graph.RemoveEdge(relID)
}

// Relate records a relationship fact between two people. Creation is
// idempotent: re-adding the same ordered pair and type returns the existing
// record and created=false.
func (d *Directory) Relate(aID, bID string, t kinship.RelType) (rel kinship.Relationship, created bool, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.people[aID]; !ok {
		return kinship.Relationship{}, false, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+aID, nil)
	}
	if _, ok := d.people[bID]; !ok {
		return kinship.Relationship{}, false, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+bID, nil)
	}
	if aID == bID {
		return kinship.Relationship{}, false, kinerrors.New(kinerrors.InvalidInput, "a relationship needs two different people", nil)
	}

	if existingID, ok := d.byPair[pairKey{aID, bID, t}]; ok {
		d.logger.Debug("Duplicate relationship ignored", "relId", existingID)
		return d.rels[existingID], false, nil
	}

	now := time.Now().UTC()
	r := kinship.Relationship{
		ID:        uuid.NewString(),
		PersonA:   aID,
		PersonB:   bID,
		Type:      t,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := d.store.PutRelationship(r); err != nil {
		return kinship.Relationship{}, false, kinerrors.New(kinerrors.StorageFailure, "persisting relationship failed", err)
	}
	d.indexRelationship(r)

	d.logger.Info("Relationship added", "id", r.ID, "type", r.Type)
	return r, true, nil
}

// Unrelate deletes a relationship by id.
func (d *Directory) Unrelate(relID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.rels[relID]; !ok {
		return kinerrors.New(kinerrors.RelationshipNotFound, "no relationship with id "+relID, nil)
	}
	if err := d.store.DeleteRelationship(relID); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "deleting relationship failed", err)
	}
	d.forgetRelationship(relID)
	return nil
}

// Person returns a person by id.
func (d *Directory) Person(id string) (kinship.Person, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.people[id]
	return p, ok
}

// People lists everyone, sorted by name (case-insensitive) then id so output
// is stable across reloads.
func (d *Directory) People() []kinship.Person {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]kinship.Person, 0, len(d.people))
	for _, p := range d.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Relationship returns a relationship by id.
func (d *Directory) Relationship(id string) (kinship.Relationship, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.rels[id]
	return r, ok
}

// Relationships lists all recorded facts in insertion order.
func (d *Directory) Relationships() []kinship.Relationship {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]kinship.Relationship, 0, len(d.relOrder))
	for _, id := range d.relOrder {
		out = append(out, d.rels[id])
	}
	return out
}

// Neighbor is one direct relationship of a person, resolved for display.
// Type reads "Person is the subject's Type".
type Neighbor struct {
	Person kinship.Person  `json:"person"`
	Type   kinship.RelType `json:"type"`
	RelID  string          `json:"relId"`
}

// Neighbors lists a person's direct relationships in insertion order.
func (d *Directory) Neighbors(id string) ([]Neighbor, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.people[id]; !ok {
		return nil, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+id, nil)
	}
	var out []Neighbor
	for _, e := range d.graph.Neighbors(id) {
		p, ok := d.people[e.To]
		if !ok {
			continue
		}
		out = append(out, Neighbor{Person: p, Type: e.Type, RelID: e.RelID})
	}
	return out, nil
}

// Perspective returns the current viewer, if set.
func (d *Directory) Perspective() (kinship.Person, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.perspective == "" {
		return kinship.Person{}, false
	}
	p, ok := d.people[d.perspective]
	return p, ok
}

// SetPerspective sets the current viewer to an existing person.
func (d *Directory) SetPerspective(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.people[id]; !ok {
		return kinerrors.New(kinerrors.PersonNotFound, "no person with id "+id, nil)
	}
	if err := d.store.PutSetting(perspectiveKey, id); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "persisting perspective failed", err)
	}
	d.perspective = id
	return nil
}

// ClearPerspective unsets the current viewer.
func (d *Directory) ClearPerspective() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.DeleteSetting(perspectiveKey); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "clearing perspective failed", err)
	}
	d.perspective = ""
	return nil
}

// Explain describes the target from the current perspective. An empty slice
// means no describable relationship was found; that is a normal outcome.
func (d *Directory) Explain(targetID string) ([]explain.Explanation, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.people[targetID]; !ok {
		return nil, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+targetID, nil)
	}
	return d.explainer.Explain(targetID, d.perspective), nil
}

// Summarize produces the reunion-style nametag lines for a person.
func (d *Directory) Summarize(id string) ([]explain.NametagLine, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if _, ok := d.people[id]; !ok {
		return nil, kinerrors.New(kinerrors.PersonNotFound, "no person with id "+id, nil)
	}
	return d.explainer.Summarize(id), nil
}

// Stats summarizes the directory contents.
type Stats struct {
	People        int                `json:"people"`
	Relationships int                `json:"relationships"`
	Perspective   string             `json:"perspective,omitempty"`
	Graph         kinship.GraphStats `json:"graph"`
}

// Stats returns directory-wide counts and graph statistics.
func (d *Directory) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return Stats{
		People:        len(d.people),
		Relationships: len(d.rels),
		Perspective:   d.perspective,
		Graph:         d.graph.Stats(),
	}
}

// Export captures the full data set as a snapshot: a pair of lists.
func (d *Directory) Export() *Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	people := make([]kinship.Person, 0, len(d.people))
	for _, p := range d.people {
		people = append(people, p)
	}
	sort.Slice(people, func(i, j int) bool {
		ni, nj := strings.ToLower(people[i].Name), strings.ToLower(people[j].Name)
		if ni != nj {
			return ni < nj
		}
		return people[i].ID < people[j].ID
	})

	rels := make([]kinship.Relationship, 0, len(d.relOrder))
	for _, id := range d.relOrder {
		rels = append(rels, d.rels[id])
	}

	return &Snapshot{
		Version:       SnapshotVersion,
		ExportedAt:    time.Now().UTC(),
		People:        people,
		Relationships: rels,
	}
}

// Import atomically replaces all data with the snapshot's contents and
// reinitializes the engine from the store's post-import state. Nothing
// changes if validation or the store write fails.
func (d *Directory) Import(snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Replace(snap.People, snap.Relationships); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "importing snapshot failed", err)
	}
	return d.load()
}

// Clear removes all people and relationships.
func (d *Directory) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.store.Clear(); err != nil {
		return kinerrors.New(kinerrors.StorageFailure, "clearing directory failed", err)
	}
	return d.load()
}
