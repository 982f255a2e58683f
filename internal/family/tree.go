package family

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps validation failures of entities and patches.
var ErrInvalid = errors.New("invalid")

// Tree is the family tree of worlds, houses, Sims, their relationships and
// diaries, kept in a DocumentStore.
type Tree struct {
	store    DocumentStore
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) TreeOption {
	return func(t *Tree) {
		t.now = now
	}
}

// WithTreeLogger sets the logger. The default discards everything.
func WithTreeLogger(logger *slog.Logger) TreeOption {
	return func(t *Tree) {
		t.logger = logger
	}
}

// NewTree creates a tree on store.
func NewTree(store DocumentStore, opts ...TreeOption) *Tree {
	t := &Tree{
		store:    store,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t
}

func (t *Tree) check(v any) error {
	if err := t.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (t *Tree) stamp() time.Time {
	return t.now().UTC().Truncate(time.Millisecond)
}

// create validates v, stores it and returns the new ID.
func (t *Tree) create(ctx context.Context, coll Collection, v any) (string, error) {
	if err := t.check(v); err != nil {
		return "", err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", coll, err)
	}
	id, err := t.store.Create(ctx, coll, data)
	if err != nil {
		return "", err
	}
	t.logger.Debug("document created", "collection", coll, "id", id)
	return id, nil
}

func (t *Tree) patch(ctx context.Context, coll Collection, id string, p any) error {
	if err := t.check(p); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode %s patch: %w", coll, err)
	}
	return t.store.Update(ctx, coll, id, data)
}

type document[T any] interface {
	*T
	setID(id string)
}

func get[T any, P document[T]](ctx context.Context, store DocumentStore, coll Collection, id string) (*T, error) {
	data, err := store.Get(ctx, coll, id)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s/%s: %w", coll, id, err)
	}
	P(&v).setID(id)
	return &v, nil
}

func decodeAll[T any, P document[T]](coll Collection, docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc.Data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s/%s: %w", coll, doc.ID, err)
		}
		P(&v).setID(doc.ID)
		out = append(out, v)
	}
	return out, nil
}

func list[T any, P document[T]](ctx context.Context, store DocumentStore, coll Collection) ([]T, error) {
	docs, err := store.List(ctx, coll)
	if err != nil {
		return nil, err
	}
	return decodeAll[T, P](coll, docs)
}

func find[T any, P document[T]](ctx context.Context, store DocumentStore, coll Collection, field, value string) ([]T, error) {
	docs, err := store.Find(ctx, coll, field, value)
	if err != nil {
		return nil, err
	}
	return decodeAll[T, P](coll, docs)
}

// --- Worlds ---

// AddWorld stores w after the existing worlds.
func (t *Tree) AddWorld(ctx context.Context, w World) (*World, error) {
	existing, err := list[World](ctx, t.store, Worlds)
	if err != nil {
		return nil, err
	}
	w.ID = ""
	w.Order = len(existing)
	w.CreatedAt = t.stamp()

	id, err := t.create(ctx, Worlds, w)
	if err != nil {
		return nil, err
	}
	w.ID = id
	return &w, nil
}

// World returns one world.
func (t *Tree) World(ctx context.Context, id string) (*World, error) {
	return get[World](ctx, t.store, Worlds, id)
}

// Worlds returns all worlds by Order.
func (t *Tree) Worlds(ctx context.Context) ([]World, error) {
	worlds, err := list[World](ctx, t.store, Worlds)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(worlds, func(i, j int) bool {
		return worlds[i].Order < worlds[j].Order
	})
	return worlds, nil
}

// UpdateWorld applies p to a world.
func (t *Tree) UpdateWorld(ctx context.Context, id string, p WorldPatch) (*World, error) {
	if err := t.patch(ctx, Worlds, id, p); err != nil {
		return nil, err
	}
	return t.World(ctx, id)
}

// DeleteWorld removes a world. Its houses are kept.
func (t *Tree) DeleteWorld(ctx context.Context, id string) error {
	return t.store.Delete(ctx, Worlds, id)
}

// --- Houses ---

// AddHouse stores h in an existing world.
func (t *Tree) AddHouse(ctx context.Context, h House) (*House, error) {
	if err := t.check(h); err != nil {
		return nil, err
	}
	if _, err := t.World(ctx, h.WorldID); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	h.ID = ""
	h.CreatedAt = t.stamp()

	id, err := t.create(ctx, Houses, h)
	if err != nil {
		return nil, err
	}
	h.ID = id
	return &h, nil
}

// House returns one house.
func (t *Tree) House(ctx context.Context, id string) (*House, error) {
	return get[House](ctx, t.store, Houses, id)
}

// Houses returns the houses of a world, or every house when worldID is
// empty.
func (t *Tree) Houses(ctx context.Context, worldID string) ([]House, error) {
	if worldID == "" {
		return list[House](ctx, t.store, Houses)
	}
	return find[House](ctx, t.store, Houses, "worldId", worldID)
}

// UpdateHouse applies p to a house. Moving it requires an existing world.
func (t *Tree) UpdateHouse(ctx context.Context, id string, p HousePatch) (*House, error) {
	if p.WorldID != nil {
		if _, err := t.World(ctx, *p.WorldID); err != nil {
			return nil, fmt.Errorf("world: %w", err)
		}
	}
	if err := t.patch(ctx, Houses, id, p); err != nil {
		return nil, err
	}
	return t.House(ctx, id)
}

// DeleteHouse removes a house. Its Sims are kept.
func (t *Tree) DeleteHouse(ctx context.Context, id string) error {
	return t.store.Delete(ctx, Houses, id)
}

// --- Sims ---

// AddSim stores s in an existing house.
func (t *Tree) AddSim(ctx context.Context, s Sim) (*Sim, error) {
	if err := t.check(s); err != nil {
		return nil, err
	}
	if _, err := t.House(ctx, s.HouseID); err != nil {
		return nil, fmt.Errorf("house: %w", err)
	}
	if s.Traits == nil {
		s.Traits = []string{}
	}
	if s.Skills == nil {
		s.Skills = map[string]int{}
	}
	s.ID = ""
	s.CreatedAt = t.stamp()

	id, err := t.create(ctx, Sims, s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return &s, nil
}

// Sim returns one Sim.
func (t *Tree) Sim(ctx context.Context, id string) (*Sim, error) {
	return get[Sim](ctx, t.store, Sims, id)
}

// Sims returns the Sims of a house, or every Sim when houseID is empty.
func (t *Tree) Sims(ctx context.Context, houseID string) ([]Sim, error) {
	if houseID == "" {
		return list[Sim](ctx, t.store, Sims)
	}
	return find[Sim](ctx, t.store, Sims, "houseId", houseID)
}

// SimsInWorld returns the Sims living in any house of a world.
func (t *Tree) SimsInWorld(ctx context.Context, worldID string) ([]Sim, error) {
	houses, err := t.Houses(ctx, worldID)
	if err != nil {
		return nil, err
	}
	inWorld := make(map[string]bool, len(houses))
	for _, h := range houses {
		inWorld[h.ID] = true
	}

	all, err := t.Sims(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]Sim, 0, len(all))
	for _, s := range all {
		if inWorld[s.HouseID] {
			out = append(out, s)
		}
	}
	return out, nil
}

// UpdateSim applies p to a Sim. Moving it requires an existing house.
func (t *Tree) UpdateSim(ctx context.Context, id string, p SimPatch) (*Sim, error) {
	if p.HouseID != nil {
		if _, err := t.House(ctx, *p.HouseID); err != nil {
			return nil, fmt.Errorf("house: %w", err)
		}
	}
	if err := t.patch(ctx, Sims, id, p); err != nil {
		return nil, err
	}
	return t.Sim(ctx, id)
}

// DeleteSim removes a Sim together with its relationships and diary.
func (t *Tree) DeleteSim(ctx context.Context, id string) error {
	if _, err := t.Sim(ctx, id); err != nil {
		return err
	}

	rels, err := t.RelationshipsFor(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range rels {
		if err := t.store.Delete(ctx, Relationships, r.ID); err != nil {
			return err
		}
	}

	entries, err := find[DiaryEntry](ctx, t.store, Diary, "simId", id)
	if err != nil {
		return err
	}
	for _, d := range entries {
		if err := t.store.Delete(ctx, Diary, d.ID); err != nil {
			return err
		}
	}

	if err := t.store.Delete(ctx, Sims, id); err != nil {
		return err
	}
	t.logger.Info("sim deleted", "id", id, "relationships", len(rels), "diary_entries", len(entries))
	return nil
}

// --- Relationships ---

// AddRelationship links two existing Sims.
func (t *Tree) AddRelationship(ctx context.Context, r Relationship) (*Relationship, error) {
	if err := t.check(r); err != nil {
		return nil, err
	}
	for _, simID := range []string{r.Sim1ID, r.Sim2ID} {
		if _, err := t.Sim(ctx, simID); err != nil {
			return nil, fmt.Errorf("sim: %w", err)
		}
	}
	r.ID = ""
	r.CreatedAt = t.stamp()

	id, err := t.create(ctx, Relationships, r)
	if err != nil {
		return nil, err
	}
	r.ID = id
	return &r, nil
}

// RelationshipsFor returns the relationships simID is part of.
func (t *Tree) RelationshipsFor(ctx context.Context, simID string) ([]Relationship, error) {
	all, err := list[Relationship](ctx, t.store, Relationships)
	if err != nil {
		return nil, err
	}
	out := make([]Relationship, 0)
	for _, r := range all {
		if r.Involves(simID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// DeleteRelationship removes one relationship.
func (t *Tree) DeleteRelationship(ctx context.Context, id string) error {
	return t.store.Delete(ctx, Relationships, id)
}

// --- Diary ---

// AddDiaryEntry stores a diary entry for an existing Sim.
func (t *Tree) AddDiaryEntry(ctx context.Context, d DiaryEntry) (*DiaryEntry, error) {
	if err := t.check(d); err != nil {
		return nil, err
	}
	if _, err := t.Sim(ctx, d.SimID); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}
	d.ID = ""
	d.CreatedAt = t.stamp()

	id, err := t.create(ctx, Diary, d)
	if err != nil {
		return nil, err
	}
	d.ID = id
	return &d, nil
}

// DiaryFor returns a Sim's diary, newest date first.
func (t *Tree) DiaryFor(ctx context.Context, simID string) ([]DiaryEntry, error) {
	entries, err := find[DiaryEntry](ctx, t.store, Diary, "simId", simID)
	if err != nil {
		return nil, err
	}
	// YYYY-MM-DD sorts chronologically as text.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
	return entries, nil
}

// DeleteDiaryEntry removes one diary entry.
func (t *Tree) DeleteDiaryEntry(ctx context.Context, id string) error {
	return t.store.Delete(ctx, Diary, id)
}

// --- Overview ---

// SimOverview is everything known about one Sim.
type SimOverview struct {
	Sim           Sim            `json:"sim"`
	House         *House         `json:"house,omitempty"`
	World         *World         `json:"world,omitempty"`
	Relationships []Relationship `json:"relationships"`
	Diary         []DiaryEntry   `json:"diary"`
}

// Overview collects a Sim with its house, world, relationships and diary. A
// house or world that has been deleted is left out.
func (t *Tree) Overview(ctx context.Context, simID string) (*SimOverview, error) {
	sim, err := t.Sim(ctx, simID)
	if err != nil {
		return nil, err
	}
	ov := &SimOverview{Sim: *sim}

	if house, err := t.House(ctx, sim.HouseID); err == nil {
		ov.House = house
		if world, err := t.World(ctx, house.WorldID); err == nil {
			ov.World = world
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if ov.Relationships, err = t.RelationshipsFor(ctx, simID); err != nil {
		return nil, err
	}
	if ov.Diary, err = t.DiaryFor(ctx, simID); err != nil {
		return nil, err
	}
	return ov, nil
}
