package catalog

import (
	"sync"

	"greenlight/pkg/sentinel"
)

// collection is a typed entity collection: a map keyed by id for O(1) lookup
// plus an insertion-order index so listings stay stable.
type collection[T any] struct {
	items map[string]T
	order []string
	clone func(T) T
}

func newCollection[T any](clone func(T) T) collection[T] {
	return collection[T]{items: make(map[string]T), clone: clone}
}

func (c *collection[T]) insert(id string, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = c.clone(v)
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(v), true
}

func (c *collection[T]) set(id string, v T) {
	c.items[id] = c.clone(v)
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}

func (c *collection[T]) replace(items []T, idOf func(T) string) {
	c.items = make(map[string]T, len(items))
	c.order = c.order[:0]
	for _, v := range items {
		c.insert(idOf(v), v)
	}
}

func cloneProject(p Project) Project { return p }

func cloneMerchandise(m MerchandiseItem) MerchandiseItem { return m }

func clonePerk(p Perk) Perk { return p }

func cloneUser(u User) User { return u }

func cloneMedia(m MediaAsset) MediaAsset {
	cp := m
	cp.Tags = append([]string(nil), m.Tags...)
	if m.Dimensions != nil {
		d := *m.Dimensions
		cp.Dimensions = &d
	}
	return cp
}

// Store is the sole owner of all entity collections. Every read returns a
// defensive copy; callers can never reach the live maps. Mutations are
// serialized by the store mutex and rejected while a restore holds the store.
type Store struct {
	mu        sync.RWMutex
	restoring bool

	projects    collection[Project]
	merchandise collection[MerchandiseItem]
	perks       collection[Perk]
	media       collection[MediaAsset]
	users       collection[User]
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		projects:    newCollection(cloneProject),
		merchandise: newCollection(cloneMerchandise),
		perks:       newCollection(clonePerk),
		media:       newCollection(cloneMedia),
		users:       newCollection(cloneUser),
	}
}

// guardMutation reports whether mutations may proceed. Callers must hold mu.
func (s *Store) guardMutation() error {
	if s.restoring {
		return sentinel.ErrRestoreInFlight
	}
	return nil
}

// BeginRestore takes exclusive ownership of the store for a restore. A second
// call before EndRestore fails, which doubles as the single-flight check.
func (s *Store) BeginRestore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restoring {
		return sentinel.ErrRestoreInFlight
	}
	s.restoring = true
	return nil
}

// EndRestore releases the restore gate.
func (s *Store) EndRestore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoring = false
}

// ExportCollections captures a value copy of every collection, atomically with
// respect to any single mutation.
func (s *Store) ExportCollections() Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Collections{
		Projects:    s.projects.list(),
		Merchandise: s.merchandise.list(),
		Perks:       s.perks.list(),
		Media:       s.media.list(),
		Users:       s.users.list(),
	}
}

// ReplaceCollections swaps the live collections for the provided copy. It is
// called by the restore path while the restore gate is held, so it ignores
// the gate itself.
func (s *Store) ReplaceCollections(c Collections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects.replace(c.Projects, func(p Project) string { return p.ID })
	s.merchandise.replace(c.Merchandise, func(m MerchandiseItem) string { return m.ID })
	s.perks.replace(c.Perks, func(p Perk) string { return p.ID })
	s.media.replace(c.Media, func(m MediaAsset) string { return m.ID })
	s.users.replace(c.Users, func(u User) string { return u.ID })
}

// Projects --------------------------------------------------------------------

func (s *Store) InsertProject(p Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.projects.insert(p.ID, p)
	return nil
}

func (s *Store) GetProject(id string) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.get(id)
}

func (s *Store) UpdateProject(id string, mutate func(*Project)) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return Project{}, err
	}
	current, ok := s.projects.get(id)
	if !ok {
		return Project{}, sentinel.ErrNotFound
	}
	mutate(&current)
	current.ID = id
	s.projects.set(id, current)
	return cloneProject(current), nil
}

func (s *Store) DeleteProject(id string) (Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return Project{}, err
	}
	current, ok := s.projects.get(id)
	if !ok {
		return Project{}, sentinel.ErrNotFound
	}
	s.projects.remove(id)
	return current, nil
}

func (s *Store) ListProjects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.list()
}

// Merchandise -----------------------------------------------------------------

func (s *Store) InsertMerchandise(m MerchandiseItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.merchandise.insert(m.ID, m)
	return nil
}

func (s *Store) GetMerchandise(id string) (MerchandiseItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merchandise.get(id)
}

func (s *Store) UpdateMerchandise(id string, mutate func(*MerchandiseItem)) (MerchandiseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return MerchandiseItem{}, err
	}
	current, ok := s.merchandise.get(id)
	if !ok {
		return MerchandiseItem{}, sentinel.ErrNotFound
	}
	mutate(&current)
	current.ID = id
	s.merchandise.set(id, current)
	return cloneMerchandise(current), nil
}

func (s *Store) DeleteMerchandise(id string) (MerchandiseItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return MerchandiseItem{}, err
	}
	current, ok := s.merchandise.get(id)
	if !ok {
		return MerchandiseItem{}, sentinel.ErrNotFound
	}
	s.merchandise.remove(id)
	return current, nil
}

func (s *Store) ListMerchandise() []MerchandiseItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merchandise.list()
}

// Perks -----------------------------------------------------------------------

func (s *Store) InsertPerk(p Perk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.perks.insert(p.ID, p)
	return nil
}

func (s *Store) GetPerk(id string) (Perk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perks.get(id)
}

func (s *Store) UpdatePerk(id string, mutate func(*Perk)) (Perk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return Perk{}, err
	}
	current, ok := s.perks.get(id)
	if !ok {
		return Perk{}, sentinel.ErrNotFound
	}
	mutate(&current)
	current.ID = id
	s.perks.set(id, current)
	return clonePerk(current), nil
}

func (s *Store) DeletePerk(id string) (Perk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return Perk{}, err
	}
	current, ok := s.perks.get(id)
	if !ok {
		return Perk{}, sentinel.ErrNotFound
	}
	s.perks.remove(id)
	return current, nil
}

func (s *Store) ListPerks() []Perk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perks.list()
}

// Media assets ----------------------------------------------------------------

func (s *Store) InsertMedia(m MediaAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.media.insert(m.ID, m)
	return nil
}

func (s *Store) GetMedia(id string) (MediaAsset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.media.get(id)
}

func (s *Store) UpdateMedia(id string, mutate func(*MediaAsset)) (MediaAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return MediaAsset{}, err
	}
	current, ok := s.media.get(id)
	if !ok {
		return MediaAsset{}, sentinel.ErrNotFound
	}
	mutate(&current)
	current.ID = id
	s.media.set(id, current)
	return cloneMedia(current), nil
}

func (s *Store) DeleteMedia(id string) (MediaAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return MediaAsset{}, err
	}
	current, ok := s.media.get(id)
	if !ok {
		return MediaAsset{}, sentinel.ErrNotFound
	}
	s.media.remove(id)
	return current, nil
}

func (s *Store) ListMedia() []MediaAsset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.media.list()
}

// Users -----------------------------------------------------------------------

func (s *Store) InsertUser(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return err
	}
	s.users.insert(u.ID, u)
	return nil
}

func (s *Store) GetUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

func (s *Store) UpdateUser(id string, mutate func(*User)) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardMutation(); err != nil {
		return User{}, err
	}
	current, ok := s.users.get(id)
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	mutate(&current)
	current.ID = id
	s.users.set(id, current)
	return cloneUser(current), nil
}

func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.list()
}
