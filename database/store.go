package database

import (
	"encoding/json"
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kajalsharma987/my-leave-app/models"
)

const (
	keyCurrentUser = "currentUser"
	keyUsers       = "users"
	keyLeaves      = "leaves"
)

// kv is the raw medium under the snapshot store: one string value per
// key, rewritten in full on every save.
type kv interface {
	get(key string) (string, bool)
	put(key, value string)
}

// Store loads and saves the three collections. Reads fall back to
// documented defaults when a key is missing or unparsable; writes log
// failures and move on. Neither direction ever returns an error to the
// caller.
type Store struct {
	kv kv
}

// NewMemoryStore returns a store backed by a process-local map. Used by
// tests and by STORAGE=memory; snapshots are lost on exit.
func NewMemoryStore() *Store {
	return &Store{kv: &memKV{values: map[string]string{}}}
}

func (s *Store) LoadUsers() []models.User {
	var users []models.User
	if !s.load(keyUsers, &users) || users == nil {
		return []models.User{}
	}
	return users
}

func (s *Store) LoadLeaves() []models.LeaveRequest {
	var leaves []models.LeaveRequest
	if !s.load(keyLeaves, &leaves) || leaves == nil {
		return []models.LeaveRequest{}
	}
	return leaves
}

// LoadSession returns the persisted session, or nil when no user is
// logged in (the key holds JSON null after a logout).
func (s *Store) LoadSession() *models.User {
	var user *models.User
	if !s.load(keyCurrentUser, &user) {
		return nil
	}
	return user
}

func (s *Store) SaveUsers(users []models.User) {
	s.save(keyUsers, users)
}

func (s *Store) SaveLeaves(leaves []models.LeaveRequest) {
	s.save(keyLeaves, leaves)
}

func (s *Store) SaveSession(user *models.User) {
	s.save(keyCurrentUser, user)
}

func (s *Store) load(key string, dst any) bool {
	raw, ok := s.kv.get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("[storage] parse %s: %v (falling back to default)", key, err)
		return false
	}
	return true
}

func (s *Store) save(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[storage] encode %s: %v", key, err)
		return
	}
	s.kv.put(key, string(raw))
}

type gormKV struct {
	db *gorm.DB
}

func (g *gormKV) get(key string) (string, bool) {
	var row Snapshot
	if err := g.db.First(&row, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[storage] read %s: %v", key, err)
		}
		return "", false
	}
	return row.Value, true
}

func (g *gormKV) put(key, value string) {
	row := Snapshot{Key: key, Value: value}
	err := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		log.Printf("[storage] write %s: %v", key, err)
	}
}

type memKV struct {
	values map[string]string
}

func (m *memKV) get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memKV) put(key, value string) {
	m.values[key] = value
}
