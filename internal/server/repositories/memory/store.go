// Package memory implements the user, diet and ownership repositories on top
// of an in-process store. It backs the "memory" DSN and end-to-end tests and
// mirrors the constraints of the PostgreSQL schema (unique ids, foreign keys).
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

var (
	errDuplicateKey = errors.New("duplicate key value violates unique constraint")
	errForeignKey   = errors.New("violates foreign key constraint")
)

type record[T any] struct {
	seq int64
	val T
}

// Store holds every table. The zero value is not usable; call NewStore.
//
// Repository calls outside a transaction wait while one is running, so they
// never observe its uncommitted rows and their writes survive its rollback.
type Store struct {
	txMu sync.RWMutex

	mu        sync.RWMutex
	seq       int64
	now       func() time.Time
	users     map[string]record[models.User]
	diets     map[string]record[models.Diet]
	userDiets map[string]record[models.UserDiet]
}

func NewStore() *Store {
	return &Store{
		now:       time.Now,
		users:     make(map[string]record[models.User]),
		diets:     make(map[string]record[models.Diet]),
		userDiets: make(map[string]record[models.UserDiet]),
	}
}

type txKey struct{}

// Tx runs fn as the only writer of the store. Repositories must be called
// with the ctx passed to fn. If fn fails every table is restored to the
// state it had before fn started. A Tx nested in fn joins the outer one.
func (s *Store) Tx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := s.snapshot()
	s.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// enter blocks while a transaction other than the one in ctx is running.
// The returned func releases the hold.
func (s *Store) enter(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.txMu.RLock()
	return s.txMu.RUnlock
}

type snapshot struct {
	users     map[string]record[models.User]
	diets     map[string]record[models.Diet]
	userDiets map[string]record[models.UserDiet]
}

func (s *Store) snapshot() snapshot {
	return snapshot{users: cloneMap(s.users), diets: cloneMap(s.diets), userDiets: cloneMap(s.userDiets)}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users, s.diets, s.userDiets = snap.users, snap.diets, snap.userDiets
}

func cloneMap[T any](m map[string]record[T]) map[string]record[T] {
	out := make(map[string]record[T], len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[T any](m map[string]record[T], keep func(T) bool) []T {
	recs := make([]record[T], 0, len(m))
	for _, r := range m {
		if keep(r.val) {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.val)
	}
	return out
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func dbError(err error) error {
	return fmt.Errorf("db error: %w", err)
}

// Users returns the users repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Diets returns the diets repository view of the store.
func (s *Store) Diets() *DietRepository { return &DietRepository{s: s} }

// UserDiets returns the ownership repository view of the store.
func (s *Store) UserDiets() *UserDietRepository { return &UserDietRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; ok {
		return nil, dbError(errDuplicateKey)
	}
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = record[models.User]{seq: r.s.nextSeq(), val: *user}
	return user, nil
}

func (r *UserRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.User, error) {
	defer r.s.enter(ctx)()
	return r.listBySession(sessionID), nil
}

func (r *UserRepository) GetBySession(ctx context.Context, sessionID string) (*models.User, error) {
	defer r.s.enter(ctx)()
	list := r.listBySession(sessionID)
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return list[0], nil
}

func (r *UserRepository) listBySession(sessionID string) []*models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	found := sortedValues(r.s.users, func(u models.User) bool {
		return u.SessionID != nil && *u.SessionID == sessionID
	})
	out := make([]*models.User, 0, len(found))
	for i := range found {
		out = append(out, &found[i])
	}
	return out
}

type DietRepository struct{ s *Store }

func (r *DietRepository) Create(ctx context.Context, diet *models.Diet) (*models.Diet, error) {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diets[diet.ID]; ok {
		return nil, dbError(errDuplicateKey)
	}
	diet.CreatedAt = r.s.now()
	r.s.diets[diet.ID] = record[models.Diet]{seq: r.s.nextSeq(), val: *diet}
	return diet, nil
}

func (r *DietRepository) Get(ctx context.Context, id string) (*models.Diet, error) {
	defer r.s.enter(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.diets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	d := rec.val
	return &d, nil
}

func (r *DietRepository) ListByOwner(ctx context.Context, userID string, onDiet *bool) ([]*models.Diet, error) {
	defer r.s.enter(ctx)()
	return r.listByOwner(userID, onDiet), nil
}

func (r *DietRepository) CountByOwner(ctx context.Context, userID string) (int64, error) {
	defer r.s.enter(ctx)()
	return int64(len(r.listByOwner(userID, nil))), nil
}

func (r *DietRepository) listByOwner(userID string, onDiet *bool) []*models.Diet {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	owned := make(map[string]struct{})
	for _, link := range r.s.userDiets {
		if link.val.UserID == userID {
			owned[link.val.DietID] = struct{}{}
		}
	}

	found := sortedValues(r.s.diets, func(d models.Diet) bool {
		if _, ok := owned[d.ID]; !ok {
			return false
		}
		return onDiet == nil || d.IsOnDiet == *onDiet
	})
	out := make([]*models.Diet, 0, len(found))
	for i := range found {
		out = append(out, &found[i])
	}
	return out
}

func (r *DietRepository) Update(ctx context.Context, id string, patch models.DietPatch) (*models.Diet, error) {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.diets[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	patch.Apply(&rec.val)
	r.s.diets[id] = rec
	d := rec.val
	return &d, nil
}

func (r *DietRepository) Delete(ctx context.Context, id string) error {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.diets[id]; !ok {
		return common.ErrorNotFound
	}
	for _, link := range r.s.userDiets {
		if link.val.DietID == id {
			return dbError(errForeignKey)
		}
	}
	delete(r.s.diets, id)
	return nil
}

type UserDietRepository struct{ s *Store }

func (r *UserDietRepository) Create(ctx context.Context, link *models.UserDiet) (*models.UserDiet, error) {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.userDiets[link.ID]; ok {
		return nil, dbError(errDuplicateKey)
	}
	if _, ok := r.s.users[link.UserID]; !ok {
		return nil, dbError(errForeignKey)
	}
	if _, ok := r.s.diets[link.DietID]; !ok {
		return nil, dbError(errForeignKey)
	}
	link.CreatedAt = r.s.now()
	r.s.userDiets[link.ID] = record[models.UserDiet]{seq: r.s.nextSeq(), val: *link}
	return link, nil
}

func (r *UserDietRepository) Find(ctx context.Context, userID, dietID string) (*models.UserDiet, error) {
	defer r.s.enter(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	found := sortedValues(r.s.userDiets, func(l models.UserDiet) bool {
		return l.UserID == userID && l.DietID == dietID
	})
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return &found[0], nil
}

func (r *UserDietRepository) DeleteByDiet(ctx context.Context, dietID string) error {
	defer r.s.enter(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, link := range r.s.userDiets {
		if link.val.DietID == dietID {
			delete(r.s.userDiets, id)
		}
	}
	return nil
}
