package services

import (
	"context"
	"io"
	"sync"

	"github.com/forevertrendin/user_service/internal/domain"
	"github.com/forevertrendin/user_service/internal/errs"
)

func strPtr(s string) *string { return &s }

// fakeUserRepo is an in-memory CredentialStore with the same CAS semantics as
// the Postgres implementation: the guard and the write happen atomically.
type fakeUserRepo struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]*domain.User
	casErr  error // injected CompareAndSetAssetKey failure
	casDeny bool  // force the guard to fail once

	// beforeUpdate runs at the start of UpdateUser, outside the lock, to model
	// work interleaving with a profile update.
	beforeUpdate func()
	// findCtx records the context of the last FindUserByID call.
	findCtx context.Context
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*domain.User)}
}

func (f *fakeUserRepo) addUser(email string, assetKey *string) *domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := &domain.User{ID: f.nextID, Email: email, ProfileAssetKey: assetKey}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, errs.ErrEmailTaken
		}
	}
	f.nextID++
	user.ID = f.nextID
	cp := *user
	f.users[user.ID] = &cp
	return user, nil
}

func (f *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCtx = ctx
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id uint, updates map[string]interface{}) error {
	if f.beforeUpdate != nil {
		f.beforeUpdate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errs.ErrUserNotFound
	}
	// Column-scoped like the gorm impl: only the named columns change.
	for col, v := range updates {
		switch col {
		case "display_name":
			u.DisplayName = v.(string)
		case "phone":
			u.Phone = v.(*string)
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	delete(f.users, id)
	return u, nil
}

func (f *fakeUserRepo) CompareAndSetAssetKey(_ context.Context, id uint, oldKey, newKey *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.casErr != nil {
		return false, f.casErr
	}
	if f.casDeny {
		f.casDeny = false
		return false, nil
	}
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	if !keysEqual(u.ProfileAssetKey, oldKey) {
		return false, nil
	}
	if newKey != nil {
		cp := *newKey
		u.ProfileAssetKey = &cp
	} else {
		u.ProfileAssetKey = nil
	}
	return true, nil
}

func (f *fakeUserRepo) assetKey(id uint) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id].ProfileAssetKey
}

func keysEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// fakeBlobStore is an in-memory BlobStore with failure injection. Delete is
// idempotent like the real backends: a missing key is success.
type fakeBlobStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	putErr    error
	deleteErr map[string]error
	deletes   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects:   make(map[string][]byte),
		deleteErr: make(map[string]error),
	}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, body io.Reader, _ string) (string, error) {
	// Read outside the lock so concurrent Puts can stream in parallel.
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = b
	return f.URL(key), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, key)
	if err := f.deleteErr[key]; err != nil {
		return err
	}
	delete(f.objects, key)
	return nil
}

func (f *fakeBlobStore) URL(key string) string {
	return "https://blobs.test/" + key
}

func (f *fakeBlobStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeBlobStore) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// fakeProducer records published events by key.
type fakeProducer struct {
	mu     sync.Mutex
	events map[string][][]byte
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{events: make(map[string][][]byte)}
}

func (f *fakeProducer) PublishMessage(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[string(key)] = append(f.events[string(key)], value)
	return nil
}

func (f *fakeProducer) published(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events[key])
}
