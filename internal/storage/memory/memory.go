// Package memory provides a map-backed storage.Store. It is used by the test
// suites and by local runs without a database (STORAGE_DRIVER=memory). It
// enforces the same uniqueness and foreign-key constraints as the SQL schema
// so callers observe identical error classes across drivers.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

type subKey struct {
	subscriberID string
	authorID     string
}

// Store is an in-memory storage.Store. Safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	memberTypes map[string]*storage.MemberType
	users       map[string]*storage.User
	profiles    map[string]*storage.Profile
	posts       map[string]*storage.Post
	subs        map[subKey]struct{}
}

// New returns a Store pre-seeded with the BASIC and BUSINESS member types,
// matching the rows the migrations seed for the postgres driver.
func New() *Store {
	return &Store{
		memberTypes: map[string]*storage.MemberType{
			storage.MemberTypeBasic:    {ID: storage.MemberTypeBasic, Discount: 2.5, PostsLimitPerMonth: 5},
			storage.MemberTypeBusiness: {ID: storage.MemberTypeBusiness, Discount: 7.5, PostsLimitPerMonth: 100},
		},
		users:    make(map[string]*storage.User),
		profiles: make(map[string]*storage.Profile),
		posts:    make(map[string]*storage.Post),
		subs:     make(map[subKey]struct{}),
	}
}

func (s *Store) MemberTypes(ctx context.Context) ([]*storage.MemberType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.MemberType, 0, len(s.memberTypes))
	for _, mt := range s.memberTypes {
		copied := *mt
		out = append(out, &copied)
	}
	return out, nil
}

func (s *Store) MemberType(ctx context.Context, id string) (*storage.MemberType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mt, ok := s.memberTypes[id]
	if !ok {
		return nil, nil
	}
	copied := *mt
	return &copied, nil
}

func (s *Store) Users(ctx context.Context) ([]*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.User, 0, len(s.users))
	for _, u := range s.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (s *Store) User(ctx context.Context, id string) (*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (s *Store) CreateUser(ctx context.Context, params storage.CreateUserParams) (*storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &storage.User{
		ID:      uuid.New().String(),
		Name:    params.Name,
		Balance: params.Balance,
	}
	s.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, params storage.ChangeUserParams) (*storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Balance != nil {
		u.Balance = *params.Balance
	}
	copied := *u
	return &copied, nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.users, id)

	// Cascade, mirroring the ON DELETE CASCADE constraints of the SQL schema.
	for pid, p := range s.profiles {
		if p.UserID == id {
			delete(s.profiles, pid)
		}
	}
	for pid, p := range s.posts {
		if p.AuthorID == id {
			delete(s.posts, pid)
		}
	}
	for k := range s.subs {
		if k.subscriberID == id || k.authorID == id {
			delete(s.subs, k)
		}
	}
	return nil
}

func (s *Store) Profiles(ctx context.Context) ([]*storage.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *Store) Profile(ctx context.Context, id string) (*storage.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *Store) ProfileByUserID(ctx context.Context, userID string) (*storage.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *Store) CreateProfile(ctx context.Context, params storage.CreateProfileParams) (*storage.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[params.UserID]; !ok {
		return nil, storage.ErrForeignKey
	}
	if _, ok := s.memberTypes[params.MemberTypeID]; !ok {
		return nil, storage.ErrForeignKey
	}
	for _, p := range s.profiles {
		if p.UserID == params.UserID {
			return nil, storage.ErrDuplicate
		}
	}

	p := &storage.Profile{
		ID:           uuid.New().String(),
		IsMale:       params.IsMale,
		YearOfBirth:  params.YearOfBirth,
		UserID:       params.UserID,
		MemberTypeID: params.MemberTypeID,
	}
	s.profiles[p.ID] = p
	copied := *p
	return &copied, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id string, params storage.ChangeProfileParams) (*storage.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if params.MemberTypeID != nil {
		if _, ok := s.memberTypes[*params.MemberTypeID]; !ok {
			return nil, storage.ErrForeignKey
		}
		p.MemberTypeID = *params.MemberTypeID
	}
	if params.UserID != nil {
		if _, ok := s.users[*params.UserID]; !ok {
			return nil, storage.ErrForeignKey
		}
		for pid, other := range s.profiles {
			if pid != id && other.UserID == *params.UserID {
				return nil, storage.ErrDuplicate
			}
		}
		p.UserID = *params.UserID
	}
	if params.IsMale != nil {
		p.IsMale = *params.IsMale
	}
	if params.YearOfBirth != nil {
		p.YearOfBirth = *params.YearOfBirth
	}
	copied := *p
	return &copied, nil
}

func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *Store) Posts(ctx context.Context) ([]*storage.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.Post, 0, len(s.posts))
	for _, p := range s.posts {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (s *Store) Post(ctx context.Context, id string) (*storage.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (s *Store) PostsByAuthor(ctx context.Context, authorID string) ([]*storage.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.Post, 0)
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *Store) CreatePost(ctx context.Context, params storage.CreatePostParams) (*storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[params.AuthorID]; !ok {
		return nil, storage.ErrForeignKey
	}

	p := &storage.Post{
		ID:       uuid.New().String(),
		Title:    params.Title,
		Content:  params.Content,
		AuthorID: params.AuthorID,
	}
	s.posts[p.ID] = p
	copied := *p
	return &copied, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, params storage.ChangePostParams) (*storage.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if params.AuthorID != nil {
		if _, ok := s.users[*params.AuthorID]; !ok {
			return nil, storage.ErrForeignKey
		}
		p.AuthorID = *params.AuthorID
	}
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Content != nil {
		p.Content = *params.Content
	}
	copied := *p
	return &copied, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) SubscribedToAuthors(ctx context.Context, subscriberID string) ([]*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.User, 0)
	for k := range s.subs {
		if k.subscriberID != subscriberID {
			continue
		}
		if u, ok := s.users[k.authorID]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *Store) Subscribers(ctx context.Context, authorID string) ([]*storage.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*storage.User, 0)
	for k := range s.subs {
		if k.authorID != authorID {
			continue
		}
		if u, ok := s.users[k.subscriberID]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *Store) Subscribe(ctx context.Context, subscriberID, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[subscriberID]; !ok {
		return storage.ErrForeignKey
	}
	if _, ok := s.users[authorID]; !ok {
		return storage.ErrForeignKey
	}
	k := subKey{subscriberID: subscriberID, authorID: authorID}
	if _, ok := s.subs[k]; ok {
		return storage.ErrDuplicate
	}
	s.subs[k] = struct{}{}
	return nil
}

func (s *Store) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := subKey{subscriberID: subscriberID, authorID: authorID}
	if _, ok := s.subs[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.subs, k)
	return nil
}
