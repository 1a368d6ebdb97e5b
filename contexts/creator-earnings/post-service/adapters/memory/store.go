package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"claimdesk/contexts/creator-earnings/post-service/domain/entities"
	domainerrors "claimdesk/contexts/creator-earnings/post-service/domain/errors"
	"claimdesk/contexts/creator-earnings/post-service/ports"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	posts map[string]entities.Post
}

func NewStore(seed []entities.Post) *Store {
	posts := make(map[string]entities.Post, len(seed))
	for _, item := range seed {
		posts[item.PostID] = item
	}
	return &Store{posts: posts}
}

func (s *Store) CreatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.PostID] = post
	return nil
}

func (s *Store) GetPost(_ context.Context, postID string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[strings.TrimSpace(postID)]
	if !exists {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) UpdatePost(_ context.Context, post entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.PostID]; !exists {
		return domainerrors.ErrPostNotFound
	}
	s.posts[post.PostID] = post
	return nil
}

func (s *Store) IncrementCounter(_ context.Context, postID string, counter string) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, exists := s.posts[postID]
	if !exists {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	switch counter {
	case "like_count":
		post.LikeCount++
	case "view_count":
		post.ViewCount++
	default:
		return entities.Post{}, domainerrors.ErrInvalidPostInput
	}
	post.UpdatedAt = time.Now().UTC()
	s.posts[postID] = post
	return post, nil
}

func (s *Store) ListPosts(_ context.Context, filter ports.PostFilter) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, 0, len(s.posts))
	for _, post := range s.posts {
		if filter.OwnerID != "" && post.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ActiveOnly && !post.Active {
			continue
		}
		items = append(items, post)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
