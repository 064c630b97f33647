// file: service/favorite_service.go

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-weather-api/model"
	"go-weather-api/repository"
	"time"
)

// favoritesCacheTTL bounds staleness if an invalidation is ever missed.
const favoritesCacheTTL = 10 * time.Minute

// FavoriteService manages favorite cities with a cache-aside strategy on
// the per-user list. Weather responses themselves are never cached.
type FavoriteService struct {
	repo  repository.IFavoriteRepository
	cache ICacheClient
}

func NewFavoriteService(repo repository.IFavoriteRepository, cache ICacheClient) *FavoriteService {
	return &FavoriteService{
		repo:  repo,
		cache: cache,
	}
}

func favoritesCacheKey(userID int) string {
	return fmt.Sprintf("favorites:%d", userID)
}

// AddFavorite saves a city for the user and invalidates their cached list.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID int, city string) (*model.Favorite, error) {
	favorite := &model.Favorite{
		UserID: userID,
		City:   city,
	}
	if err := s.repo.CreateFavorite(favorite); err != nil {
		return nil, err
	}

	s.cache.Del(ctx, favoritesCacheKey(userID))
	return favorite, nil
}

// ListFavorites returns the user's favorite cities, serving from the cache
// when possible and filling it on a miss.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID int) ([]*model.Favorite, error) {
	cacheKey := favoritesCacheKey(userID)

	cached, err := s.cache.Get(ctx, cacheKey).Result()
	if err == nil {
		var favorites []*model.Favorite
		if err := json.Unmarshal([]byte(cached), &favorites); err == nil {
			return favorites, nil
		}
	}

	favorites, err := s.repo.GetFavoritesByUserID(userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(favorites); err == nil {
		s.cache.Set(ctx, cacheKey, data, favoritesCacheTTL)
	}

	return favorites, nil
}
