package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"shopfeed/config"
	"shopfeed/db"
	"shopfeed/models"
	"time"

	"gorm.io/gorm"
)

const (
	PAGE_CACHE_TTL        = 5 * time.Minute // TTL кеша страниц по умолчанию
	PAGE_CACHE_KEY_PREFIX = "feed_page:"    // Префикс ключей кеша страниц
	DEFAULT_PAGE_LIMIT    = 10              // Лимит при отсутствии параметра
	MAX_PAGE_LIMIT        = 100             // Верхняя граница лимита
)

type FeedService struct{}

func NewFeedService() *FeedService {
	return &FeedService{}
}

// GetPage возвращает одну страницу ленты с метаданными пагинации.
// Арифметика серверная: hasMore = page*limit < total, totalPages = ceil(total/limit).
// Страница за концом каталога - пустой список и hasMore=false, не ошибка.
func (fs *FeedService) GetPage(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DEFAULT_PAGE_LIMIT
	}
	if limit > MAX_PAGE_LIMIT {
		limit = MAX_PAGE_LIMIT
	}

	cacheKey := fmt.Sprintf("%s%d:%d", PAGE_CACHE_KEY_PREFIX, page, limit)

	// Пытаемся получить из кеша
	if cached, err := fs.getPageFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	var total int64
	if err := db.GetReadOnlyDB(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	posts := make([]models.Post, 0, limit)
	err := db.GetReadOnlyDB(ctx).
		Preload("Author").
		Preload("RelatedProducts", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Order("position ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get feed posts: %w", err)
	}

	result := &models.FeedPage{
		Posts:       posts,
		HasMore:     page*limit < int(total),
		Total:       int(total),
		CurrentPage: page,
		TotalPages:  (int(total) + limit - 1) / limit,
	}

	// Кешируем результат
	go fs.cachePage(context.Background(), cacheKey, result)

	return result, nil
}

// getPageFromCache получает страницу из Redis кеша
func (fs *FeedService) getPageFromCache(ctx context.Context, cacheKey string) (*models.FeedPage, error) {
	if RedisClient == nil {
		return nil, fmt.Errorf("redis not available")
	}
	val, err := RedisClient.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, err
	}
	var page models.FeedPage
	if err := json.Unmarshal([]byte(val), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// cachePage кеширует страницу в Redis
func (fs *FeedService) cachePage(ctx context.Context, cacheKey string, page *models.FeedPage) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	ttl := PAGE_CACHE_TTL
	if config.AppConfig != nil && config.AppConfig.Feed.CacheTTL > 0 {
		ttl = config.AppConfig.Feed.CacheTTL
	}
	if err := RedisClient.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		log.Printf("Warning: failed to cache feed page %s: %v", cacheKey, err)
	}
}
