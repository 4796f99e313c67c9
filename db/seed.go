package db

import (
	"fmt"
	"log"
	"shopfeed/models"

	"github.com/brianvoe/gofakeit/v6"
)

var feedCategories = []string{"Fashion", "Beauty", "Tech", "Home", "Fitness", "Outdoors"}

// SeedCatalog наполняет пустой каталог сгенерированными постами и товарами.
// Если в таблице постов уже есть записи - ничего не делает.
func SeedCatalog(total int) error {
	if ORM == nil {
		return fmt.Errorf("ORM is not initialized")
	}
	if total <= 0 {
		return nil
	}

	var count int64
	if err := ORM.Model(&models.Post{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if count > 0 {
		log.Printf("DEBUG: catalog already has %d posts, skipping seed", count)
		return nil
	}

	log.Printf("Seeding catalog with %d posts", total)

	for i := 1; i <= total; i++ {
		authorID := fmt.Sprintf("author_%d", i)
		author := models.Author{
			ID:          authorID,
			Username:    fmt.Sprintf("%s_%s", gofakeit.Username(), gofakeit.Numerify("###")),
			DisplayName: gofakeit.Name(),
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", authorID),
			Verified:    gofakeit.Bool(),
		}

		postID := fmt.Sprintf("post_%d", i)
		kind := models.PostKindImage
		thumbnail := ""
		if gofakeit.Bool() {
			kind = models.PostKindVideo
			thumbnail = fmt.Sprintf("https://picsum.photos/seed/%s-thumb/540/960", postID)
		}

		post := models.Post{
			ID:              postID,
			Position:        i,
			Kind:            kind,
			MediaURL:        fmt.Sprintf("https://picsum.photos/seed/%s/1080/1920", postID),
			ThumbnailURL:    thumbnail,
			AuthorID:        authorID,
			Author:          author,
			Category:        gofakeit.RandomString(feedCategories),
			PromotionalText: gofakeit.Sentence(8),
			RelatedProducts: generateProducts(postID),
		}

		if err := ORM.Create(&post).Error; err != nil {
			return fmt.Errorf("failed to seed post %s: %w", postID, err)
		}
	}

	return nil
}

// generateProducts генерирует 2-4 товара для промо-блока поста.
// Скидочная строка - отображаемая, SalePrice выводится из нее.
func generateProducts(postID string) []models.Product {
	n := gofakeit.Number(2, 4)
	products := make([]models.Product, 0, n)
	for j := 1; j <= n; j++ {
		original := gofakeit.Price(15, 250)
		pct := gofakeit.Number(10, 60)
		sale := float64(int(original*(1-float64(pct)/100)*100)) / 100

		products = append(products, models.Product{
			ID:            fmt.Sprintf("%s_product_%d", postID, j),
			PostID:        postID,
			Position:      j,
			Name:          gofakeit.ProductName(),
			Description:   gofakeit.ProductDescription(),
			OriginalPrice: original,
			SalePrice:     sale,
			Discount:      fmt.Sprintf("%d%% OFF", pct),
			Image:         fmt.Sprintf("https://picsum.photos/seed/%s-%d/400/400", postID, j),
			InStock:       gofakeit.Number(0, 9) > 1,
		})
	}
	return products
}
