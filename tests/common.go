package tests

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"shopfeed/api/routes"
	"shopfeed/config"
	"shopfeed/db"
	"shopfeed/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const TestCatalogSize = 12

// SetupTestDB поднимает in-memory sqlite и наполняет каталог детерминированными постами
func SetupTestDB(t *testing.T) {
	t.Helper()
	if db.ORM != nil {
		return
	}

	cfg := &config.ConfigSchema{}
	cfg.Databases.Driver = "sqlite"
	cfg.Databases.Path = "file::memory:?cache=shared"
	cfg.Feed.PageSize = 5
	config.AppConfig = cfg

	require.NoError(t, db.ConnectDB())

	for i := 1; i <= TestCatalogSize; i++ {
		post := models.Post{
			ID:       fmt.Sprintf("post_%d", i),
			Position: i,
			Kind:     models.PostKindVideo,
			MediaURL: fmt.Sprintf("https://example.com/media/%d.mp4", i),
			AuthorID: fmt.Sprintf("author_%d", i),
			Author: models.Author{
				ID:          fmt.Sprintf("author_%d", i),
				Username:    fmt.Sprintf("user%d", i),
				DisplayName: fmt.Sprintf("User %d", i),
				Verified:    i%2 == 0,
			},
			Category:        "Tech",
			PromotionalText: "Don't miss out",
			RelatedProducts: []models.Product{
				{
					ID:            fmt.Sprintf("post_%d_product_1", i),
					Position:      1,
					Name:          "Gadget",
					OriginalPrice: 99.99,
					SalePrice:     59.99,
					Discount:      "40% OFF",
					InStock:       true,
				},
			},
		}
		require.NoError(t, db.ORM.Create(&post).Error)
	}
}

// NewFeedServer поднимает полный HTTP-стек ленты поверх httptest
func NewFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	SetupTestDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.PublicApi(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}
