package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"shopfeed/client"
	"shopfeed/models"
	"time"
)

// Конфигурация симулятора скролла
type Config struct {
	FeedURL     string
	PageSize    int
	ScrollDelay time.Duration
	ActionRate  float64 // доля постов, на которых "нажимается" добавление в корзину
}

func parseFlags() Config {
	var config Config
	flag.StringVar(&config.FeedURL, "url", "http://localhost:8080", "Base URL of the feed server")
	flag.IntVar(&config.PageSize, "page-size", client.DefaultPageSize, "Feed page size")
	flag.DurationVar(&config.ScrollDelay, "delay", 200*time.Millisecond, "Delay between scroll steps")
	flag.Float64Var(&config.ActionRate, "action-rate", 0.3, "Fraction of posts that trigger an add_to_cart action")
	flag.Parse()
	return config
}

func waitSettled(controller *client.FeedController) models.FeedState {
	for {
		state := controller.State()
		if !state.Loading {
			return state
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func main() {
	config := parseFlags()
	log.Printf("Starting scroll client with config: %+v", config)

	ctx := context.Background()
	fetcher := client.NewPageFetcher(config.FeedURL)
	controller := client.NewFeedController(fetcher, config.PageSize)
	defer controller.Close()

	controller.Subscribe(func(state models.FeedState) {
		log.Printf("DEBUG: state: posts=%d page=%d hasMore=%v loading=%v active=%d error=%q",
			len(state.Posts), state.CurrentPage, state.HasMore, state.Loading, state.ActivePostIndex, state.Error)
	})

	controller.Initialize(ctx)
	state := waitSettled(controller)
	if state.Error != "" {
		log.Fatalf("Initial load failed: %s", state.Error)
	}

	viewed := 0
	actions := 0
	index := 0

	// Скроллим ленту пост за постом, пока она не кончится
	for {
		state = waitSettled(controller)
		if index >= len(state.Posts) {
			if !state.HasMore {
				break
			}
			// Триггер по предпоследнему посту мог быть отброшен во время
			// загрузки - дозапрашиваем явно
			controller.RequestLoadMore(ctx)
			continue
		}

		controller.ReportVisibility(ctx, index, 1.0, true)
		viewed++

		post := state.Posts[index]
		if len(post.RelatedProducts) > 0 && rand.Float64() < config.ActionRate {
			controller.DispatchAction(models.PostAction{
				PostID:    post.ID,
				ProductID: post.RelatedProducts[0].ID,
				Action:    models.ActionAddToCart,
			})
			actions++
		}

		index++
		time.Sleep(config.ScrollDelay)
	}

	state = controller.State()
	log.Printf("Scroll finished: viewed=%d posts, pages=%d, actions=%d, active=%d",
		viewed, state.CurrentPage, actions, state.ActivePostIndex)
}
