package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"shopfeed/client"
	"shopfeed/config"
	"shopfeed/models"
	"shopfeed/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// serviceFetcher - локальный Fetcher поверх сервисов, без сетевого хопа.
// Используется ws-сессиями, живущими в одном процессе с лентой.
type serviceFetcher struct {
	feed    *services.FeedService
	actions *services.ActionService
}

func (f *serviceFetcher) FetchPage(ctx context.Context, page, limit int) (*models.FeedPage, error) {
	return f.feed.GetPage(ctx, page, limit)
}

func (f *serviceFetcher) PostAction(ctx context.Context, action models.PostAction) (*models.ActionResult, error) {
	return f.actions.Record(ctx, action)
}

// Входящее сообщение ws-сессии
type wsClientEvent struct {
	Event        string  `json:"event"` // visibility | refresh | action
	Index        int     `json:"index"`
	Ratio        float64 `json:"ratio"`
	Intersecting bool    `json:"intersecting"`
	PostID       string  `json:"postId,omitempty"`
	ProductID    string  `json:"productId,omitempty"`
	Category     string  `json:"category,omitempty"`
	Action       string  `json:"action,omitempty"`
}

// Исходящее сообщение ws-сессии
type wsStateEvent struct {
	Event string           `json:"event"`
	State models.FeedState `json:"state"`
}

// WSFeedSession - WebSocket endpoint ленты. Каждое соединение держит свой
// FeedController: клиент шлет события видимости, сервер пушит снимки
// состояния при каждом изменении.
func WSFeedSession(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	pageSize := client.DefaultPageSize
	if config.AppConfig != nil && config.AppConfig.Feed.PageSize > 0 {
		pageSize = config.AppConfig.Feed.PageSize
	}

	controller := client.NewFeedController(&serviceFetcher{
		feed:    feedService,
		actions: actionService,
	}, pageSize)
	defer controller.Close()

	// Наблюдатель пишет под блокировкой контроллера, записи сериализованы
	controller.Subscribe(func(state models.FeedState) {
		payload, err := json.Marshal(wsStateEvent{Event: "state", State: state})
		if err != nil {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Println("WebSocket write error:", err)
		}
	})

	controller.Initialize(context.Background())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var event wsClientEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("DEBUG: ignoring malformed ws message: %v", err)
			continue
		}

		switch event.Event {
		case "visibility":
			controller.ReportVisibility(context.Background(), event.Index, event.Ratio, event.Intersecting)
		case "refresh":
			controller.Initialize(context.Background())
		case "action":
			controller.DispatchAction(models.PostAction{
				PostID:    event.PostID,
				ProductID: event.ProductID,
				Category:  event.Category,
				Action:    event.Action,
			})
		default:
			log.Printf("DEBUG: unknown ws event: %s", event.Event)
		}
	}
}
