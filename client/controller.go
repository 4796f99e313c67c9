package client

import (
	"context"
	"log"
	"shopfeed/models"
	"sync"
)

const (
	// DefaultPageSize - размер страницы, который контроллер запрашивает у ленты
	DefaultPageSize = 5

	// Порог доли видимости, после которого пост становится активным
	activeRatioThreshold = 0.5

	loadErrorMessage = "Failed to fetch feed data"
)

// FeedController - единственный владелец FeedState. Ведет накопленный список
// постов, пагинацию, активный пост и триггер дозагрузки. Одновременно может
// выполняться не больше одного запроса страницы: повторный вызов при
// незавершенном запросе отбрасывается, а не ставится в очередь. Завершения
// запросов, выданных до сброса (Initialize/Retry) или закрытия, игнорируются
// по счетчику эпох.
type FeedController struct {
	fetcher  Fetcher
	pageSize int

	mu        sync.Mutex
	state     models.FeedState
	seen      map[string]struct{}
	inFlight  bool
	epoch     uint64
	closed    bool
	observers []func(models.FeedState)
}

func NewFeedController(fetcher Fetcher, pageSize int) *FeedController {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &FeedController{
		fetcher:  fetcher,
		pageSize: pageSize,
		seen:     make(map[string]struct{}),
		state: models.FeedState{
			Loading:     true,
			HasMore:     true,
			CurrentPage: 0,
		},
	}
}

// Subscribe регистрирует наблюдателя изменений состояния.
// Колбэк вызывается под блокировкой контроллера со снимком состояния;
// вызывать из него методы контроллера нельзя.
func (c *FeedController) Subscribe(fn func(models.FeedState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// State возвращает снимок текущего состояния
func (c *FeedController) State() models.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Initialize сбрасывает состояние и загружает первую страницу.
// Повторный вызов - полный сброс (pull-to-refresh, retry после ошибки).
func (c *FeedController) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// Новая эпоха: завершение любого незавершенного запроса будет отброшено
	c.epoch++
	c.inFlight = false
	c.seen = make(map[string]struct{})
	c.state = models.FeedState{
		Loading:     true,
		HasMore:     true,
		CurrentPage: 0,
	}
	c.notifyLocked()
	c.mu.Unlock()

	c.LoadPage(ctx, 1, true)
}

// Retry повторяет инициализацию после состояния ошибки
func (c *FeedController) Retry(ctx context.Context) {
	c.Initialize(ctx)
}

// LoadPage запускает загрузку страницы. Если запрос уже выполняется,
// вызов отбрасывается: очередь создала бы риск выполнить устаревший
// запрос после сброса.
func (c *FeedController) LoadPage(ctx context.Context, page int, reset bool) {
	c.mu.Lock()
	if c.closed || c.inFlight {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.state.Loading = true
	c.state.Error = ""
	issuedAt := c.epoch
	c.notifyLocked()
	c.mu.Unlock()

	go func() {
		result, err := c.fetcher.FetchPage(ctx, page, c.pageSize)
		c.applyCompletion(issuedAt, page, reset, result, err)
	}()
}

// applyCompletion применяет результат загрузки страницы к состоянию
func (c *FeedController) applyCompletion(issuedAt uint64, page int, reset bool, result *models.FeedPage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || issuedAt != c.epoch {
		// Устаревшее завершение: контроллер закрыт или был сброшен
		log.Printf("DEBUG: discarding stale completion for page %d (epoch %d != %d)", page, issuedAt, c.epoch)
		return
	}

	c.inFlight = false
	c.state.Loading = false

	if err != nil {
		// Частичный сбой: накопленные посты и CurrentPage не откатываются
		log.Printf("ERROR: failed to load feed page %d: %v", page, err)
		c.state.Error = loadErrorMessage
		c.notifyLocked()
		return
	}

	if reset {
		c.seen = make(map[string]struct{})
		c.state.Posts = nil
		c.state.ActivePostIndex = 0
	}
	for _, post := range result.Posts {
		if _, ok := c.seen[post.ID]; ok {
			continue
		}
		c.seen[post.ID] = struct{}{}
		c.state.Posts = append(c.state.Posts, post)
	}
	c.state.HasMore = result.HasMore
	c.state.CurrentPage = page
	c.state.Error = ""
	c.notifyLocked()
}

// RequestLoadMore запрашивает следующую страницу. No-op, пока идет загрузка
// или лента исчерпана; безопасен при любом числе быстрых повторных вызовов.
func (c *FeedController) RequestLoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.closed || c.inFlight || c.state.Loading || !c.state.HasMore {
		c.mu.Unlock()
		return
	}
	page := c.state.CurrentPage + 1
	c.mu.Unlock()

	c.LoadPage(ctx, page, false)
}

// ReportVisibility обрабатывает событие пересечения вьюпорта для поста index.
// Пост становится активным только при intersecting и доле видимости > 0.5.
// Пересечение предпоследнего поста дополнительно запускает дозагрузку -
// один пост форы до настоящего конца ленты.
func (c *FeedController) ReportVisibility(ctx context.Context, index int, ratio float64, intersecting bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if intersecting && ratio > activeRatioThreshold && index >= 0 && index < len(c.state.Posts) {
		if c.state.ActivePostIndex != index {
			c.state.ActivePostIndex = index
			c.notifyLocked()
		}
	}
	triggerLoadMore := intersecting && index == len(c.state.Posts)-2
	c.mu.Unlock()

	if triggerLoadMore {
		c.RequestLoadMore(ctx)
	}
}

// DispatchAction отправляет действие пользователя fire-and-forget.
// На FeedState не влияет, сбой только логируется.
func (c *FeedController) DispatchAction(action models.PostAction) {
	go func() {
		if _, err := c.fetcher.PostAction(context.Background(), action); err != nil {
			log.Printf("ERROR: failed to dispatch action %s: %v", action.Action, err)
		}
	}()
}

// Close останавливает контроллер. Завершения незавершенных запросов после
// закрытия состояние не мутируют.
func (c *FeedController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.epoch++
	c.observers = nil
}

func (c *FeedController) snapshotLocked() models.FeedState {
	snapshot := c.state
	snapshot.Posts = append([]models.Post(nil), c.state.Posts...)
	return snapshot
}

func (c *FeedController) notifyLocked() {
	if len(c.observers) == 0 {
		return
	}
	snapshot := c.snapshotLocked()
	for _, fn := range c.observers {
		fn(snapshot)
	}
}
