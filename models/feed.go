package models

// PostKind - тип медиа в посте
const (
	PostKindImage = "image"
	PostKindVideo = "video"
)

// Author - автор поста
type Author struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Verified    bool   `json:"verified"`
}

func (Author) TableName() string {
	return "authors"
}

// Product - товар, привязанный к промо-блоку поста.
// SalePrice всегда <= OriginalPrice; Discount - готовая строка для отображения,
// арифметически из цен не выводится.
type Product struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	PostID        string  `gorm:"index" json:"-"`
	Position      int     `gorm:"index" json:"-"` // порядок отображения внутри поста
	Name          string  `json:"name"`
	Description   string  `gorm:"type:text" json:"description"`
	OriginalPrice float64 `json:"originalPrice"`
	SalePrice     float64 `json:"salePrice"`
	Discount      string  `json:"discount"`
	Image         string  `json:"image"`
	InStock       bool    `json:"inStock"`
}

func (Product) TableName() string {
	return "products"
}

// Post - единица ленты: полноэкранное медиа с промо-блоком товаров.
// После выдачи клиенту пост неизменяем; уникальность в ленте - по ID.
type Post struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Position        int       `gorm:"index" json:"-"` // канонический порядок ленты
	Kind            string    `gorm:"column:kind" json:"type"`
	MediaURL        string    `json:"mediaUrl"`
	ThumbnailURL    string    `json:"thumbnailUrl,omitempty"`
	AuthorID        string    `gorm:"index" json:"-"`
	Author          Author    `gorm:"foreignKey:AuthorID" json:"author"`
	Category        string    `gorm:"index" json:"category"`
	PromotionalText string    `gorm:"type:text" json:"promotionalText"`
	RelatedProducts []Product `gorm:"foreignKey:PostID" json:"relatedProducts"`
}

func (Post) TableName() string {
	return "posts"
}

// FeedPage - одна страница ленты с метаданными пагинации.
// HasMore считается сервером (page*limit < total), клиент ему доверяет.
type FeedPage struct {
	Posts       []Post `json:"posts"`
	HasMore     bool   `json:"hasMore"`
	Total       int    `json:"total"`
	CurrentPage int    `json:"currentPage"`
	TotalPages  int    `json:"totalPages"`
}

// FeedState - наблюдаемое состояние клиентского контроллера ленты.
// Мутирует его только FeedController.
type FeedState struct {
	Posts           []Post `json:"posts"`
	Loading         bool   `json:"loading"`
	HasMore         bool   `json:"hasMore"`
	CurrentPage     int    `json:"currentPage"`
	ActivePostIndex int    `json:"activePostIndex"`
	Error           string `json:"error,omitempty"`
}
