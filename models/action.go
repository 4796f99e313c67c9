package models

import "time"

// Виды пользовательских действий в ленте
const (
	ActionLike        = "like"
	ActionShare       = "share"
	ActionAddToCart   = "add_to_cart"
	ActionViewProduct = "view_product"
	ActionViewAll     = "view_all"
)

// PostAction - действие пользователя над постом/товаром/категорией
type PostAction struct {
	PostID    string `json:"postId,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Category  string `json:"category,omitempty"`
	Action    string `json:"action"`
}

// Valid проверяет, что вид действия входит в известный словарь
func (a PostAction) Valid() bool {
	switch a.Action {
	case ActionLike, ActionShare, ActionAddToCart, ActionViewProduct, ActionViewAll:
		return true
	}
	return false
}

// ActionResult - ответ API на действие
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ActionLog - запись о действии для аналитики
type ActionLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    string    `gorm:"index" json:"post_id,omitempty"`
	ProductID string    `gorm:"index" json:"product_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Action    string    `gorm:"index" json:"action"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActionLog) TableName() string {
	return "action_logs"
}
