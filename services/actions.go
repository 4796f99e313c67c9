package services

import (
	"context"
	"fmt"
	"log"
	"shopfeed/db"
	"shopfeed/models"
	"time"
)

type ActionService struct{}

func NewActionService() *ActionService {
	return &ActionService{}
}

// Record сохраняет действие пользователя и отправляет событие в аналитический
// пайплайн. Публикация - best-effort: ответ пользователю от нее не зависит.
func (as *ActionService) Record(ctx context.Context, action models.PostAction) (*models.ActionResult, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("unknown action: %s", action.Action)
	}

	entry := models.ActionLog{
		PostID:    action.PostID,
		ProductID: action.ProductID,
		Category:  action.Category,
		Action:    action.Action,
		CreatedAt: time.Now(),
	}
	if err := db.GetWriteDB(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to store action: %w", err)
	}

	// Публикуем событие асинхронно, сбой только логируем
	go func() {
		if err := PublishActionEvent(context.Background(), action); err != nil {
			log.Printf("DEBUG: action event not published: %v", err)
		}
	}()

	return &models.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Action %s completed successfully", action.Action),
	}, nil
}
