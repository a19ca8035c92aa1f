package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// Messages lists the current user's conversation messages
func (c *Client) Messages(ctx context.Context) ([]domain.Message, error) {
	var messages []domain.Message
	if err := c.do(ctx, "messages.list", http.MethodGet, "/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendMessage sends a message to another user
func (c *Client) SendMessage(ctx context.Context, recipientID int64, content string) (*domain.Message, error) {
	body := map[string]any{
		"recipient_id": recipientID,
		"content":      content,
	}
	var message domain.Message
	if err := c.do(ctx, "messages.send", http.MethodPost, "/messages", body, &message); err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkMessageRead marks one message as read
func (c *Client) MarkMessageRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/messages/%d/read", id)
	return c.do(ctx, "messages.mark_read", http.MethodPost, path, nil, nil)
}

// Notifications lists the current user's notifications
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, "notifications.list", http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/notifications/%d/read", id)
	return c.do(ctx, "notifications.mark_read", http.MethodPost, path, nil, nil)
}

// MarkAllNotificationsRead marks every notification as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, "notifications.mark_all_read", http.MethodPost, "/notifications/read-all", nil, nil)
}
