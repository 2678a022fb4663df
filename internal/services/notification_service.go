// internal/services/notification_service.go
package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/centremall/mall-backend/internal/models"
)

// NotificationService creates in-app notifications for shop lifecycle and
// boutique account events. Failures are logged and swallowed so a broken
// notification never fails the admin action it decorates.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) create(n *models.Notification) {
	if err := s.db.Create(n).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": n.UserID,
			"type":    n.Type,
		}).Error("Failed to create notification")
	}
}

func (s *NotificationService) NotifyShopApproved(shop *models.Shop) {
	s.create(&models.Notification{
		UserID:       shop.UserID,
		Type:         models.NotificationTypeShop,
		Title:        "Boutique approuvée",
		Message:      "Votre boutique \"" + shop.Name + "\" a été approuvée et est maintenant visible dans le centre commercial.",
		RelatedID:    &shop.ID,
		RelatedModel: "Shop",
	})
}

func (s *NotificationService) NotifyShopRejected(shop *models.Shop) {
	s.create(&models.Notification{
		UserID:       shop.UserID,
		Type:         models.NotificationTypeShop,
		Title:        "Boutique rejetée",
		Message:      "Votre demande pour la boutique \"" + shop.Name + "\" a été rejetée.",
		RelatedID:    &shop.ID,
		RelatedModel: "Shop",
	})
}

func (s *NotificationService) NotifyShopSuspended(shop *models.Shop) {
	s.create(&models.Notification{
		UserID:       shop.UserID,
		Type:         models.NotificationTypeShop,
		Title:        "Boutique suspendue",
		Message:      "Votre boutique \"" + shop.Name + "\" a été suspendue. Contactez l'administration du centre.",
		RelatedID:    &shop.ID,
		RelatedModel: "Shop",
	})
}

func (s *NotificationService) NotifyBoutiqueApproved(userID uuid.UUID) {
	s.create(&models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeSystem,
		Title:   "Compte boutique approuvé",
		Message: "Votre compte boutique a été approuvé. Vous pouvez maintenant vous connecter.",
	})
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Scopes(models.NotDeleted).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one notification as read, scoped to its owner.
func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}
