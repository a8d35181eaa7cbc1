package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/repository/ports"
)

// ContactMessageSender relays a contact-form message to the support mailbox
// with Reply-To pointing back at the author.
type ContactMessageSender interface {
	SendContactMessage(ctx context.Context, subject, message, replyTo string) error
}

type ContactService struct {
	users  ports.UserRepository
	mailer ContactMessageSender
}

func NewContactService(users ports.UserRepository, mailer ContactMessageSender) *ContactService {
	return &ContactService{users: users, mailer: mailer}
}

func (s *ContactService) Relay(ctx context.Context, userID uuid.UUID, subject, message string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return fmt.Errorf("%w: please add subject and message", ErrValidation)
	}

	if err := s.mailer.SendContactMessage(ctx, subject, message, user.Email); err != nil {
		return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}
	return nil
}
