package notification

import (
	"context"
	"fmt"
	"strings"

	bookingRepo "servicehub/database/repository/booking"
	contactRepo "servicehub/database/repository/contact"
	userRepo "servicehub/database/repository/user"
	"servicehub/models"
	"servicehub/services/settings"

	"go.uber.org/zap"
)

// NotificationService turns domain events into emails and pushes.
type NotificationService interface {
	NotifyBookingStatus(ctx context.Context, bookingID, status string) error
	NotifyNewContact(ctx context.Context, contactID string) error
}

type DefaultNotificationService struct {
	bookings bookingRepo.BookingRepository
	contacts contactRepo.ContactRepository
	users    userRepo.UserRepository
	settings settings.SettingsService
	email    EmailSender
	push     PushSender
	logger   *zap.Logger
}

func NewDefaultNotificationService(
	bookings bookingRepo.BookingRepository,
	contacts contactRepo.ContactRepository,
	users userRepo.UserRepository,
	settingsSvc settings.SettingsService,
	email EmailSender,
	push PushSender,
	logger *zap.Logger,
) *DefaultNotificationService {
	return &DefaultNotificationService{
		bookings: bookings,
		contacts: contacts,
		users:    users,
		settings: settingsSvc,
		email:    email,
		push:     push,
		logger:   logger,
	}
}

// NotifyBookingStatus mails the booking contact and pushes to the booking's user and
// every admin of the provider that registered a device token.
func (s *DefaultNotificationService) NotifyBookingStatus(ctx context.Context, bookingID, status string) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("NotifyBookingStatus: %w", err)
	}

	siteName := s.siteName(ctx)
	subject := fmt.Sprintf("%s: booking %s %s", siteName, b.Reference, status)
	plain := fmt.Sprintf("Hello %s,\n\nYour booking %s for %s is now %s.\nTotal: %.2f %s\n",
		firstNonEmpty(b.Contact.Name, "there"), b.Reference, b.ListingName, status, b.Amount.Total, b.Amount.Currency)
	html := fmt.Sprintf("<p>Hello %s,</p><p>Your booking <strong>%s</strong> for %s is now <strong>%s</strong>.</p><p>Total: %.2f %s</p>",
		firstNonEmpty(b.Contact.Name, "there"), b.Reference, b.ListingName, status, b.Amount.Total, b.Amount.Currency)

	var errs []string
	if to := b.Contact.Email; to != "" {
		if err := s.email.SendEmail(ctx, to, b.Contact.Name, subject, plain, html); err != nil {
			errs = append(errs, err.Error())
		}
	}

	data := map[string]string{"bookingId": b.ID, "reference": b.Reference, "status": status}
	title := fmt.Sprintf("Booking %s", status)

	if u, err := s.users.GetByID(ctx, b.UserID); err == nil && u.FCMToken != "" {
		data["role"] = models.RoleUser
		if err := s.push.SendPush(ctx, u.FCMToken, title, fmt.Sprintf("%s is %s", b.Reference, status), copyData(data)); err != nil {
			errs = append(errs, err.Error())
		}
	}

	admins, err := s.users.ListByProvider(ctx, b.ProviderID)
	if err != nil {
		s.logger.Warn("Failed to load provider admins", zap.String("provider", b.ProviderID), zap.Error(err))
	}
	data["role"] = models.RoleAdmin
	for _, a := range admins {
		if a.FCMToken == "" {
			continue
		}
		body := fmt.Sprintf("%s (%s) is %s", b.Reference, b.ListingName, status)
		if err := s.push.SendPush(ctx, a.FCMToken, title, body, copyData(data)); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("NotifyBookingStatus: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NotifyNewContact forwards a contact-form message to the support address.
func (s *DefaultNotificationService) NotifyNewContact(ctx context.Context, contactID string) error {
	c, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		return fmt.Errorf("NotifyNewContact: %w", err)
	}
	current, err := s.settings.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("NotifyNewContact: %w", err)
	}
	if current.SupportEmail == "" {
		s.logger.Info("No support email configured; contact message not forwarded", zap.String("contact", c.ID))
		return nil
	}

	subject := fmt.Sprintf("[%s] %s", current.SiteName, c.Subject)
	plain := fmt.Sprintf("From: %s <%s> %s\n\n%s\n", c.Name, c.Email, c.Phone, c.Message)
	html := fmt.Sprintf("<p>From: %s &lt;%s&gt; %s</p><p>%s</p>", c.Name, c.Email, c.Phone, c.Message)
	if err := s.email.SendEmail(ctx, current.SupportEmail, current.SiteName, subject, plain, html); err != nil {
		return fmt.Errorf("NotifyNewContact: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) siteName(ctx context.Context) string {
	if current, err := s.settings.GetSettings(ctx); err == nil && current.SiteName != "" {
		return current.SiteName
	}
	return models.DefaultSettings().SiteName
}

func copyData(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
