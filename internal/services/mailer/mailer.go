// Package mailer builds and sends the transactional emails: account
// verification, password reset and subscription expiry reminders. Copy is
// Arabic to match the product.
package mailer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/url"
	"strings"

	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/lib/smtp"
	"github.com/awladnasem/alefbata/internal/models"
)

// Service sends mail over the relay transport. baseURL is the public
// address of the site; token links are built on it.
type Service struct {
	transport smtp.TransportInterface
	baseURL   string
	log       *slog.Logger
}

// New creates a mailer over the given transport.
func New(transport smtp.TransportInterface, baseURL string, log *slog.Logger) *Service {
	return &Service{transport: transport, baseURL: baseURL, log: log}
}

// SendVerificationEmail mails the account confirmation link.
func (s *Service) SendVerificationEmail(to, fullName, token string) error {
	link := s.baseURL + "/api/verify-email?token=" + url.QueryEscape(token)
	subject := "تأكيد حسابك في ألف باتا"
	body := fmt.Sprintf(`مرحباً %s،

شكراً لتسجيلك في ألف باتا. لتأكيد بريدك الإلكتروني اضغط على الرابط التالي:

%s

إذا لم تقم بإنشاء هذا الحساب فتجاهل هذه الرسالة.

فريق ألف باتا`, fullName, link)

	return s.send(to, subject, body)
}

// SendPasswordResetEmail mails the password reset link. The token expires
// an hour after issue.
func (s *Service) SendPasswordResetEmail(to, fullName, token string) error {
	link := s.baseURL + "/reset-password?token=" + url.QueryEscape(token)
	subject := "إعادة تعيين كلمة المرور"
	body := fmt.Sprintf(`مرحباً %s،

وصلنا طلب لإعادة تعيين كلمة المرور لحسابك. اضغط على الرابط التالي خلال ساعة واحدة:

%s

إذا لم تطلب إعادة التعيين فتجاهل هذه الرسالة وستبقى كلمة مرورك كما هي.

فريق ألف باتا`, fullName, link)

	return s.send(to, subject, body)
}

// SendExpiryReminder consumes a queued reminder payload and mails the
// subscriber that their plan ends tomorrow.
func (s *Service) SendExpiryReminder(payload []byte) error {
	var message models.ExpiringSubscription
	if err := json.Unmarshal(payload, &message); err != nil {
		s.log.Error("failed to unmarshal reminder payload", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	subject := "اشتراكك في ألف باتا ينتهي غداً"
	body := fmt.Sprintf(`مرحباً %s،

اشتراكك (%s) في ألف باتا ينتهي غداً بتاريخ %s.

جدّد اشتراكك من هنا حتى لا ينقطع وصول طفلك إلى الألعاب:

%s/plans

فريق ألف باتا`, message.FullName, message.Tier,
		message.EndDate.Format("2006-01-02"), s.baseURL)

	return s.send(message.Email, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	from, fromName := s.transport.From()
	msg := strings.Join([]string{
		"From: " + mime.QEncoding.Encode("utf-8", fromName) + " <" + from + ">",
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	if err := client.Rcpt(to); err != nil {
		s.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
		return err
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to open data writer", sl.Err(err))
		return err
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", sl.Err(err))
		_ = wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err := client.Quit(); err != nil {
		s.log.Warn("smtp quit failed", sl.Err(err))
	}
	s.log.Info("email sent", slog.String("to", to))
	return nil
}
