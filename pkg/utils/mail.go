package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mailjet/mailjet-apiv3-go/v4"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"cambio_wallet_back/models"
)

// MailNotifier отправляет письма через Mailjet, либо по SMTP (gomail),
// если ключи Mailjet не заданы. Без конфигурации письма только логируются.
type MailNotifier struct {
	from string

	mailjetKey    string
	mailjetSecret string

	smtpHost string
	smtpPort int
	smtpPass string
}

func NewMailNotifier() *MailNotifier {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &MailNotifier{
		from:          os.Getenv("MAIL_FROM"),
		mailjetKey:    os.Getenv("MAILJET_API_KEY"),
		mailjetSecret: os.Getenv("MAILJET_SECRET_KEY"),
		smtpHost:      os.Getenv("SMTP_HOST"),
		smtpPort:      port,
		smtpPass:      os.Getenv("SMTP_PASSWORD"),
	}
}

// AlertTriggered — письмо о срабатывании алерта watchlist
func (n *MailNotifier) AlertTriggered(email string, event models.AlertEvent) {
	subject := fmt.Sprintf("Алерт: %s/%s достиг порога", event.Entry.FromCurrency, event.Entry.ToCurrency)
	body := fmt.Sprintf(`<body style="margin:0;padding:32px;background:#f6f6f6;font-family:Arial,sans-serif;">
  <h1 style="font-size:24px;color:#111;">Курс достиг порога</h1>
  <p style="font-size:16px;color:#222;">Пара <b>%s/%s</b>: текущий курс <b>%s</b>, ваш порог <b>%s</b>.</p>
  <p style="font-size:13px;color:#aaa;">Алерт сработает снова, когда курс опустится ниже порога и пересечёт его повторно.</p>
</body>`, event.Entry.FromCurrency, event.Entry.ToCurrency, event.CurrentRate, event.Entry.AlertRate)

	n.send(email, subject, body)
}

// PasswordReset — письмо с токеном сброса пароля
func (n *MailNotifier) PasswordReset(email, token string) {
	subject := "Сброс пароля"
	body := fmt.Sprintf(`<body style="margin:0;padding:32px;background:#f6f6f6;font-family:Arial,sans-serif;">
  <h1 style="font-size:24px;color:#111;">Сброс пароля</h1>
  <p style="font-size:16px;color:#222;">Ваш код для сброса пароля:</p>
  <p style="font-size:20px;font-weight:bold;color:#111;">%s</p>
  <p style="font-size:13px;color:#aaa;">Код действует один час. Если вы не запрашивали сброс, проигнорируйте письмо.</p>
</body>`, token)

	n.send(email, subject, body)
}

func (n *MailNotifier) send(to, subject, body string) {
	if n.mailjetKey != "" && n.mailjetSecret != "" {
		n.sendMailjet(to, subject, body)
		return
	}
	if n.smtpHost != "" {
		n.sendSMTP(to, subject, body)
		return
	}
	logrus.Infof("SMTP не настроен, письмо не отправлено: to=%s subject=%q", to, subject)
}

func (n *MailNotifier) sendMailjet(to, subject, body string) {
	mj := mailjet.NewMailjetClient(n.mailjetKey, n.mailjetSecret)
	messagesInfo := []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: n.from,
				Name:  "Câmbio Wallet",
			},
			To: &mailjet.RecipientsV31{
				{Email: to},
			},
			Subject:  subject,
			HTMLPart: body,
		},
	}
	messages := &mailjet.MessagesV31{Info: messagesInfo}
	if _, err := mj.SendMailV31(messages); err != nil {
		logrus.Errorf("Ошибка при отправке письма через Mailjet: %s", err)
		return
	}
	logrus.Infof("Письмо через Mailjet отправлено: to=%s subject=%q", to, subject)
}

func (n *MailNotifier) sendSMTP(to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(n.smtpHost, n.smtpPort, n.from, n.smtpPass)
	if err := d.DialAndSend(m); err != nil {
		logrus.Errorf("Ошибка при отправке письма: %s", err)
		return
	}
	logrus.Infof("Письмо отправлено: to=%s subject=%q", to, subject)
}
