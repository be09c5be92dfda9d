package service

import (
	"fmt"
	"time"

	"testhub_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound mail capability. The SMTP implementation lives
// below; tests substitute a recording fake.
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) error
}

type EmailService struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
	}
}

func (s *EmailService) Send(to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	from := s.cfg.From
	if from == "" {
		from = s.cfg.Username
	}
	fromName := s.cfg.FromName
	if fromName == "" {
		fromName = "Test Series Hub"
	}
	m.SetHeader("From", m.FormatAddress(from, fromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	if textBody != "" {
		m.SetBody("text/plain", textBody)
		m.AddAlternative("text/html", htmlBody)
	} else {
		m.SetBody("text/html", htmlBody)
	}

	return s.dialer.DialAndSend(m)
}

func emailShell(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F1F5F9; margin: 0; padding: 0; }
			.container { max-width: 560px; margin: 40px auto; background: #FFFFFF; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.06); }
			.header { background-color: #BE123C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 0.5px; }
			.content { padding: 36px 30px; color: #334155; line-height: 1.7; }
			.otp-code { background: #FEF2F4; border: 2px dashed #FDA4AF; border-radius: 10px; padding: 18px; text-align: center; font-size: 36px; font-weight: 800; letter-spacing: 12px; color: #F43F5E; font-family: 'Courier New', Courier, monospace; }
			.btn { display: inline-block; padding: 12px 28px; background-color: #BE123C; color: #FFFFFF !important; text-decoration: none; border-radius: 50px; font-weight: bold; margin-top: 16px; }
			.receipt { background: #F8FAFC; border-radius: 8px; padding: 16px 20px; margin: 16px 0; font-size: 13px; }
			.footer { background-color: #F8FAFC; padding: 18px; text-align: center; font-size: 12px; color: #94A3B8; border-top: 1px solid #E2E8F0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">&copy; %d Test Series Hub. This is an automated email, please do not reply.</div>
		</div>
	</body>
	</html>`, title, bodyContent, time.Now().Year())
}

// OTPEmail renders the verification mail. The code is valid for ten minutes
// and is never stored in plaintext server-side.
func OTPEmail(userName, otp string) (subject, html, text string) {
	subject = "Your OTP - Verify Your Test Series Hub Account"
	body := fmt.Sprintf(`
		<p>Hello <strong>%s</strong>,</p>
		<p>Thanks for signing up with Test Series Hub. Use the One-Time Password below to
		activate your account. It is <strong>valid for 10 minutes</strong> and can only be used once.</p>
		<div class="otp-code">%s</div>
		<p style="margin-top:20px;"><strong>Never share this code.</strong> Test Series Hub will never
		ask for your OTP. If you did not request this, ignore this email.</p>`, userName, otp)
	html = emailShell("Email Verification", body)
	text = fmt.Sprintf("Hello %s,\n\nYour OTP for Test Series Hub is: %s\n\nValid for 10 minutes. Do not share it with anyone.\n\n- Test Series Hub", userName, otp)
	return subject, html, text
}

func WelcomeEmail(userName, portalURL string) (subject, html, text string) {
	subject = "Welcome to Test Series Hub - Registration Successful!"
	body := fmt.Sprintf(`
		<p>Hi <strong>%s</strong>,</p>
		<p>Your email has been verified and your Test Series Hub account is now fully active.
		Whether you're preparing for <strong>CA Foundation</strong>, <strong>CA Inter</strong> or
		<strong>CA Final</strong>, the complete test series library is waiting for you.</p>
		<p style="text-align:center;"><a class="btn" href="%s">Explore Test Series</a></p>`, userName, portalURL)
	html = emailShell("Account Verified!", body)
	text = fmt.Sprintf("Hello %s,\n\nYour account is now active. Log in and start your exam preparation!\n\n- Test Series Hub", userName)
	return subject, html, text
}

func PurchaseConfirmationEmail(userName, testTitle, testCategory string, amountPaid float64, paymentID, pdfViewURL string) (subject, html, text string) {
	subject = fmt.Sprintf("Payment Confirmed - You now have access to %s", testTitle)
	body := fmt.Sprintf(`
		<p>Hi <strong>%s</strong>,</p>
		<p>Thank you for your purchase! Your access to <strong>%s</strong> has been unlocked.</p>
		<div class="receipt">
			<p>Product: <strong>%s</strong></p>
			<p>Category: <strong>%s</strong></p>
			<p>Amount Paid: <strong>&#8377;%.2f</strong></p>
			<p>Payment ID: <strong>%s</strong></p>
		</div>
		<p style="text-align:center;"><a class="btn" href="%s">View Your Test PDF</a></p>
		<p>Keep this email as your payment receipt.</p>`,
		userName, testTitle, testTitle, testCategory, amountPaid, paymentID, pdfViewURL)
	html = emailShell("Payment Successful!", body)
	text = fmt.Sprintf("Hi %s,\n\nYour payment of Rs %.2f for %q was successful.\n\nPayment ID: %s\n\nView your test PDF: %s\n\n- Test Series Hub",
		userName, amountPaid, testTitle, paymentID, pdfViewURL)
	return subject, html, text
}
