package utils

import (
	"fmt"
	"lms/config"
	"log"
	"net/smtp"
)

func sendHTMLEmail(to, subject, body string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	headers := fmt.Sprintf("Subject: %s\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n", subject)
	message := []byte(headers + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message); err != nil {
		log.Printf("Error sending email to %s: %v", to, err)
		return err
	}

	return nil
}

// SendEnrollmentConfirmation notifies a user that their course payment went
// through and the enrollment is active
func SendEnrollmentConfirmation(email, name, courseTitle string) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Enrollment Confirmed</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">Your payment was received and you are now enrolled in:</p>
					<h3 style="text-align: center; color: #4CAF50;">%s</h3>
					<p style="font-size: 14px; color: #999999; text-align: center;">Head to your dashboard to start learning.</p>
				</div>
			</body>
		</html>
	`, name, courseTitle)

	return sendHTMLEmail(email, "Enrollment Confirmed", body)
}

// SendQuizPassedEmail congratulates a user on passing a quiz
func SendQuizPassedEmail(email, name, quizTitle string, percentage int) error {
	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">Quiz Passed</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">You passed <strong>%s</strong> with a score of:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%d%%</h1>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Keep it up!</p>
				</div>
			</body>
		</html>
	`, name, quizTitle, percentage)

	return sendHTMLEmail(email, "You passed "+quizTitle, body)
}
