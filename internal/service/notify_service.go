package service

import (
	"log"

	"terra/internal/holdnote"
)

// NotifyService tells the owner that the payment provider reported a
// completed payment. The calendar is not touched here: confirming the hold
// (retitling it) stays a manual step for the owner.
type NotifyService struct {
	OwnerEmail string
	OwnerPhone string

	SendGridAPIKey string
	SendGridFrom   string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

// NotifyPaymentCompleted sends the owner an email and an SMS. Both are
// fire-and-forget: a notification failure is logged, never surfaced to the
// webhook caller.
func (s *NotifyService) NotifyPaymentCompleted(paymentID, orderID string, amount int) {
	subject := "【Terra】決済完了のお知らせ"
	body := "お支払いが完了しました。カレンダーの仮予約（HOLD）を確認・確定してください。\n\n" +
		"決済ID: " + paymentID + "\n" +
		"注文ID: " + orderID + "\n" +
		"金額: ¥" + holdnote.FormatYen(amount) + "\n"

	if s.OwnerEmail != "" {
		go func() {
			if err := SendEmailWithSendGrid(s.SendGridAPIKey, s.SendGridFrom, s.OwnerEmail, "Terra", subject, body); err != nil {
				log.Printf("NotifyPaymentCompleted: email for payment %s failed: %v", paymentID, err)
			}
		}()
	}

	if s.OwnerPhone != "" {
		sms := "Terra: 決済完了 (¥" + holdnote.FormatYen(amount) + ")。カレンダーのHOLDを確定してください。決済ID: " + paymentID
		if err := SendSMS(s.TwilioAccountSID, s.TwilioAuthToken, s.TwilioFromNumber, s.OwnerPhone, sms); err != nil {
			log.Printf("NotifyPaymentCompleted: SMS for payment %s failed: %v", paymentID, err)
		}
	}
}
