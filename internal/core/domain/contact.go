package domain

import (
	"errors"
	"strings"
	"time"
)

// ContactMessage - сообщение из формы "Get in Touch".
// Обязательных полей нет, как и в исходной форме.
type ContactMessage struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// ContactReceipt возвращается посетителю после отправки
type ContactReceipt struct {
	ID           string
	ReceivedAt   time.Time
	Confirmation string
}

const ContactConfirmation = "Your message has been sent."

// Тексты ошибок формы. Пределы длины совпадают со схемой forms/contact-message/v1.json.
const (
	contactInvalidEmail   = "Please enter a valid email address."
	contactNameTooLong    = "First and last name must be at most 100 characters."
	contactMessageTooLong = "Message must be at most 5000 characters."
	contactInvalidForm    = "Please check the form and try again."
)

// ContactErrorMessage переводит ошибку проверки формы в текст для посетителя
func ContactErrorMessage(err error) string {
	var fieldsErr *InvalidFieldsError
	if !errors.As(err, &fieldsErr) || len(fieldsErr.Fields) == 0 {
		return contactInvalidForm
	}

	var parts []string
	if fieldsErr.HasField("email") {
		parts = append(parts, contactInvalidEmail)
	}
	if fieldsErr.HasField("firstName") || fieldsErr.HasField("lastName") {
		parts = append(parts, contactNameTooLong)
	}
	if fieldsErr.HasField("message") {
		parts = append(parts, contactMessageTooLong)
	}
	if len(parts) == 0 {
		return contactInvalidForm
	}
	return strings.Join(parts, " ")
}
