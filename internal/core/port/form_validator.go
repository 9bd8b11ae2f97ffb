package port

// FormValidatorPort проверяет пользовательский ввод по контракту формы
type FormValidatorPort interface {
	ValidateTourForm(body []byte) error
	ValidateContactMessage(body []byte) error
}
