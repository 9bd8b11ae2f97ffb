package domain

import "errors"

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases.
var (
	ErrPropertyNotFound      = errors.New("building not found")
	ErrUnknownCategory       = errors.New("unknown category")
	ErrUnknownTourType       = errors.New("unknown tour type")
	ErrInvalidTourTransition = errors.New("invalid tour wizard transition")
	ErrInvalidTourForm       = errors.New("invalid tour request form")
	ErrInvalidContactMessage = errors.New("invalid contact message")
	ErrIndexOutOfRange       = errors.New("index out of range")
)

// InvalidFieldsError - форма не прошла проверку по схеме.
// Fields - имена JSON-полей с ошибками, без повторов и по алфавиту.
type InvalidFieldsError struct {
	Fields []string
	Err    error
}

func (e *InvalidFieldsError) Error() string { return e.Err.Error() }
func (e *InvalidFieldsError) Unwrap() error { return e.Err }

// HasField сообщает, есть ли поле среди ошибочных
func (e *InvalidFieldsError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}
