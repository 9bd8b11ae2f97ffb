package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TourStep - шаг мастера записи на просмотр
type TourStep int

const (
	StepSelectType TourStep = 1
	StepFormEntry  TourStep = 2
	StepConfirmed  TourStep = 3
)

func (s TourStep) String() string {
	switch s {
	case StepSelectType:
		return "select_type"
	case StepFormEntry:
		return "form_entry"
	case StepConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// TourType - формат просмотра
type TourType string

const (
	TourInPerson TourType = "in-person"
	TourVirtual  TourType = "virtual"
)

// TourTypes возвращает варианты в порядке отображения
func TourTypes() []TourType {
	return []TourType{TourInPerson, TourVirtual}
}

func ParseTourType(raw string) (TourType, error) {
	normalized := TourType(strings.ToLower(strings.TrimSpace(raw)))
	for _, t := range TourTypes() {
		if t == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTourType, raw)
}

// Label - "In-Person Tour", "Virtual Tour"
func (t TourType) Label() string {
	return cases.Title(language.English).String(string(t)) + " Tour"
}

func (t TourType) Description() string {
	if t == TourVirtual {
		return "Take a virtual tour from anywhere"
	}
	return "Tour the property in person with our agent"
}

// TourForm - поля второго шага
type TourForm struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// missingFields возвращает имена пустых обязательных полей
func (f TourForm) missingFields() []string {
	fields := []struct{ name, value string }{
		{"name", f.Name}, {"email", f.Email}, {"phone", f.Phone}, {"date", f.Date}, {"time", f.Time},
	}
	var missing []string
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// TourRequest - то, что посетитель в итоге отправил
type TourRequest struct {
	Type TourType `json:"type"`
	TourForm
}

// TourWizard - линейный мастер SelectType -> FormEntry -> Confirmed.
// Confirmed терминален: чтобы начать заново, мастер нужно закрыть и открыть снова.
type TourWizard struct {
	BuildingIndex int
	BuildingTitle string
	Step          TourStep
	Request       TourRequest
}

func NewTourWizard(buildingIndex int, buildingTitle string) *TourWizard {
	return &TourWizard{
		BuildingIndex: buildingIndex,
		BuildingTitle: buildingTitle,
		Step:          StepSelectType,
		Request:       TourRequest{Type: TourInPerson},
	}
}

// ChooseType: SelectType -> FormEntry
func (w *TourWizard) ChooseType(t TourType) error {
	if w.Step != StepSelectType {
		return fmt.Errorf("%w: choose type from step %s", ErrInvalidTourTransition, w.Step)
	}
	parsed, err := ParseTourType(string(t))
	if err != nil {
		return err
	}
	w.Request.Type = parsed
	w.Step = StepFormEntry
	return nil
}

// Back: FormEntry -> SelectType. Введенные поля сохраняются.
func (w *TourWizard) Back() error {
	if w.Step != StepFormEntry {
		return fmt.Errorf("%w: back from step %s", ErrInvalidTourTransition, w.Step)
	}
	w.Step = StepSelectType
	return nil
}

// Submit: FormEntry -> Confirmed. При ошибке мастер остается на шаге формы,
// а введенные значения запоминаются, чтобы не набирать их заново.
func (w *TourWizard) Submit(form TourForm) error {
	if w.Step != StepFormEntry {
		return fmt.Errorf("%w: submit from step %s", ErrInvalidTourTransition, w.Step)
	}
	w.Request.TourForm = form
	if missing := form.missingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidTourForm, strings.Join(missing, ", "))
	}
	w.Step = StepConfirmed
	return nil
}
