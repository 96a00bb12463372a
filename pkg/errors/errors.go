package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidTermination = errors.New("invalid termination condition")
	ErrUnknownDriver      = errors.New("unknown driver")
	ErrInvalidField       = errors.New("invalid field value")
	ErrConnectFailed      = errors.New("failed to create connection")
	ErrStartFailed        = errors.New("failed to start test procedure")
)

// MissingFieldError сообщает об отсутствии обязательного поля документа.
type MissingFieldError struct {
	Path  string // Путь к узлу документа, например "instructions[1]"
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %q", ErrMissingField, e.Field)
	}
	return fmt.Sprintf("%s: %q at %s", ErrMissingField, e.Field, e.Path)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// InvalidTerminationError сообщает о неполном условии завершения инструкции
// или об условии с посторонним ключом (Unexpected).
type InvalidTerminationError struct {
	Path       string
	Index      int
	Field      string
	Unexpected bool
}

func (e *InvalidTerminationError) Error() string {
	if e.Unexpected {
		return fmt.Sprintf("%s: termination[%d] at %s has unexpected key %q", ErrInvalidTermination, e.Index, e.Path, e.Field)
	}
	return fmt.Sprintf("%s: termination[%d] at %s lacks %q", ErrInvalidTermination, e.Index, e.Path, e.Field)
}

func (e *InvalidTerminationError) Is(target error) bool { return target == ErrInvalidTermination }

// UnknownDriverError возвращается, когда для имени драйвера не зарегистрирован маппер.
type UnknownDriverError struct {
	Name string
}

func (e *UnknownDriverError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownDriver, e.Name)
}

func (e *UnknownDriverError) Is(target error) bool { return target == ErrUnknownDriver }

// InvalidFieldError описывает поле, которое присутствует, но имеет недопустимое значение.
type InvalidFieldError struct {
	Path  string
	Field string
	Value interface{}
	Want  string // Ожидаемый тип или набор значений
}

func (e *InvalidFieldError) Error() string {
	where := e.Field
	if e.Path != "" {
		where = e.Path + "." + e.Field
	}
	return fmt.Sprintf("%s: %s = %v (%T), want %s", ErrInvalidField, where, e.Value, e.Value, e.Want)
}

func (e *InvalidFieldError) Is(target error) bool { return target == ErrInvalidField }
