package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNoImage             = errors.New("no image loaded")
	ErrNothingToSave       = errors.New("no recognized text to save")
	ErrInvalidInput        = errors.New("image is absent")
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrUnsupportedLanguage = errors.New("unsupported language")
)

// ErrorKind вид ошибки, о которой сообщают пользователю
type ErrorKind string

const (
	KindLoad        ErrorKind = "load"
	KindProcessing  ErrorKind = "processing"
	KindRecognition ErrorKind = "recognition"
	KindSave        ErrorKind = "save"
)

// OperationError ошибка, прервавшая операцию сессии
type OperationError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func LoadError(message string, err error) *OperationError {
	return &OperationError{Kind: KindLoad, Message: message, Err: err}
}

func ProcessingError(message string, err error) *OperationError {
	return &OperationError{Kind: KindProcessing, Message: message, Err: err}
}

func RecognitionError(message string, err error) *OperationError {
	return &OperationError{Kind: KindRecognition, Message: message, Err: err}
}

func SaveError(message string, err error) *OperationError {
	return &OperationError{Kind: KindSave, Message: message, Err: err}
}

// IsKind проверяет, что в цепочке err есть OperationError нужного вида
func IsKind(err error, kind ErrorKind) bool {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind == kind
	}
	return false
}
