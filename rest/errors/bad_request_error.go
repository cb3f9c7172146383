package errors

type BadRequestError struct {
	msg string
}

func (e *BadRequestError) Error() string {
	return e.msg
}

func NewBadRequestError(text string) error {
	return &BadRequestError{text}
}
