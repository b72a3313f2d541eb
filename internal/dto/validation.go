package dto

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the uniform validation result consumed by the create,
// edit and comment handlers. An empty list means the form is valid.
type FieldErrors []FieldError

func (e FieldErrors) Ok() bool {
	return len(e) == 0
}

func (e FieldErrors) Has(field string) bool {
	return e.Message(field) != ""
}

func (e FieldErrors) Message(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}
