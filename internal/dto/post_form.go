package dto

import "strings"

type PostForm struct {
	Text    string `form:"text"`
	GroupID *int64 `form:"group"`
}

func (f PostForm) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(f.Text) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "post text must not be empty"})
	}
	return errs
}

// GroupSelected reports whether the form's group matches id; used by the
// group dropdown in the post form template.
func (f PostForm) GroupSelected(id int64) bool {
	return f.GroupID != nil && *f.GroupID == id
}

type CommentForm struct {
	Text string `form:"text"`
}

func (f CommentForm) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(f.Text) == "" {
		errs = append(errs, FieldError{Field: "text", Message: "comment text must not be empty"})
	}
	return errs
}
