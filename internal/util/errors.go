package util

import "errors"

// 错误分类，HandleError 按分类映射状态码
var (
	ErrValidation       = errors.New("invalid request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// AppError 携带面向用户的消息，同时保留所属分类
type AppError struct {
	Kind    error
	Message string
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Kind }

func NewError(kind error, message string) error {
	return &AppError{Kind: kind, Message: message}
}

// Invalid 构造 400 类错误
func Invalid(message string) error {
	return NewError(ErrValidation, message)
}

var (
	ErrInvalidCredentials = NewError(ErrUnauthorized, "invalid email or password")
	ErrTokenRevoked       = NewError(ErrUnauthorized, "token has been revoked")

	ErrNotTeacher          = NewError(ErrPermissionDenied, "only teachers can perform this action")
	ErrNotStudent          = NewError(ErrPermissionDenied, "only students can perform this action")
	ErrNotCourseTeacher    = NewError(ErrPermissionDenied, "you do not teach this course")
	ErrNotEnrolled         = NewError(ErrPermissionDenied, "not enrolled in this course")
	ErrTeacherCannotSubmit = NewError(ErrPermissionDenied, "teachers cannot submit quizzes")
	ErrOptionNotInQuestion = NewError(ErrPermissionDenied, "option does not belong to this question")
	ErrDiscussionClosed    = NewError(ErrPermissionDenied, "discussion is closed")
	ErrFileNotAvailable    = NewError(ErrPermissionDenied, "file is not available at this time")

	ErrUserNotFound         = NewError(ErrNotFound, "user not found")
	ErrCourseNotFound       = NewError(ErrNotFound, "course not found")
	ErrClassCodeNotFound    = NewError(ErrNotFound, "no course with this class code")
	ErrQuizNotFound         = NewError(ErrNotFound, "quiz not found")
	ErrQuestionNotFound     = NewError(ErrNotFound, "question not found")
	ErrOptionNotFound       = NewError(ErrNotFound, "option not found")
	ErrSubmissionNotFound   = NewError(ErrNotFound, "no submission found")
	ErrLinkNotFound         = NewError(ErrNotFound, "link not found")
	ErrFileNotFound         = NewError(ErrNotFound, "file not found")
	ErrDiscussionNotFound   = NewError(ErrNotFound, "discussion not found")
	ErrPostNotFound         = NewError(ErrNotFound, "post not found")
	ErrAcademicYearNotFound = NewError(ErrNotFound, "academic year not found")

	ErrAlreadyEnrolled = NewError(ErrConflict, "already enrolled in this course")

	ErrAlreadySubmitted    = Invalid("quiz already submitted")
	ErrNoAnswers           = Invalid("no answers provided")
	ErrLastOption          = Invalid("cannot delete the last option")
	ErrInvalidClassCode    = Invalid("invalid class code")
	ErrInvalidQuestionType = Invalid("invalid question type")
)
