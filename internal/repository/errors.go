package repository

import "errors"

// 事务内检测到的业务冲突，由 service 层转换为对外错误
var (
	ErrAlreadyEnrolled  = errors.New("already enrolled")
	ErrAlreadySubmitted = errors.New("already submitted")
	ErrOptionMismatch   = errors.New("option does not belong to question")
	ErrLastOption       = errors.New("last option")
	ErrParentMismatch   = errors.New("parent post belongs to another discussion")
)
