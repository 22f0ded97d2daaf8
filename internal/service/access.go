package service

import (
	"aldudu_backend/internal/model"
	"aldudu_backend/internal/repository"
	"aldudu_backend/internal/util"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Actor 当前请求的用户
type Actor struct {
	UserID uint
	Role   model.UserRole
}

func (a Actor) IsTeacher() bool { return a.Role == model.Teacher }

func (a Actor) IsStudent() bool { return a.Role == model.Student }

// Access 课程归属与选课关系的统一权限判断
type Access struct {
	Courses *repository.CourseRepository
}

func NewAccess(courses *repository.CourseRepository) *Access {
	return &Access{Courses: courses}
}

// notFound 将 gorm 的记录不存在转换为业务错误
func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func (a *Access) Course(ctx context.Context, id uint) (*model.Course, error) {
	course, err := a.Courses.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, util.ErrCourseNotFound)
	}
	return course, nil
}

func (a *Access) IsCourseTeacher(course *model.Course, actor Actor) bool {
	return course.TeacherID == actor.UserID
}

func (a *Access) IsEnrolled(ctx context.Context, course *model.Course, actor Actor) (bool, error) {
	return a.Courses.IsEnrolled(ctx, course.ID, actor.UserID)
}

// CanViewCourse 任课老师或已选课学生
func (a *Access) CanViewCourse(ctx context.Context, course *model.Course, actor Actor) (bool, error) {
	if a.IsCourseTeacher(course, actor) {
		return true, nil
	}
	return a.IsEnrolled(ctx, course, actor)
}

func (a *Access) RequireCourseTeacher(course *model.Course, actor Actor) error {
	if !a.IsCourseTeacher(course, actor) {
		return util.ErrNotCourseTeacher
	}
	return nil
}

func (a *Access) RequireViewer(ctx context.Context, course *model.Course, actor Actor) error {
	ok, err := a.CanViewCourse(ctx, course, actor)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrNotEnrolled
	}
	return nil
}

// DiscussionAction 讨论区中需要授权的操作
type DiscussionAction string

const (
	ActionEditPost        DiscussionAction = "edit_post"
	ActionDeletePost      DiscussionAction = "delete_post"
	ActionCloseDiscussion DiscussionAction = "close_discussion"
)

// discussionSubject 判断权限所需的关系
type discussionSubject struct {
	isAuthor            bool
	isDiscussionCreator bool
}

// discussionRules 编辑：作者；删除：作者或讨论发起人；关闭：讨论发起人
var discussionRules = map[DiscussionAction]func(discussionSubject) bool{
	ActionEditPost: func(s discussionSubject) bool {
		return s.isAuthor
	},
	ActionDeletePost: func(s discussionSubject) bool {
		return s.isAuthor || s.isDiscussionCreator
	},
	ActionCloseDiscussion: func(s discussionSubject) bool {
		return s.isDiscussionCreator
	},
}

// CanOnDiscussion post 为空时只判断讨论本身
func CanOnDiscussion(action DiscussionAction, actor Actor, discussion *model.Discussion, post *model.Post) bool {
	rule, ok := discussionRules[action]
	if !ok {
		return false
	}
	subject := discussionSubject{isDiscussionCreator: discussion.UserID == actor.UserID}
	if post != nil {
		subject.isAuthor = post.UserID == actor.UserID
	}
	return rule(subject)
}
