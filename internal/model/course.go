package model

import (
	"time"
)

const DefaultCourseColor = "#0282c6"

// swagger:model AcademicYear
type AcademicYear struct {
	BaseModel
	Year     string `gorm:"size:20;uniqueIndex;not null" json:"year"`
	IsActive bool   `gorm:"not null;default:false" json:"is_active"`
}

func (AcademicYear) TableName() string {
	return "academic_years"
}

// swagger:model Course
type Course struct {
	BaseModel
	Name           string `gorm:"size:150;not null" json:"name"`
	ClassCode      string `gorm:"size:8;uniqueIndex;not null" json:"class_code"`
	Color          string `gorm:"size:7;not null" json:"color"`
	AcademicYearID uint   `gorm:"index;not null" json:"academic_year_id"`
	TeacherID      uint   `gorm:"index;not null" json:"teacher_id"`
	Teacher        *User  `gorm:"foreignKey:TeacherID" json:"-"`
	Students       []User `gorm:"many2many:enrollments;" json:"-"`
}

func (Course) TableName() string {
	return "courses"
}

// Link 课程外部链接
type Link struct {
	BaseModel
	Name     string `gorm:"size:200;not null" json:"name"`
	URL      string `gorm:"size:500;not null" json:"url"`
	CourseID uint   `gorm:"index;not null" json:"course_id"`
}

func (Link) TableName() string {
	return "links"
}

// CourseFile 课程文件，StartDate/EndDate 限定学生可见时间窗口
type CourseFile struct {
	BaseModel
	Name         string     `gorm:"size:200;not null" json:"name"`
	Description  *string    `gorm:"type:text" json:"description"`
	ObjectName   string     `gorm:"size:500;not null" json:"-"`
	OriginalName string     `gorm:"size:255;not null" json:"filename"`
	ContentType  string     `gorm:"size:100" json:"content_type"`
	Size         int64      `json:"size"`
	CourseID     uint       `gorm:"index;not null" json:"course_id"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

func (CourseFile) TableName() string {
	return "course_files"
}

// VisibleAt 判断文件在 t 时刻是否处于开放窗口内
func (f *CourseFile) VisibleAt(t time.Time) bool {
	if f.StartDate != nil && t.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.After(*f.EndDate) {
		return false
	}
	return true
}
