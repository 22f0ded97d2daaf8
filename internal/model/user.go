package model

type UserRole string

const (
	Teacher UserRole = "teacher"
	Student UserRole = "student"
)

func (r UserRole) Valid() bool {
	return r == Teacher || r == Student
}

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsTeacher() bool {
	return u != nil && u.Role == Teacher
}

func (u *User) IsStudent() bool {
	return u != nil && u.Role == Student
}
