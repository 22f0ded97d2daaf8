// Package testutil 提供测试用的内存数据库与样例数据
package testutil

import (
	"fmt"
	"testing"

	"aldudu_backend/internal/model"
	"aldudu_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB 每个测试独立的内存 SQLite，单连接，事务内只能使用 tx
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("release"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser 密码统一为 "123"
func CreateUser(t *testing.T, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateYear(t *testing.T, db *gorm.DB, year string, active bool) *model.AcademicYear {
	t.Helper()
	y := &model.AcademicYear{Year: year, IsActive: active}
	require.NoError(t, db.Create(y).Error)
	return y
}

func CreateCourse(t *testing.T, db *gorm.DB, name, code string, teacher *model.User, year *model.AcademicYear) *model.Course {
	t.Helper()
	c := &model.Course{
		Name:           name,
		ClassCode:      code,
		Color:          model.DefaultCourseColor,
		AcademicYearID: year.ID,
		TeacherID:      teacher.ID,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func Enroll(t *testing.T, db *gorm.DB, course *model.Course, student *model.User) {
	t.Helper()
	require.NoError(t, db.Model(course).Association("Students").Append(student))
}

// Fixture 一位老师、两位学生、一个课程（student 已选课，outsider 未选课）
type Fixture struct {
	DB       *gorm.DB
	Teacher  *model.User
	Student  *model.User
	Outsider *model.User
	Year     *model.AcademicYear
	Course   *model.Course
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	db := NewDB(t)
	f := &Fixture{DB: db}
	f.Teacher = CreateUser(t, db, "Bapak Budi", "guru@aldudu.com", model.Teacher)
	f.Student = CreateUser(t, db, "Siti Murid", "murid@aldudu.com", model.Student)
	f.Outsider = CreateUser(t, db, "Andi Luar", "andi@aldudu.com", model.Student)
	f.Year = CreateYear(t, db, "2025/2026", true)
	f.Course = CreateCourse(t, db, "Matematika XI-A", "MAT11A", f.Teacher, f.Year)
	Enroll(t, db, f.Course, f.Student)
	return f
}
