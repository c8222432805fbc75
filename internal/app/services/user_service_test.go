package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
)

func newUserFixture() (*UserService, *memDB) {
	db := newMemDB()
	svc := NewUserService(
		&fakeUserStore{db: db},
		&fakeStudentStore{db: db},
		&fakeTeacherStore{db: db},
		&fakeDepartmentStore{db: db},
	)
	return svc, db
}

func TestGetProfileStudent(t *testing.T) {
	svc, db := newUserFixture()
	student := db.addStudent("F000001", "student@uni.bg")

	profile, err := svc.GetProfile(context.Background(), student.UserID)
	require.NoError(t, err)

	assert.Equal(t, student.UserID, profile.UserID)
	assert.Equal(t, "student@uni.bg", profile.Email)
	assert.Equal(t, string(models.RoleStudent), profile.Role)
	assert.Equal(t, "F000001", profile.FacultyNumber)
	require.NotNil(t, profile.Graduated)
	assert.False(t, *profile.Graduated)
	assert.Empty(t, profile.AcademicRank)
}

func TestGetProfileTeacher(t *testing.T) {
	svc, db := newUserFixture()
	department := db.addDepartment("Software Engineering")
	teacher := db.addTeacher("teacher@uni.bg", &department.ID)

	profile, err := svc.GetProfile(context.Background(), teacher.UserID)
	require.NoError(t, err)

	assert.Equal(t, string(models.RoleTeacher), profile.Role)
	assert.Equal(t, "ASSISTANT_PROFESSOR", profile.AcademicRank)
	assert.Equal(t, "Software Engineering", profile.Department)
	assert.Nil(t, profile.Graduated)
}

func TestGetProfileTeacherWithoutDepartment(t *testing.T) {
	svc, db := newUserFixture()
	teacher := db.addTeacher("teacher@uni.bg", nil)

	profile, err := svc.GetProfile(context.Background(), teacher.UserID)
	require.NoError(t, err)

	assert.Equal(t, "ASSISTANT_PROFESSOR", profile.AcademicRank)
	assert.Empty(t, profile.Department)
}

func TestGetProfileUserNotFound(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetStudent(t *testing.T) {
	svc, db := newUserFixture()
	supervisor := db.addTeacher("supervisor@uni.bg", nil)
	student := db.addStudent("F000001", "student@uni.bg")
	student.SupervisorID = &supervisor.ID

	resp, err := svc.GetStudent(context.Background(), "F000001")
	require.NoError(t, err)

	assert.Equal(t, "F000001", resp.FacultyNumber)
	assert.Equal(t, "student@uni.bg", resp.Email)
	assert.False(t, resp.Graduated)
	assert.Equal(t, supervisor.User.FullName(), resp.SupervisorName)
}

func TestGetStudentWithoutSupervisor(t *testing.T) {
	svc, db := newUserFixture()
	db.addStudent("F000001", "student@uni.bg")

	resp, err := svc.GetStudent(context.Background(), "F000001")
	require.NoError(t, err)
	assert.Empty(t, resp.SupervisorName)
}

func TestGetStudentNotFound(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetStudent(context.Background(), "F999999")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestGetTeacher(t *testing.T) {
	svc, db := newUserFixture()
	department := db.addDepartment("Software Engineering")
	teacher := db.addTeacher("teacher@uni.bg", &department.ID)

	resp, err := svc.GetTeacher(context.Background(), teacher.ID)
	require.NoError(t, err)

	assert.Equal(t, teacher.ID, resp.ID)
	assert.Equal(t, "teacher@uni.bg", resp.Email)
	assert.Equal(t, "ASSISTANT_PROFESSOR", resp.AcademicRank)
	assert.Equal(t, "Software Engineering", resp.DepartmentName)
}

func TestGetTeacherNotFound(t *testing.T) {
	svc, _ := newUserFixture()

	_, err := svc.GetTeacher(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
