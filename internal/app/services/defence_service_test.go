package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/models/dto"
	"github.com/Calabangata/Graduation-System/internal/pkg/apperrors"
)

var defenceNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func newDefenceFixture() (*DefenceService, *memDB) {
	db := newMemDB()
	svc := NewDefenceService(
		fakeTx{},
		&fakeDefenceStore{db},
		&fakeDepartmentStore{db},
		&fakeStudentStore{db},
		&fakeTeacherStore{db},
		&fakeApplicationStore{db},
		&fakeStatementStore{db},
		&fakeReviewStore{db},
	)
	svc.now = func() time.Time { return defenceNow }
	return svc, db
}

// addEligibleStudent walks a student through the whole pipeline: approved
// application, filed statement and an APPROVED review.
func (db *memDB) addEligibleStudent(id, email string, supervisorID, departmentID int64) *models.Student {
	student := db.addStudent(id, email)
	app, approval := db.addApplication(student.ID, supervisorID, departmentID)
	approval.Status = models.ApprovalApproved

	statement := &models.ThesisStatement{ID: db.id(), ApplicationID: app.ID, Title: "Thesis", Body: "Body"}
	db.statements[statement.ID] = statement

	review := &models.ThesisReview{ID: db.id(), StatementID: statement.ID, ReviewerID: supervisorID, Decision: string(models.ApprovalApproved)}
	db.reviews[review.ID] = review

	return student
}

func TestCreateDefence(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	student := db.addEligibleStudent("F100001", "student@uni.bg", panelist.ID, dept.ID)

	resp, err := svc.CreateDefence(context.Background(), &dto.CreateDefenceRequest{
		Date:         defenceNow.Add(72 * time.Hour),
		Location:     "Hall 210",
		DepartmentID: dept.ID,
		StudentIDs:   []string{student.ID},
		TeacherIDs:   []int64{panelist.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hall 210", resp.Location)
	assert.Contains(t, resp.Students, student.ID)
	assert.Contains(t, resp.Teachers, "panelist@uni.bg")
	assert.Equal(t, "Defence scheduled with 1 students.", resp.Message)
}

func TestCreateDefencePastDate(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")

	_, err := svc.CreateDefence(context.Background(), &dto.CreateDefenceRequest{
		Date:         defenceNow.Add(-time.Hour),
		Location:     "Hall 210",
		DepartmentID: dept.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateDefenceDepartmentNotFound(t *testing.T) {
	svc, _ := newDefenceFixture()

	_, err := svc.CreateDefence(context.Background(), &dto.CreateDefenceRequest{
		Date:         defenceNow.Add(time.Hour),
		Location:     "Hall 210",
		DepartmentID: 42,
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateDefenceFiltersIneligibleCandidates(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	other := db.addDepartment("Mathematics")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	outsider := db.addTeacher("outsider@uni.bg", &other.ID)

	eligible := db.addEligibleStudent("F100001", "eligible@uni.bg", panelist.ID, dept.ID)
	graduated := db.addEligibleStudent("F100002", "graduated@uni.bg", panelist.ID, dept.ID)
	graduated.Graduated = true
	unreviewed := db.addStudent("F100003", "unreviewed@uni.bg")

	resp, err := svc.CreateDefence(context.Background(), &dto.CreateDefenceRequest{
		Date:         defenceNow.Add(72 * time.Hour),
		Location:     "Hall 210",
		DepartmentID: dept.ID,
		StudentIDs:   []string{eligible.ID, graduated.ID, unreviewed.ID},
		TeacherIDs:   []int64{panelist.ID, outsider.ID},
	})
	require.NoError(t, err)

	assert.Len(t, resp.Students, 1)
	assert.Contains(t, resp.Students, eligible.ID)
	assert.Len(t, resp.Teachers, 1)
	assert.Contains(t, resp.Teachers, "panelist@uni.bg")
}

func TestAssignStudents(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	student := db.addEligibleStudent("F100001", "student@uni.bg", panelist.ID, dept.ID)

	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), Location: "Hall 210", DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	resp, err := svc.AssignStudents(context.Background(), defence.ID, []string{student.ID})
	require.NoError(t, err)
	assert.Contains(t, resp.Students, student.ID)

	assigned, err := (&fakeDefenceStore{db}).ExistsByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.True(t, assigned)
}

func TestAssignStudentsUnknownFacultyNumber(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	_, err := svc.AssignStudents(context.Background(), defence.ID, []string{"F999999"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAssignStudentsNoneEligible(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	graduated := db.addEligibleStudent("F100001", "graduated@uni.bg", panelist.ID, dept.ID)
	graduated.Graduated = true

	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	_, err := svc.AssignStudents(context.Background(), defence.ID, []string{graduated.ID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAssignStudentsDefenceNotFound(t *testing.T) {
	svc, _ := newDefenceFixture()
	_, err := svc.AssignStudents(context.Background(), 42, []string{"F100001"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAssignStudentsAlreadyInAnotherDefence(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	student := db.addEligibleStudent("F100001", "student@uni.bg", panelist.ID, dept.ID)

	first := &models.ThesisDefence{Date: defenceNow.Add(48 * time.Hour), DepartmentID: dept.ID, StudentIDs: []string{student.ID}}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), first))
	second := &models.ThesisDefence{Date: defenceNow.Add(96 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), second))

	_, err := svc.AssignStudents(context.Background(), second.ID, []string{student.ID})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAssignTeachers(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	db.addTeacher("panelist@uni.bg", &dept.ID)

	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	resp, err := svc.AssignTeachers(context.Background(), defence.ID, []string{"panelist@uni.bg"})
	require.NoError(t, err)
	assert.Contains(t, resp.Teachers, "panelist@uni.bg")
}

func TestAssignTeachersUnknownEmail(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	_, err := svc.AssignTeachers(context.Background(), defence.ID, []string{"nobody@uni.bg"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestAssignTeachersNoneEligible(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	other := db.addDepartment("Mathematics")
	db.addTeacher("outsider@uni.bg", &other.ID)

	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	_, err := svc.AssignTeachers(context.Background(), defence.ID, []string{"outsider@uni.bg"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateDefence(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), Location: "Hall 210", DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	location := "Main auditorium"
	resp, err := svc.UpdateDefence(context.Background(), defence.ID, &dto.UpdateDefenceRequest{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Main auditorium", resp.Location)
	assert.Equal(t, defenceNow.Add(72*time.Hour), resp.Date)
}

func TestUpdateDefencePastDate(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	defence := &models.ThesisDefence{Date: defenceNow.Add(72 * time.Hour), DepartmentID: dept.ID}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	past := defenceNow.Add(-time.Hour)
	_, err := svc.UpdateDefence(context.Background(), defence.ID, &dto.UpdateDefenceRequest{Date: &past})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeleteDefenceReleasesMembership(t *testing.T) {
	svc, db := newDefenceFixture()
	dept := db.addDepartment("Computer Science")
	panelist := db.addTeacher("panelist@uni.bg", &dept.ID)
	student := db.addEligibleStudent("F100001", "student@uni.bg", panelist.ID, dept.ID)

	defence := &models.ThesisDefence{
		Date:         defenceNow.Add(72 * time.Hour),
		DepartmentID: dept.ID,
		StudentIDs:   []string{student.ID},
		TeacherIDs:   []int64{panelist.ID},
	}
	require.NoError(t, (&fakeDefenceStore{db}).Create(context.Background(), defence))

	require.NoError(t, svc.DeleteDefence(context.Background(), defence.ID))

	assigned, err := (&fakeDefenceStore{db}).ExistsByStudent(context.Background(), student.ID)
	require.NoError(t, err)
	assert.False(t, assigned)
	assert.Empty(t, db.defences)
}

func TestGetDefenceNotFound(t *testing.T) {
	svc, _ := newDefenceFixture()
	_, err := svc.GetDefence(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
