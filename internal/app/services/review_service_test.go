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

var reviewNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func newReviewFixture() (*ReviewService, *memDB) {
	db := newMemDB()
	svc := NewReviewService(fakeTx{}, &fakeStatementStore{db}, &fakeReviewStore{db}, &fakeTeacherStore{db})
	svc.now = func() time.Time { return reviewNow }
	return svc, db
}

func TestCreateReview(t *testing.T) {
	svc, db := newReviewFixture()
	dept := db.addDepartment("Computer Science")
	db.addTeacher("reviewer@uni.bg", &dept.ID)
	statement := &models.ThesisStatement{ApplicationID: 1, Title: "Thesis", Body: "Body"}
	require.NoError(t, (&fakeStatementStore{db}).Create(context.Background(), statement))

	resp, err := svc.CreateReview(context.Background(), "reviewer@uni.bg", &dto.CreateReviewRequest{
		StatementID:      statement.ID,
		Body:             "Solid work",
		ApprovalDecision: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.ApprovalApproved), resp.Decision)
	assert.Equal(t, reviewNow, resp.UploadedAt)
	assert.NotEmpty(t, resp.ReviewerName)
}

func TestCreateReviewDefaultsToRejected(t *testing.T) {
	svc, db := newReviewFixture()
	dept := db.addDepartment("Computer Science")
	db.addTeacher("reviewer@uni.bg", &dept.ID)
	statement := &models.ThesisStatement{ApplicationID: 1}
	require.NoError(t, (&fakeStatementStore{db}).Create(context.Background(), statement))

	resp, err := svc.CreateReview(context.Background(), "reviewer@uni.bg", &dto.CreateReviewRequest{
		StatementID: statement.ID,
		Body:        "Needs more work",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.ApprovalRejected), resp.Decision)
}

func TestCreateReviewStatementNotFound(t *testing.T) {
	svc, db := newReviewFixture()
	dept := db.addDepartment("Computer Science")
	db.addTeacher("reviewer@uni.bg", &dept.ID)

	_, err := svc.CreateReview(context.Background(), "reviewer@uni.bg", &dto.CreateReviewRequest{
		StatementID: 42,
		Body:        "Body",
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateReviewReviewerNotFound(t *testing.T) {
	svc, db := newReviewFixture()
	statement := &models.ThesisStatement{ApplicationID: 1}
	require.NoError(t, (&fakeStatementStore{db}).Create(context.Background(), statement))

	_, err := svc.CreateReview(context.Background(), "nobody@uni.bg", &dto.CreateReviewRequest{
		StatementID: statement.ID,
		Body:        "Body",
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateReviewDuplicate(t *testing.T) {
	svc, db := newReviewFixture()
	dept := db.addDepartment("Computer Science")
	db.addTeacher("reviewer@uni.bg", &dept.ID)
	statement := &models.ThesisStatement{ApplicationID: 1}
	require.NoError(t, (&fakeStatementStore{db}).Create(context.Background(), statement))

	req := &dto.CreateReviewRequest{StatementID: statement.ID, Body: "Body", ApprovalDecision: boolPtr(true)}
	_, err := svc.CreateReview(context.Background(), "reviewer@uni.bg", req)
	require.NoError(t, err)

	_, err = svc.CreateReview(context.Background(), "reviewer@uni.bg", req)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestGetReviewByStatement(t *testing.T) {
	svc, db := newReviewFixture()
	dept := db.addDepartment("Computer Science")
	reviewer := db.addTeacher("reviewer@uni.bg", &dept.ID)
	statement := &models.ThesisStatement{ApplicationID: 1}
	require.NoError(t, (&fakeStatementStore{db}).Create(context.Background(), statement))
	db.reviews[db.id()] = &models.ThesisReview{
		ID:          db.nextID,
		StatementID: statement.ID,
		ReviewerID:  reviewer.ID,
		Body:        "Solid work",
		Decision:    string(models.ApprovalApproved),
		UploadedAt:  reviewNow,
	}

	resp, err := svc.GetReviewByStatement(context.Background(), statement.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solid work", resp.Body)
	assert.Equal(t, string(models.ApprovalApproved), resp.Decision)
}

func TestGetReviewByStatementNotFound(t *testing.T) {
	svc, _ := newReviewFixture()
	_, err := svc.GetReviewByStatement(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
