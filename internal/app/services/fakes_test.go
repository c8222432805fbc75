package services

import (
	"context"
	"sort"
	"strings"

	"github.com/Calabangata/Graduation-System/internal/app/models"
	"github.com/Calabangata/Graduation-System/internal/app/repositories"
)

// fakeTx is a pass-through transaction manager for workflow tests
type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memDB is shared in-memory state behind the fake stores. The fakes return
// the same sentinel errors as the pgx repositories so the services are
// exercised through their real error translation paths.
type memDB struct {
	users           map[int64]*models.User
	students        map[string]*models.Student
	teachers        map[int64]*models.Teacher
	departments     map[int64]*models.Department
	applications    map[int64]*models.ThesisApplication
	approvals       map[int64]*models.ThesisApproval
	votes           map[int64]*models.TeacherVote
	statements      map[int64]*models.ThesisStatement
	reviews         map[int64]*models.ThesisReview
	defences        map[int64]*models.ThesisDefence
	defenceStudents map[string]int64          // student -> defence
	defenceTeachers map[int64]map[int64]bool  // defence -> teacher set
	tokens          map[string]*repositories.RefreshToken
	nextID          int64
}

func newMemDB() *memDB {
	return &memDB{
		users:           make(map[int64]*models.User),
		students:        make(map[string]*models.Student),
		teachers:        make(map[int64]*models.Teacher),
		departments:     make(map[int64]*models.Department),
		applications:    make(map[int64]*models.ThesisApplication),
		approvals:       make(map[int64]*models.ThesisApproval),
		votes:           make(map[int64]*models.TeacherVote),
		statements:      make(map[int64]*models.ThesisStatement),
		reviews:         make(map[int64]*models.ThesisReview),
		defences:        make(map[int64]*models.ThesisDefence),
		defenceStudents: make(map[string]int64),
		defenceTeachers: make(map[int64]map[int64]bool),
		tokens:          make(map[string]*repositories.RefreshToken),
	}
}

func (db *memDB) id() int64 {
	db.nextID++
	return db.nextID
}

// --- fixture helpers ---

func (db *memDB) addDepartment(name string) *models.Department {
	d := &models.Department{ID: db.id(), Name: name}
	db.departments[d.ID] = d
	return d
}

func (db *memDB) addTeacher(email string, departmentID *int64) *models.Teacher {
	u := &models.User{ID: db.id(), Email: email, FirstName: "Teacher", LastName: email, RoleType: models.RoleTeacher}
	db.users[u.ID] = u
	t := &models.Teacher{ID: db.id(), UserID: u.ID, DepartmentID: departmentID, AcademicRank: "ASSISTANT_PROFESSOR", User: u}
	db.teachers[t.ID] = t
	return t
}

func (db *memDB) addStudent(id, email string) *models.Student {
	u := &models.User{ID: db.id(), Email: email, FirstName: "Student", LastName: id, RoleType: models.RoleStudent}
	db.users[u.ID] = u
	s := &models.Student{ID: id, UserID: u.ID, User: u}
	db.students[id] = s
	return s
}

func (db *memDB) addApplication(studentID string, supervisorID, departmentID int64) (*models.ThesisApplication, *models.ThesisApproval) {
	app := &models.ThesisApplication{
		ID:           db.id(),
		Topic:        "Topic",
		Purpose:      "Purpose",
		Tasks:        "Tasks",
		TechStack:    "Go",
		Active:       true,
		StudentID:    studentID,
		SupervisorID: supervisorID,
	}
	db.applications[app.ID] = app
	approval := &models.ThesisApproval{
		ID:            db.id(),
		ApplicationID: app.ID,
		DepartmentID:  departmentID,
		Status:        models.ApprovalPending,
	}
	db.approvals[approval.ID] = approval
	return app, approval
}

// --- StudentStore ---

type fakeStudentStore struct{ db *memDB }

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	f.db.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id string) (*models.Student, error) {
	s, ok := f.db.students[id]
	if !ok {
		return nil, repositories.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	for _, s := range f.db.students {
		if s.User != nil && s.User.Email == email {
			return s, nil
		}
	}
	return nil, repositories.ErrStudentNotFound
}

func (f *fakeStudentStore) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.db.students[id]
	return ok, nil
}

func (f *fakeStudentStore) ListByIDs(_ context.Context, ids []string) ([]*models.Student, error) {
	var out []*models.Student
	for _, id := range ids {
		if s, ok := f.db.students[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentStore) SetGraduated(_ context.Context, id string, graduated bool) error {
	s, ok := f.db.students[id]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	s.Graduated = graduated
	return nil
}

func (f *fakeStudentStore) SetSupervisor(_ context.Context, id string, teacherID int64) error {
	s, ok := f.db.students[id]
	if !ok {
		return repositories.ErrStudentNotFound
	}
	s.SupervisorID = &teacherID
	return nil
}

// --- TeacherStore ---

type fakeTeacherStore struct{ db *memDB }

func (f *fakeTeacherStore) Create(_ context.Context, teacher *models.Teacher) error {
	teacher.ID = f.db.id()
	f.db.teachers[teacher.ID] = teacher
	return nil
}

func (f *fakeTeacherStore) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	t, ok := f.db.teachers[id]
	if !ok {
		return nil, repositories.ErrTeacherNotFound
	}
	return t, nil
}

func (f *fakeTeacherStore) GetByEmail(_ context.Context, email string) (*models.Teacher, error) {
	for _, t := range f.db.teachers {
		if t.User != nil && t.User.Email == email {
			return t, nil
		}
	}
	return nil, repositories.ErrTeacherNotFound
}

func (f *fakeTeacherStore) ListByIDs(_ context.Context, ids []int64) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, id := range ids {
		if t, ok := f.db.teachers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTeacherStore) ListByEmails(_ context.Context, emails []string) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, email := range emails {
		for _, t := range f.db.teachers {
			if t.User != nil && t.User.Email == email {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTeacherStore) CountByDepartment(_ context.Context, departmentID int64) (int, error) {
	count := 0
	for _, t := range f.db.teachers {
		if t.DepartmentID != nil && *t.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTeacherStore) SetDepartment(_ context.Context, teacherID, departmentID int64) error {
	t, ok := f.db.teachers[teacherID]
	if !ok {
		return repositories.ErrTeacherNotFound
	}
	t.DepartmentID = &departmentID
	return nil
}

// --- DepartmentStore ---

type fakeDepartmentStore struct{ db *memDB }

func (f *fakeDepartmentStore) Create(_ context.Context, department *models.Department) error {
	for _, d := range f.db.departments {
		if d.Name == department.Name {
			return repositories.ErrDepartmentAlreadyExists
		}
	}
	department.ID = f.db.id()
	f.db.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentStore) GetByID(_ context.Context, id int64) (*models.Department, error) {
	d, ok := f.db.departments[id]
	if !ok {
		return nil, repositories.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentStore) GetByName(_ context.Context, name string) (*models.Department, error) {
	for _, d := range f.db.departments {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, repositories.ErrDepartmentNotFound
}

func (f *fakeDepartmentStore) GetAll(_ context.Context) ([]*models.Department, error) {
	out := make([]*models.Department, 0, len(f.db.departments))
	for _, d := range f.db.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- ApplicationStore ---

type fakeApplicationStore struct{ db *memDB }

func (f *fakeApplicationStore) Create(_ context.Context, app *models.ThesisApplication) error {
	app.ID = f.db.id()
	f.db.applications[app.ID] = app
	return nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.ThesisApplication, error) {
	a, ok := f.db.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationStore) HasActiveByStudent(_ context.Context, studentID string) (bool, error) {
	for _, a := range f.db.applications {
		if a.StudentID == studentID && a.Active {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationStore) GetActiveByStudentEmail(_ context.Context, email string) (*models.ThesisApplication, error) {
	for _, s := range f.db.students {
		if s.User != nil && s.User.Email == email {
			return f.GetActiveByStudentID(context.Background(), s.ID)
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (f *fakeApplicationStore) GetActiveByStudentID(_ context.Context, studentID string) (*models.ThesisApplication, error) {
	for _, a := range f.db.applications {
		if a.StudentID == studentID && a.Active {
			return a, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (f *fakeApplicationStore) Deactivate(_ context.Context, id int64) error {
	a, ok := f.db.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Active = false
	return nil
}

func (f *fakeApplicationStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.db.applications[id]; !ok {
		return repositories.ErrApplicationNotFound
	}
	delete(f.db.applications, id)
	return nil
}

func (f *fakeApplicationStore) GetAll(_ context.Context) ([]*models.ThesisApplication, error) {
	out := make([]*models.ThesisApplication, 0, len(f.db.applications))
	for _, a := range f.db.applications {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApplicationStore) ListByStudent(_ context.Context, studentID string) ([]*models.ThesisApplication, error) {
	var out []*models.ThesisApplication
	for _, a := range f.db.applications {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApplicationStore) ListBySupervisorAndStatus(_ context.Context, supervisorID int64, status models.ApprovalStatus) ([]*models.ThesisApplication, error) {
	var out []*models.ThesisApplication
	for _, a := range f.db.applications {
		if a.SupervisorID != supervisorID {
			continue
		}
		for _, ap := range f.db.approvals {
			if ap.ApplicationID == a.ID && ap.Status == status {
				out = append(out, a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeApplicationStore) SearchByTopic(_ context.Context, keyword string) ([]*models.ThesisApplication, error) {
	var out []*models.ThesisApplication
	for _, a := range f.db.applications {
		if strings.Contains(strings.ToLower(a.Topic), strings.ToLower(keyword)) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- ApprovalStore ---

type fakeApprovalStore struct{ db *memDB }

func (f *fakeApprovalStore) Create(_ context.Context, approval *models.ThesisApproval) error {
	approval.ID = f.db.id()
	f.db.approvals[approval.ID] = approval
	return nil
}

func (f *fakeApprovalStore) GetByApplicationID(_ context.Context, applicationID int64) (*models.ThesisApproval, error) {
	for _, a := range f.db.approvals {
		if a.ApplicationID == applicationID {
			return a, nil
		}
	}
	return nil, repositories.ErrApprovalNotFound
}

func (f *fakeApprovalStore) GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisApproval, error) {
	return f.GetByApplicationID(ctx, applicationID)
}

func (f *fakeApprovalStore) UpdateStatus(_ context.Context, id int64, status models.ApprovalStatus) error {
	a, ok := f.db.approvals[id]
	if !ok {
		return repositories.ErrApprovalNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeApprovalStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.db.approvals[id]; !ok {
		return repositories.ErrApprovalNotFound
	}
	delete(f.db.approvals, id)
	return nil
}

// --- VoteStore ---

type fakeVoteStore struct{ db *memDB }

func (f *fakeVoteStore) Create(_ context.Context, vote *models.TeacherVote) error {
	vote.ID = f.db.id()
	f.db.votes[vote.ID] = vote
	return nil
}

func (f *fakeVoteStore) ExistsByApprovalAndTeacher(_ context.Context, approvalID, teacherID int64) (bool, error) {
	for _, v := range f.db.votes {
		if v.ApprovalID == approvalID && v.TeacherID == teacherID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVoteStore) CountByApproval(_ context.Context, approvalID int64) (int, error) {
	count := 0
	for _, v := range f.db.votes {
		if v.ApprovalID == approvalID {
			count++
		}
	}
	return count, nil
}

func (f *fakeVoteStore) ListByApproval(_ context.Context, approvalID int64) ([]*models.TeacherVote, error) {
	var out []*models.TeacherVote
	for _, v := range f.db.votes {
		if v.ApprovalID == approvalID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeVoteStore) DeleteByApproval(_ context.Context, approvalID int64) error {
	for id, v := range f.db.votes {
		if v.ApprovalID == approvalID {
			delete(f.db.votes, id)
		}
	}
	return nil
}

// --- StatementStore ---

type fakeStatementStore struct{ db *memDB }

func (f *fakeStatementStore) Create(_ context.Context, statement *models.ThesisStatement) error {
	statement.ID = f.db.id()
	f.db.statements[statement.ID] = statement
	return nil
}

func (f *fakeStatementStore) GetByID(_ context.Context, id int64) (*models.ThesisStatement, error) {
	s, ok := f.db.statements[id]
	if !ok {
		return nil, repositories.ErrStatementNotFound
	}
	return s, nil
}

func (f *fakeStatementStore) GetByApplicationID(_ context.Context, applicationID int64) (*models.ThesisStatement, error) {
	for _, s := range f.db.statements {
		if s.ApplicationID == applicationID {
			return s, nil
		}
	}
	return nil, repositories.ErrStatementNotFound
}

func (f *fakeStatementStore) GetByApplicationIDForUpdate(ctx context.Context, applicationID int64) (*models.ThesisStatement, error) {
	return f.GetByApplicationID(ctx, applicationID)
}

func (f *fakeStatementStore) ExistsByApplicationID(_ context.Context, applicationID int64) (bool, error) {
	for _, s := range f.db.statements {
		if s.ApplicationID == applicationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStatementStore) SetGrade(_ context.Context, id int64, grade int) error {
	s, ok := f.db.statements[id]
	if !ok {
		return repositories.ErrStatementNotFound
	}
	if s.Grade != nil {
		return repositories.ErrStatementNotFound
	}
	s.Grade = &grade
	return nil
}

func (f *fakeStatementStore) ListByGradeRange(_ context.Context, min, max int) ([]*models.ThesisStatement, error) {
	var out []*models.ThesisStatement
	for _, s := range f.db.statements {
		if s.Grade != nil && *s.Grade >= min && *s.Grade <= max {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStatementStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.db.statements[id]; !ok {
		return repositories.ErrStatementNotFound
	}
	delete(f.db.statements, id)
	return nil
}

// --- ReviewStore ---

type fakeReviewStore struct{ db *memDB }

func (f *fakeReviewStore) Create(_ context.Context, review *models.ThesisReview) error {
	review.ID = f.db.id()
	f.db.reviews[review.ID] = review
	return nil
}

func (f *fakeReviewStore) GetByStatementID(_ context.Context, statementID int64) (*models.ThesisReview, error) {
	for _, r := range f.db.reviews {
		if r.StatementID == statementID {
			return r, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewStore) ExistsByStatementID(_ context.Context, statementID int64) (bool, error) {
	for _, r := range f.db.reviews {
		if r.StatementID == statementID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewStore) DeleteByStatementID(_ context.Context, statementID int64) error {
	for id, r := range f.db.reviews {
		if r.StatementID == statementID {
			delete(f.db.reviews, id)
		}
	}
	return nil
}

// --- DefenceStore ---

type fakeDefenceStore struct{ db *memDB }

func (f *fakeDefenceStore) Create(_ context.Context, defence *models.ThesisDefence) error {
	defence.ID = f.db.id()
	f.db.defences[defence.ID] = defence
	f.db.defenceTeachers[defence.ID] = make(map[int64]bool)
	for _, studentID := range defence.StudentIDs {
		f.db.defenceStudents[studentID] = defence.ID
	}
	for _, teacherID := range defence.TeacherIDs {
		f.db.defenceTeachers[defence.ID][teacherID] = true
	}
	return nil
}

func (f *fakeDefenceStore) GetByID(_ context.Context, id int64) (*models.ThesisDefence, error) {
	d, ok := f.db.defences[id]
	if !ok {
		return nil, repositories.ErrDefenceNotFound
	}
	return d, nil
}

func (f *fakeDefenceStore) GetByIDForUpdate(ctx context.Context, id int64) (*models.ThesisDefence, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeDefenceStore) GetByStudentID(_ context.Context, studentID string) (*models.ThesisDefence, error) {
	defenceID, ok := f.db.defenceStudents[studentID]
	if !ok {
		return nil, repositories.ErrDefenceNotFound
	}
	return f.db.defences[defenceID], nil
}

func (f *fakeDefenceStore) ExistsByStudent(_ context.Context, studentID string) (bool, error) {
	_, ok := f.db.defenceStudents[studentID]
	return ok, nil
}

func (f *fakeDefenceStore) IsTeacherAssigned(_ context.Context, studentID string, teacherID int64) (bool, error) {
	defenceID, ok := f.db.defenceStudents[studentID]
	if !ok {
		return false, nil
	}
	return f.db.defenceTeachers[defenceID][teacherID], nil
}

func (f *fakeDefenceStore) AddStudents(_ context.Context, defenceID int64, studentIDs []string) error {
	d, ok := f.db.defences[defenceID]
	if !ok {
		return repositories.ErrDefenceNotFound
	}
	for _, studentID := range studentIDs {
		if _, taken := f.db.defenceStudents[studentID]; !taken {
			f.db.defenceStudents[studentID] = defenceID
			d.StudentIDs = append(d.StudentIDs, studentID)
		}
	}
	return nil
}

func (f *fakeDefenceStore) AddTeachers(_ context.Context, defenceID int64, teacherIDs []int64) error {
	d, ok := f.db.defences[defenceID]
	if !ok {
		return repositories.ErrDefenceNotFound
	}
	for _, teacherID := range teacherIDs {
		if !f.db.defenceTeachers[defenceID][teacherID] {
			f.db.defenceTeachers[defenceID][teacherID] = true
			d.TeacherIDs = append(d.TeacherIDs, teacherID)
		}
	}
	return nil
}

func (f *fakeDefenceStore) Update(_ context.Context, defence *models.ThesisDefence) error {
	if _, ok := f.db.defences[defence.ID]; !ok {
		return repositories.ErrDefenceNotFound
	}
	f.db.defences[defence.ID] = defence
	return nil
}

func (f *fakeDefenceStore) ClearMembers(_ context.Context, defenceID int64) error {
	d, ok := f.db.defences[defenceID]
	if !ok {
		return repositories.ErrDefenceNotFound
	}
	for studentID, id := range f.db.defenceStudents {
		if id == defenceID {
			delete(f.db.defenceStudents, studentID)
		}
	}
	f.db.defenceTeachers[defenceID] = make(map[int64]bool)
	d.StudentIDs = nil
	d.TeacherIDs = nil
	return nil
}

func (f *fakeDefenceStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.db.defences[id]; !ok {
		return repositories.ErrDefenceNotFound
	}
	delete(f.db.defences, id)
	delete(f.db.defenceTeachers, id)
	return nil
}

func (f *fakeDefenceStore) GetAll(_ context.Context) ([]*models.ThesisDefence, error) {
	out := make([]*models.ThesisDefence, 0, len(f.db.defences))
	for _, d := range f.db.defences {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- UserStore ---

type fakeUserStore struct{ db *memDB }

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.db.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	user.ID = f.db.id()
	f.db.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.db.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.db.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// --- TokenStore ---

type fakeTokenStore struct{ db *memDB }

func (f *fakeTokenStore) Save(_ context.Context, token *repositories.RefreshToken) error {
	for t, stored := range f.db.tokens {
		if stored.UserID == token.UserID {
			delete(f.db.tokens, t)
		}
	}
	f.db.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) Get(_ context.Context, token string) (*repositories.RefreshToken, error) {
	t, ok := f.db.tokens[token]
	if !ok {
		return nil, repositories.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokenStore) Delete(_ context.Context, token string) error {
	delete(f.db.tokens, token)
	return nil
}
