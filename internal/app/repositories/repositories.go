package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles every repository for dependency wiring
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	TeacherRepository     *TeacherRepository
	DepartmentRepository  *DepartmentRepository
	ApplicationRepository *ApplicationRepository
	ApprovalRepository    *ApprovalRepository
	VoteRepository        *VoteRepository
	StatementRepository   *StatementRepository
	ReviewRepository      *ReviewRepository
	DefenceRepository     *DefenceRepository
	TokenRepository       *TokenRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(pool),
		StudentRepository:     NewStudentRepository(pool),
		TeacherRepository:     NewTeacherRepository(pool),
		DepartmentRepository:  NewDepartmentRepository(pool),
		ApplicationRepository: NewApplicationRepository(pool),
		ApprovalRepository:    NewApprovalRepository(pool),
		VoteRepository:        NewVoteRepository(pool),
		StatementRepository:   NewStatementRepository(pool),
		ReviewRepository:      NewReviewRepository(pool),
		DefenceRepository:     NewDefenceRepository(pool),
		TokenRepository:       NewTokenRepository(pool),
	}
}
