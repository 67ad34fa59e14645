package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

// ErrStudentNotFound indicates the id does not reference a student account.
var ErrStudentNotFound = errors.New("student not found")

// ReportService builds the derived per-student report. It is read-only: two
// calls with no grading in between produce identical output.
type ReportService interface {
	ListStudents(ctx context.Context, principal Principal) ([]dto.UserResponse, error)
	BuildReport(ctx context.Context, principal Principal, studentID uint) (dto.StudentReportResponse, error)
}

type reportService struct {
	users           repository.UserRepository
	taskSubmissions repository.TaskSubmissionRepository
	quizSubmissions repository.QuizSubmissionRepository
	games           repository.GameRepository
	logger          zerolog.Logger
}

// NewReportService constructs a ReportService instance.
func NewReportService(users repository.UserRepository, taskSubs repository.TaskSubmissionRepository, quizSubs repository.QuizSubmissionRepository, games repository.GameRepository, logger zerolog.Logger) ReportService {
	return &reportService{
		users:           users,
		taskSubmissions: taskSubs,
		quizSubmissions: quizSubs,
		games:           games,
		logger:          logger.With().Str("component", "report_service").Logger(),
	}
}

func (s *reportService) ListStudents(ctx context.Context, principal Principal) ([]dto.UserResponse, error) {
	if !principal.IsTeacher() {
		return nil, ErrForbidden
	}

	students, err := s.users.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(students), nil
}

// BuildReport computes the academic score (sum of graded task points and
// graded quiz scores; ungraded submissions contribute nothing) and per-skill
// means over game scores whose game still exists. A student with no
// surviving scores gets an empty map, not a map of zeros.
func (s *reportService) BuildReport(ctx context.Context, principal Principal, studentID uint) (dto.StudentReportResponse, error) {
	if !principal.IsTeacher() && principal.ID != studentID {
		return dto.StudentReportResponse{}, ErrForbidden
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentReportResponse{}, ErrStudentNotFound
		}
		return dto.StudentReportResponse{}, err
	}
	if student.Role != models.RoleStudent {
		return dto.StudentReportResponse{}, ErrStudentNotFound
	}

	taskPoints, err := s.taskSubmissions.AwardedPointsTotal(ctx, studentID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}

	quizPoints, err := s.quizSubmissions.GradedScoreTotal(ctx, studentID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}

	averages, err := s.games.SkillAverages(ctx, studentID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}

	softSkills := make(map[string]float64, len(averages))
	for _, row := range averages {
		softSkills[row.Skill] = row.Average
	}

	return dto.StudentReportResponse{
		User:          dto.NewUserResponse(student),
		AcademicScore: taskPoints + quizPoints,
		SoftSkills:    softSkills,
	}, nil
}
