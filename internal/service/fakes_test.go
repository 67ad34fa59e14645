package service

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
)

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) GetByID(ctx context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepo) SaveProfile(ctx context.Context, user *models.User, profile *models.UserProfile) error {
	stored, ok := m.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = user.Name
	profile.UserID = user.ID
	stored.Profile = profile
	m.users[user.ID] = stored
	return nil
}

func (m *memoryUserRepo) ListStudents(ctx context.Context) ([]models.User, error) {
	students := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		if user.Role == models.RoleStudent {
			students = append(students, user)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func (m *memoryUserRepo) TopStudents(ctx context.Context, limit int) ([]models.User, error) {
	students, _ := m.ListStudents(ctx)
	sort.Slice(students, func(i, j int) bool {
		if students[i].Points != students[j].Points {
			return students[i].Points > students[j].Points
		}
		return students[i].ID < students[j].ID
	})
	if len(students) > limit {
		students = students[:limit]
	}
	return students, nil
}

func (m *memoryUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *memoryUserRepo) addPoints(userID uint, points int) {
	user := m.users[userID]
	user.Points += points
	m.users[userID] = user
}

type memoryQuizRepo struct {
	quizzes map[uint]models.Quiz
}

func newMemoryQuizRepo() *memoryQuizRepo {
	return &memoryQuizRepo{quizzes: make(map[uint]models.Quiz)}
}

func (m *memoryQuizRepo) GetByID(ctx context.Context, id uint) (models.Quiz, error) {
	quiz, ok := m.quizzes[id]
	if !ok {
		return models.Quiz{}, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

type memoryQuizSubmissionRepo struct {
	submissions map[uint]models.QuizSubmission
	nextID      uint
	users       *memoryUserRepo
}

func newMemoryQuizSubmissionRepo(users *memoryUserRepo) *memoryQuizSubmissionRepo {
	return &memoryQuizSubmissionRepo{submissions: make(map[uint]models.QuizSubmission), nextID: 1, users: users}
}

func (m *memoryQuizSubmissionRepo) Create(ctx context.Context, submission *models.QuizSubmission) error {
	for _, existing := range m.submissions {
		if existing.QuizID == submission.QuizID && existing.UserID == submission.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	submission.ID = m.nextID
	m.nextID++
	m.submissions[submission.ID] = *submission
	return nil
}

func (m *memoryQuizSubmissionRepo) GetByID(ctx context.Context, id uint) (models.QuizSubmission, error) {
	submission, ok := m.submissions[id]
	if !ok {
		return models.QuizSubmission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (m *memoryQuizSubmissionRepo) GetByQuizAndUser(ctx context.Context, quizID, userID uint) (models.QuizSubmission, error) {
	for _, submission := range m.submissions {
		if submission.QuizID == quizID && submission.UserID == userID {
			return submission, nil
		}
	}
	return models.QuizSubmission{}, gorm.ErrRecordNotFound
}

func (m *memoryQuizSubmissionRepo) ListUngraded(ctx context.Context) ([]models.QuizSubmission, error) {
	pending := make([]models.QuizSubmission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if !submission.IsGraded {
			pending = append(pending, submission)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (m *memoryQuizSubmissionRepo) Grade(ctx context.Context, id uint, score int) error {
	submission, ok := m.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if submission.IsGraded {
		return repository.ErrAlreadyGraded
	}
	submission.IsGraded = true
	submission.Score = &score
	m.submissions[id] = submission
	if m.users != nil {
		m.users.addPoints(submission.UserID, score)
	}
	return nil
}

func (m *memoryQuizSubmissionRepo) GradedScoreTotal(ctx context.Context, userID uint) (int, error) {
	total := 0
	for _, submission := range m.submissions {
		if submission.UserID == userID && submission.IsGraded && submission.Score != nil {
			total += *submission.Score
		}
	}
	return total, nil
}

type memoryTaskRepo struct {
	tasks  map[uint]models.AssignedTask
	nextID uint
}

func newMemoryTaskRepo() *memoryTaskRepo {
	return &memoryTaskRepo{tasks: make(map[uint]models.AssignedTask), nextID: 1}
}

func (m *memoryTaskRepo) ListByDeadline(ctx context.Context) ([]models.AssignedTask, error) {
	tasks := make([]models.AssignedTask, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Deadline.Before(tasks[j].Deadline) })
	return tasks, nil
}

func (m *memoryTaskRepo) ListNewestFirst(ctx context.Context) ([]models.AssignedTask, error) {
	tasks := make([]models.AssignedTask, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID > tasks[j].ID })
	return tasks, nil
}

func (m *memoryTaskRepo) GetByID(ctx context.Context, id uint) (models.AssignedTask, error) {
	task, ok := m.tasks[id]
	if !ok {
		return models.AssignedTask{}, gorm.ErrRecordNotFound
	}
	return task, nil
}

func (m *memoryTaskRepo) Create(ctx context.Context, task *models.AssignedTask) error {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = *task
	return nil
}

type memoryTaskSubmissionRepo struct {
	submissions map[uint]models.TaskSubmission
	nextID      uint
	users       *memoryUserRepo
}

func newMemoryTaskSubmissionRepo(users *memoryUserRepo) *memoryTaskSubmissionRepo {
	return &memoryTaskSubmissionRepo{submissions: make(map[uint]models.TaskSubmission), nextID: 1, users: users}
}

func (m *memoryTaskSubmissionRepo) Create(ctx context.Context, submission *models.TaskSubmission) error {
	for _, existing := range m.submissions {
		if existing.TaskID == submission.TaskID && existing.UserID == submission.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	submission.ID = m.nextID
	m.nextID++
	m.submissions[submission.ID] = *submission
	return nil
}

func (m *memoryTaskSubmissionRepo) GetByID(ctx context.Context, id uint) (models.TaskSubmission, error) {
	submission, ok := m.submissions[id]
	if !ok {
		return models.TaskSubmission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (m *memoryTaskSubmissionRepo) GetByTaskAndUser(ctx context.Context, taskID, userID uint) (models.TaskSubmission, error) {
	for _, submission := range m.submissions {
		if submission.TaskID == taskID && submission.UserID == userID {
			return submission, nil
		}
	}
	return models.TaskSubmission{}, gorm.ErrRecordNotFound
}

func (m *memoryTaskSubmissionRepo) ListUngraded(ctx context.Context) ([]models.TaskSubmission, error) {
	pending := make([]models.TaskSubmission, 0, len(m.submissions))
	for _, submission := range m.submissions {
		if !submission.Approved {
			pending = append(pending, submission)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	return pending, nil
}

func (m *memoryTaskSubmissionRepo) Grade(ctx context.Context, id uint, points int) error {
	submission, ok := m.submissions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if submission.Approved {
		return repository.ErrAlreadyGraded
	}
	submission.Approved = true
	submission.PointsAwarded = points
	m.submissions[id] = submission
	if m.users != nil {
		m.users.addPoints(submission.UserID, points)
	}
	return nil
}

func (m *memoryTaskSubmissionRepo) AwardedPointsTotal(ctx context.Context, userID uint) (int, error) {
	total := 0
	for _, submission := range m.submissions {
		if submission.UserID == userID && submission.Approved {
			total += submission.PointsAwarded
		}
	}
	return total, nil
}

type memoryGameRepo struct {
	games  map[uint]models.Game
	scores []models.GameScore
	nextID uint
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[uint]models.Game), nextID: 1}
}

func (m *memoryGameRepo) List(ctx context.Context) ([]models.Game, error) {
	games := make([]models.Game, 0, len(m.games))
	for _, game := range m.games {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games, nil
}

func (m *memoryGameRepo) GetByID(ctx context.Context, id uint) (models.Game, error) {
	game, ok := m.games[id]
	if !ok {
		return models.Game{}, gorm.ErrRecordNotFound
	}
	return game, nil
}

func (m *memoryGameRepo) Create(ctx context.Context, game *models.Game) error {
	game.ID = m.nextID
	m.nextID++
	m.games[game.ID] = *game
	return nil
}

func (m *memoryGameRepo) Delete(ctx context.Context, id uint) error {
	delete(m.games, id)
	kept := m.scores[:0]
	for _, score := range m.scores {
		if score.GameID != id {
			kept = append(kept, score)
		}
	}
	m.scores = kept
	return nil
}

func (m *memoryGameRepo) CreateScore(ctx context.Context, score *models.GameScore) error {
	score.ID = uint(len(m.scores) + 1)
	m.scores = append(m.scores, *score)
	return nil
}

func (m *memoryGameRepo) SkillAverages(ctx context.Context, userID uint) ([]repository.SkillAverage, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, score := range m.scores {
		if score.UserID != userID {
			continue
		}
		game, ok := m.games[score.GameID]
		if !ok {
			continue
		}
		sums[game.Skill] += float64(score.Score)
		counts[game.Skill]++
	}

	rows := make([]repository.SkillAverage, 0, len(sums))
	for skill, sum := range sums {
		rows = append(rows, repository.SkillAverage{Skill: skill, Average: sum / float64(counts[skill])})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Skill < rows[j].Skill })
	return rows, nil
}

func (m *memoryGameRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.games)), nil
}

type memoryNoticeRepo struct {
	notices []models.Notice
	nextID  uint
}

func newMemoryNoticeRepo() *memoryNoticeRepo {
	return &memoryNoticeRepo{nextID: 1}
}

func (m *memoryNoticeRepo) Latest(ctx context.Context) (models.Notice, error) {
	if len(m.notices) == 0 {
		return models.Notice{}, gorm.ErrRecordNotFound
	}
	return m.notices[len(m.notices)-1], nil
}

func (m *memoryNoticeRepo) Replace(ctx context.Context, notice *models.Notice) error {
	notice.ID = m.nextID
	m.nextID++
	m.notices = []models.Notice{*notice}
	return nil
}

func (m *memoryNoticeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.notices)), nil
}

type publishedEvent struct {
	Subject string
	Data    []byte
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *capturingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Subject: subject, Data: data})
	return nil
}

func (p *capturingPublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}
