package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ecolearners/platform-api/internal/dto"
	"github.com/ecolearners/platform-api/internal/models"
)

type staticUploader struct {
	names []string
	url   string
}

func (u *staticUploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	u.names = append(u.names, name)
	return u.url, nil
}

func newTaskFixture(t *testing.T) (*memoryTaskRepo, *memoryTaskSubmissionRepo, *staticUploader, TaskService) {
	t.Helper()

	tasks := newMemoryTaskRepo()
	submissions := newMemoryTaskSubmissionRepo(nil)
	uploader := &staticUploader{url: "https://cdn.example.com/asset"}
	svc := NewTaskService(tasks, submissions, validator.New(validator.WithRequiredStructEnabled()), uploader, zerolog.Nop())
	return tasks, submissions, uploader, svc
}

func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestTaskCreateRequiresTeacher(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	_, err := svc.Create(context.Background(), Principal{ID: 1, Role: models.RoleStudent}, dto.TaskCreateRequest{
		Title: "Plant a sapling", Description: "Photo proof required", Points: 50, Deadline: "2030-01-01",
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestTaskCreateRejectsPastDeadline(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	_, err := svc.Create(context.Background(), Principal{ID: 1, Role: models.RoleTeacher}, dto.TaskCreateRequest{
		Title: "Plant a sapling", Description: "Photo proof required", Points: 50, Deadline: "2020-01-01",
	})
	require.ErrorIs(t, err, ErrDeadlineInPast)
}

func TestTaskCreateKeepsDeadlineOpenThroughTheDay(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)

	deadline := time.Now().Add(72 * time.Hour).Format("2006-01-02")
	created, err := svc.Create(context.Background(), Principal{ID: 1, Role: models.RoleTeacher}, dto.TaskCreateRequest{
		Title: "Plant a sapling", Description: "Photo proof required", Points: 50, Deadline: deadline,
	})
	require.NoError(t, err)

	stored, err := tasks.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, 23, stored.Deadline.Hour(), "task stays open until the end of the deadline day")
}

func TestTaskSubmitUploadsAndRecordsSubmission(t *testing.T) {
	tasks, submissions, uploader, svc := newTaskFixture(t)

	task := models.AssignedTask{Title: "Plant a sapling", Points: 50, Deadline: time.Now().Add(48 * time.Hour)}
	require.NoError(t, tasks.Create(context.Background(), &task))

	file := makeFileHeader(t, "report.txt", []byte("We planted three saplings near the school gate."))

	id, err := svc.Submit(context.Background(), Principal{ID: 7, Role: models.RoleStudent}, task.ID, file)
	require.NoError(t, err)

	require.Len(t, uploader.names, 1)
	require.Equal(t, "7_1_report.txt", uploader.names[0])

	stored, err := submissions.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/asset", stored.FileURL)
	require.False(t, stored.Approved)
}

func TestTaskSubmitUnknownTask(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	file := makeFileHeader(t, "report.txt", []byte("hello"))
	_, err := svc.Submit(context.Background(), Principal{ID: 7}, 99, file)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskSubmitRejectsSecondUpload(t *testing.T) {
	tasks, _, _, svc := newTaskFixture(t)

	task := models.AssignedTask{Title: "Plant a sapling", Points: 50, Deadline: time.Now().Add(48 * time.Hour)}
	require.NoError(t, tasks.Create(context.Background(), &task))

	file := makeFileHeader(t, "report.txt", []byte("first upload"))
	_, err := svc.Submit(context.Background(), Principal{ID: 7}, task.ID, file)
	require.NoError(t, err)

	retry := makeFileHeader(t, "report-v2.txt", []byte("second upload"))
	_, err = svc.Submit(context.Background(), Principal{ID: 7}, task.ID, retry)
	require.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestTaskSubmitRejectsUnsupportedFileType(t *testing.T) {
	tasks, submissions, _, svc := newTaskFixture(t)

	task := models.AssignedTask{Title: "Plant a sapling", Points: 50, Deadline: time.Now().Add(48 * time.Hour)}
	require.NoError(t, tasks.Create(context.Background(), &task))

	gif := append([]byte("GIF89a"), make([]byte, 32)...)
	file := makeFileHeader(t, "animation.gif", gif)

	_, err := svc.Submit(context.Background(), Principal{ID: 7}, task.ID, file)
	require.ErrorIs(t, err, ErrUnsupportedFileType)
	require.Empty(t, submissions.submissions)
}

func TestTaskListForStudentAnnotatesSubmissionStatus(t *testing.T) {
	tasks, submissions, _, svc := newTaskFixture(t)

	task := models.AssignedTask{Title: "Plant a sapling", Points: 50, Deadline: time.Now().Add(48 * time.Hour)}
	require.NoError(t, tasks.Create(context.Background(), &task))

	require.NoError(t, submissions.Create(context.Background(), &models.TaskSubmission{TaskID: task.ID, UserID: 7}))
	require.NoError(t, submissions.Grade(context.Background(), 1, 35))

	listed, err := svc.ListForStudent(context.Background(), Principal{ID: 7, Role: models.RoleStudent})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.NotNil(t, listed[0].SubmissionStatus)
	require.True(t, listed[0].SubmissionStatus.Approved)
	require.Equal(t, 35, listed[0].SubmissionStatus.PointsAwarded)

	other, err := svc.ListForStudent(context.Background(), Principal{ID: 8, Role: models.RoleStudent})
	require.NoError(t, err)
	require.Nil(t, other[0].SubmissionStatus)
}

func TestTaskListAllRequiresTeacher(t *testing.T) {
	_, _, _, svc := newTaskFixture(t)

	_, err := svc.ListAll(context.Background(), Principal{ID: 7, Role: models.RoleStudent})
	require.ErrorIs(t, err, ErrForbidden)
}
