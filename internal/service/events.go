package service

// Event subjects published on the message bus.
const (
	SubjectSubmissionGraded = "ecolearners.submission.graded"
	SubjectNoticePosted     = "ecolearners.notice.posted"
)

// EventPublisher broadcasts domain events to interested consumers. A
// *nats.Conn satisfies it directly. Publishing is best effort; failures are
// logged and never fail the originating request.
type EventPublisher interface {
	Publish(subject string, data []byte) error
}
