package event

// Publisher is the event type a publisher raises internally, covering
// general publishing failures or failures in individual points. Error types
// are enumerated inside each publisher implementation, so the identity is
// the publisher id combined with the error type.
type Publisher struct {
	base
	publisherID int
	errorTypeID int
}

var _ Type = (*Publisher)(nil)

// NewPublisher creates a publisher event type.
func NewPublisher(publisherID, errorTypeID int) *Publisher {
	return &Publisher{publisherID: publisherID, errorTypeID: errorTypeID}
}

// Kind returns KindPublisher.
func (e *Publisher) Kind() Kind { return KindPublisher }

// ReferenceID1 returns the owning publisher id.
func (e *Publisher) ReferenceID1() int { return e.publisherID }

// ReferenceID2 returns the publisher's internal error type.
func (e *Publisher) ReferenceID2() int { return e.errorTypeID }

// DuplicateHandling returns IgnoreSameMessage, matching data sources:
// publish retries re-raise the same type and only new detail matters.
func (e *Publisher) DuplicateHandling() DuplicateHandling { return IgnoreSameMessage }

// PublisherID returns the owning publisher id.
func (e *Publisher) PublisherID() int { return e.publisherID }

// ErrorTypeID returns the publisher's internal error type.
func (e *Publisher) ErrorTypeID() int { return e.errorTypeID }
