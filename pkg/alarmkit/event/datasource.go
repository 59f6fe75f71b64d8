package event

// DataSource is the event type a data source raises for its own reasons,
// such as no response from the external system or a failed point locator.
// Error types are enumerated inside each data source implementation, so the
// identity is the data source id combined with the error type.
type DataSource struct {
	base
	dataSourceID int
	errorTypeID  int
}

var _ Type = (*DataSource)(nil)

// NewDataSource creates a data source event type.
func NewDataSource(dataSourceID, errorTypeID int) *DataSource {
	return &DataSource{dataSourceID: dataSourceID, errorTypeID: errorTypeID}
}

// Kind returns KindDataSource.
func (e *DataSource) Kind() Kind { return KindDataSource }

// ReferenceID1 returns the owning data source id.
func (e *DataSource) ReferenceID1() int { return e.dataSourceID }

// ReferenceID2 returns the data source's internal error type.
func (e *DataSource) ReferenceID2() int { return e.errorTypeID }

// DuplicateHandling returns IgnoreSameMessage: a retry of a failed action
// may raise the same type again with fresher detail before the previous
// occurrence has returned to normal, and only a changed message is worth
// superseding with.
func (e *DataSource) DuplicateHandling() DuplicateHandling { return IgnoreSameMessage }

// DataSourceID returns the owning data source id.
func (e *DataSource) DataSourceID() int { return e.dataSourceID }

// ErrorTypeID returns the data source's internal error type.
func (e *DataSource) ErrorTypeID() int { return e.errorTypeID }
