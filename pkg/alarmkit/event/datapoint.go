package event

// DataPoint is the event type raised by a point event detector. Detector
// ids are unique across the whole platform, so the detector id alone is the
// identity; the owning data point id is carried for convenience only.
type DataPoint struct {
	base
	dataPointID int
	detectorID  int
	handling    DuplicateHandling
	override    OverrideBehavior
}

var _ Type = (*DataPoint)(nil)

// NewDataPoint creates a data point event type for a detector with the
// detector's configured duplicate handling. An invalid handling value falls
// back to DoNotAllow.
func NewDataPoint(dataPointID, detectorID int, handling DuplicateHandling) *DataPoint {
	if !handling.Valid() {
		handling = DoNotAllow
	}
	return &DataPoint{
		dataPointID: dataPointID,
		detectorID:  detectorID,
		handling:    handling,
	}
}

// NewChangeDetector creates a data point event type for a change detector.
// Change detectors always allow duplicates so every change the point
// experiences can be acknowledged on its own.
func NewChangeDetector(dataPointID, detectorID int) *DataPoint {
	return &DataPoint{
		dataPointID: dataPointID,
		detectorID:  detectorID,
		handling:    Allow,
	}
}

// WithOverride returns a copy with the given Allow-class override behavior.
func (e *DataPoint) WithOverride(o OverrideBehavior) *DataPoint {
	c := *e
	c.override = o
	return &c
}

// Kind returns KindDataPoint.
func (e *DataPoint) Kind() Kind { return KindDataPoint }

// ReferenceID1 returns the detector id.
func (e *DataPoint) ReferenceID1() int { return e.detectorID }

// DuplicateHandling returns the detector's configured handling.
func (e *DataPoint) DuplicateHandling() DuplicateHandling { return e.handling }

// Override returns the configured Allow-class override behavior.
func (e *DataPoint) Override() OverrideBehavior { return e.override }

// DataPointID returns the owning data point id.
func (e *DataPoint) DataPointID() int { return e.dataPointID }

// DetectorID returns the detector id.
func (e *DataPoint) DetectorID() int { return e.detectorID }
