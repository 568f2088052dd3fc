package ipc

import (
	"time"

	"lyricdrop/internal/editor"
	"lyricdrop/internal/queue"
	"lyricdrop/internal/timeline"
)

// Segment is the wire representation of a timeline segment.
type Segment struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Kind      string  `json:"kind"`
}

// Section is the wire representation of a timeline section.
type Section struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// TimelineState mirrors an editor snapshot for IPC callers.
type TimelineState struct {
	VideoPath         string    `json:"video_path"`
	Duration          float64   `json:"duration"`
	Playhead          float64   `json:"playhead"`
	Zoom              float64   `json:"zoom"`
	SpacerDuration    float64   `json:"spacer_duration"`
	Revision          uint64    `json:"revision"`
	Segments          []Segment `json:"segments"`
	Sections          []Section `json:"sections"`
	SelectedSegmentID string    `json:"selected_segment_id,omitempty"`
	SelectedSectionID string    `json:"selected_section_id,omitempty"`
}

// FromSnapshot converts an editor snapshot to its wire representation.
func FromSnapshot(snapshot editor.Snapshot) TimelineState {
	state := TimelineState{
		VideoPath:         snapshot.VideoPath,
		Duration:          snapshot.Duration,
		Playhead:          snapshot.Playhead,
		Zoom:              snapshot.Zoom,
		SpacerDuration:    snapshot.SpacerDuration,
		Revision:          snapshot.Revision,
		SelectedSegmentID: snapshot.SelectedSegmentID,
		SelectedSectionID: snapshot.SelectedSectionID,
		Segments:          make([]Segment, 0, len(snapshot.Segments)),
		Sections:          make([]Section, 0, len(snapshot.Sections)),
	}
	for _, segment := range snapshot.Segments {
		state.Segments = append(state.Segments, fromSegment(segment))
	}
	for _, section := range snapshot.Sections {
		state.Sections = append(state.Sections, Section{
			ID:        section.ID,
			StartTime: section.StartTime,
			EndTime:   section.EndTime,
		})
	}
	return state
}

func fromSegment(segment timeline.Segment) Segment {
	return Segment{
		ID:        segment.ID,
		Text:      segment.Text,
		StartTime: segment.StartTime,
		EndTime:   segment.EndTime,
		Kind:      string(segment.Kind),
	}
}

// MutationResponse carries the outcome of a timeline mutation plus the
// resulting state. Skipped mutations are not errors; Reason says why.
type MutationResponse struct {
	Applied  bool          `json:"applied"`
	Reason   string        `json:"reason,omitempty"`
	Timeline TimelineState `json:"timeline"`
}

// OpenRequest opens an editing session for a video file. When Duration is
// set instead of Path, an offline session is opened without a video for
// timing work.
type OpenRequest struct {
	Path     string   `json:"path,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// OpenResponse returns the fresh session state.
type OpenResponse struct {
	Timeline TimelineState `json:"timeline"`
}

// CloseVideoRequest discards the current editing session.
type CloseVideoRequest struct{}

// CloseVideoResponse reports whether a session was open.
type CloseVideoResponse struct {
	Closed bool `json:"closed"`
}

// StopRequest stops the daemon.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// DependencyStatus describes availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail"`
}

// JobSummary aggregates export job counts per lifecycle state.
type JobSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Burning   int `json:"burning"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// StatusResponse represents daemon runtime information.
type StatusResponse struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	LockPath     string             `json:"lock_path"`
	JobDBPath    string             `json:"job_db_path"`
	SessionOpen  bool               `json:"session_open"`
	VideoPath    string             `json:"video_path,omitempty"`
	Duration     float64            `json:"duration,omitempty"`
	Revision     uint64             `json:"revision,omitempty"`
	SegmentCount int                `json:"segment_count"`
	SectionCount int                `json:"section_count"`
	Jobs         JobSummary         `json:"jobs"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// TimelineRequest fetches the current timeline state.
type TimelineRequest struct{}

// TimelineResponse returns the current timeline state.
type TimelineResponse struct {
	Timeline TimelineState `json:"timeline"`
}

// LyricsImportRequest replaces timeline content with parsed lyric lines,
// optionally scoped to a new section.
type LyricsImportRequest struct {
	Text         string   `json:"text"`
	SectionStart *float64 `json:"section_start,omitempty"`
	SectionEnd   *float64 `json:"section_end,omitempty"`
}

// LyricsAppendRequest re-imports lyrics into an existing section, reusing
// segment identities positionally.
type LyricsAppendRequest struct {
	Text      string `json:"text"`
	SectionID string `json:"section_id"`
}

// SegmentUpdateRequest adjusts a segment's timing or text.
type SegmentUpdateRequest struct {
	ID        string   `json:"id"`
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
	Text      *string  `json:"text,omitempty"`
}

// SegmentRemoveRequest removes a segment. Lyrics become spacers in place;
// spacers are deleted and later segments close the gap.
type SegmentRemoveRequest struct {
	ID string `json:"id"`
}

// SegmentSelectRequest marks a segment as selected. Empty ID clears selection.
type SegmentSelectRequest struct {
	ID string `json:"id"`
}

// SpacerInsertRequest inserts silence at a point on the timeline.
type SpacerInsertRequest struct {
	At       float64  `json:"at"`
	Duration *float64 `json:"duration,omitempty"`
}

// SectionAddRequest creates a section over the given range.
type SectionAddRequest struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// SectionRemoveRequest deletes a section and the segments it contains.
type SectionRemoveRequest struct {
	ID string `json:"id"`
}

// SectionResizeRequest moves a section's boundaries, redistributing its
// segments proportionally.
type SectionResizeRequest struct {
	ID        string   `json:"id"`
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
}

// SectionSelectRequest marks a section as selected. Empty ID clears selection.
type SectionSelectRequest struct {
	ID string `json:"id"`
}

// PlayheadSetRequest moves the playhead.
type PlayheadSetRequest struct {
	At float64 `json:"at"`
}

// ZoomSetRequest changes the timeline zoom factor.
type ZoomSetRequest struct {
	Factor float64 `json:"factor"`
}

// ActiveAtRequest resolves the lyric segment speaking at a time.
type ActiveAtRequest struct {
	At float64 `json:"at"`
}

// ActiveAtResponse reports the active lyric segment, if any.
type ActiveAtResponse struct {
	Found   bool    `json:"found"`
	Segment Segment `json:"segment,omitempty"`
}

// ExportJob is the wire representation of an export job.
type ExportJob struct {
	ID           int64     `json:"id"`
	VideoPath    string    `json:"video_path"`
	OutputPath   string    `json:"output_path"`
	SegmentCount int       `json:"segment_count"`
	Revision     int64     `json:"revision"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromJob converts a stored job to its wire representation. The subtitle
// document is deliberately omitted from listings.
func FromJob(job *queue.Job) ExportJob {
	if job == nil {
		return ExportJob{}
	}
	return ExportJob{
		ID:           job.ID,
		VideoPath:    job.VideoPath,
		OutputPath:   job.OutputPath,
		SegmentCount: job.SegmentCount,
		Revision:     job.Revision,
		Status:       string(job.Status),
		ErrorMessage: job.ErrorMessage,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

// ExportStartRequest queues an export of the current timeline.
type ExportStartRequest struct{}

// ExportStartResponse returns the queued job.
type ExportStartResponse struct {
	Job ExportJob `json:"job"`
}

// ExportListRequest lists export jobs.
type ExportListRequest struct{}

// ExportListResponse contains export jobs, newest first.
type ExportListResponse struct {
	Jobs []ExportJob `json:"jobs"`
}

// ExportDescribeRequest fetches a single export job by id.
type ExportDescribeRequest struct {
	ID int64 `json:"id"`
}

// ExportDescribeResponse contains a single export job.
type ExportDescribeResponse struct {
	Job ExportJob `json:"job"`
}

// ExportClearRequest removes terminal export jobs.
type ExportClearRequest struct{}

// ExportClearResponse reports number of removed jobs.
type ExportClearResponse struct {
	Removed int64 `json:"removed"`
}
