package editor

import (
	"log/slog"
	"sync"

	"lyricdrop/internal/logging"
	"lyricdrop/internal/timeline"
)

// Options configures a new editing session.
type Options struct {
	VideoPath string
	// Duration is the video duration in seconds. Imports without explicit
	// bounds fill [0, Duration].
	Duration float64
	// SpacerDuration is the default length of inserted spacers, in seconds.
	SpacerDuration float64
	ZoomMin        float64
	ZoomMax        float64
	Logger         *slog.Logger
}

// Session is the single-writer home of all editing state: the segment and
// section stores, selection, playhead, and zoom. Every mutation takes the
// session mutex, runs to completion, and then notifies subscribers with a
// snapshot, so no reader can observe a section without its segments rescaled
// or a spacer without its section adjustments.
type Session struct {
	mu sync.Mutex

	logger   *slog.Logger
	segments *SegmentStore
	sections *SectionStore

	videoPath      string
	duration       float64
	playhead       float64
	zoom           float64
	spacerDuration float64
	zoomMin        float64
	zoomMax        float64
	revision       uint64

	nextSubscriber int
	subscribers    map[int]func(Snapshot)
}

// DefaultSpacerDuration is the spacer length used when none is configured.
const DefaultSpacerDuration = 2.0

// Default zoom bounds for time-to-pixel conversion in consuming UIs.
const (
	DefaultZoomMin = 0.5
	DefaultZoomMax = 4.0
)

// NewSession constructs an empty session from the given options.
func NewSession(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	spacer := opts.SpacerDuration
	if spacer <= 0 {
		spacer = DefaultSpacerDuration
	}
	zoomMin := opts.ZoomMin
	zoomMax := opts.ZoomMax
	if zoomMin <= 0 || zoomMax <= zoomMin {
		zoomMin = DefaultZoomMin
		zoomMax = DefaultZoomMax
	}
	return &Session{
		logger:         logging.NewComponentLogger(logger, "editor"),
		segments:       NewSegmentStore(),
		sections:       NewSectionStore(),
		videoPath:      opts.VideoPath,
		duration:       max(opts.Duration, 0),
		zoom:           1,
		spacerDuration: spacer,
		zoomMin:        zoomMin,
		zoomMax:        zoomMax,
		subscribers:    make(map[int]func(Snapshot)),
	}
}

// Subscribe registers a callback invoked with a snapshot after every applied
// mutation. The returned cancel function removes the subscription.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubscriber
	s.nextSubscriber++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Snapshot returns a consistent copy of the full session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ActiveAt returns the lyric segment speaking at time t, if any. Read-only;
// the playback and export collaborators poll this continuously.
func (s *Session) ActiveAt(t float64) (timeline.Segment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.segments.ActiveAt(t)
}

// ImportLyrics parses the pasted text and lays it out across the given range.
// Nil bounds default to the full video: [0, duration]. When both bounds are
// explicit the range is also kept as a section: an existing section covering
// the range is reused, otherwise a new one is created, and a range that would
// partially overlap a section rejects the whole import.
func (s *Session) ImportLyrics(text string, sectionStart, sectionEnd *float64) (Snapshot, Outcome) {
	lines := timeline.ParseLyrics(text)

	start := 0.0
	if sectionStart != nil {
		start = *sectionStart
	}
	end := s.videoDuration()
	if sectionEnd != nil {
		end = *sectionEnd
	}
	explicit := sectionStart != nil && sectionEnd != nil

	return s.mutate("import lyrics", func() Outcome {
		if len(lines) == 0 {
			return rejected("no lyric lines to import")
		}
		if end <= start {
			return rejected("import range is empty; set the video duration or pass explicit bounds")
		}
		if explicit {
			if _, covered := s.sections.Covering(start, end); !covered {
				if _, out := s.sections.Add(start, end); !out.Applied {
					return out
				}
			}
		}
		return s.segments.Import(lines, start, end)
	})
}

// AppendLyrics redistributes the named section's lyric texts plus the new
// lines across the section bounds, reusing segment ids positionally.
func (s *Session) AppendLyrics(text string, sectionID string) (Snapshot, Outcome) {
	lines := timeline.ParseLyrics(text)
	return s.mutate("append lyrics", func() Outcome {
		if len(lines) == 0 {
			return rejected("no lyric lines to append")
		}
		section, ok := s.sections.Get(sectionID)
		if !ok {
			return rejected("section not found")
		}
		ids := s.segments.ContainedLyricIDs(section.StartTime, section.EndTime)
		return s.segments.Append(lines, section.StartTime, section.EndTime, ids)
	})
}

// UpdateSegment applies a partial timing/text mutation with cascading shifts.
func (s *Session) UpdateSegment(id string, upd SegmentUpdate) (Snapshot, Outcome) {
	return s.mutate("update segment", func() Outcome {
		return s.segments.Update(id, upd, s.sections.Sections())
	})
}

// RemoveSegment removes a spacer (closing the gap) or converts a lyric
// segment into a spacer placeholder.
func (s *Session) RemoveSegment(id string) (Snapshot, Outcome) {
	return s.mutate("remove segment", func() Outcome {
		return s.segments.Remove(id, s.sections.Sections())
	})
}

// InsertSpacer opens a silent gap at the given time. A nil duration uses the
// configured default. Sections containing or following the insertion point
// are stretched or shifted to match.
func (s *Session) InsertSpacer(at float64, duration *float64) (Snapshot, Outcome) {
	length := s.spacerDuration
	if duration != nil {
		length = *duration
	}
	return s.mutate("insert spacer", func() Outcome {
		point, out := s.segments.InsertSpacer(at, length)
		if out.Applied {
			s.sections.AccommodateSpacer(point, length)
		}
		return out
	})
}

// SelectSegment marks a segment as selected; an empty id clears selection.
func (s *Session) SelectSegment(id string) (Snapshot, Outcome) {
	return s.mutate("select segment", func() Outcome {
		return s.segments.Select(id)
	})
}

// AddSection creates a section over [start, end], rejecting overlaps.
func (s *Session) AddSection(start, end float64) (Snapshot, Outcome) {
	return s.mutate("add section", func() Outcome {
		_, out := s.sections.Add(start, end)
		return out
	})
}

// RemoveSection deletes a section and every segment fully inside it. Unlike
// single-segment removal this is a bulk discard; no spacers are left behind.
func (s *Session) RemoveSection(id string) (Snapshot, Outcome) {
	return s.mutate("remove section", func() Outcome {
		removed, out := s.sections.Remove(id)
		if out.Applied {
			s.segments.RemoveWithin(removed.StartTime, removed.EndTime)
		}
		return out
	})
}

// ResizeSection moves a section's bounds and proportionally redistributes its
// contained segments so their relative layout fills the new interval exactly.
func (s *Session) ResizeSection(id string, upd SectionUpdate) (Snapshot, Outcome) {
	return s.mutate("resize section", func() Outcome {
		current, proposed, out := s.sections.Resolve(id, upd)
		if !out.Applied {
			return out
		}
		s.segments.RedistributeWithin(current.StartTime, current.EndTime, proposed.StartTime, proposed.EndTime)
		return s.sections.SetBounds(id, proposed.StartTime, proposed.EndTime)
	})
}

// SelectSection marks a section as selected; an empty id clears selection.
func (s *Session) SelectSection(id string) (Snapshot, Outcome) {
	return s.mutate("select section", func() Outcome {
		return s.sections.Select(id)
	})
}

// SetPlayhead moves the playback position. Negative times clamp to zero and,
// when the video duration is known, times beyond it clamp to the end.
func (s *Session) SetPlayhead(t float64) (Snapshot, Outcome) {
	return s.mutate("set playhead", func() Outcome {
		t = max(t, 0)
		if s.duration > 0 {
			t = min(t, s.duration)
		}
		s.playhead = t
		return applied()
	})
}

// SetZoom sets the timeline zoom factor, clamped to the configured bounds.
func (s *Session) SetZoom(factor float64) (Snapshot, Outcome) {
	return s.mutate("set zoom", func() Outcome {
		s.zoom = min(max(factor, s.zoomMin), s.zoomMax)
		return applied()
	})
}

// SetDuration records the probed video duration for sessions started before
// probing finished.
func (s *Session) SetDuration(duration float64) (Snapshot, Outcome) {
	return s.mutate("set duration", func() Outcome {
		if duration <= 0 {
			return rejected("duration must be positive")
		}
		s.duration = duration
		return applied()
	})
}

func (s *Session) videoDuration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.duration
}

// mutate serializes an operation, bumps the revision when it applied, and
// notifies subscribers outside the lock.
func (s *Session) mutate(op string, fn func() Outcome) (Snapshot, Outcome) {
	s.mu.Lock()
	out := fn()
	if out.Applied {
		s.revision++
	}
	snap := s.snapshotLocked()
	var subs []func(Snapshot)
	if out.Applied {
		subs = make([]func(Snapshot), 0, len(s.subscribers))
		for _, fn := range s.subscribers {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	if out.Applied {
		for _, fn := range subs {
			fn(snap)
		}
		s.logger.Debug("mutation applied",
			logging.String("operation", op),
			logging.Uint64("revision", snap.Revision))
	} else {
		s.logger.Warn("mutation skipped",
			logging.String("operation", op),
			logging.String("reason", out.Reason))
	}
	return snap, out
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		VideoPath:         s.videoPath,
		Duration:          s.duration,
		Playhead:          s.playhead,
		Zoom:              s.zoom,
		SpacerDuration:    s.spacerDuration,
		Revision:          s.revision,
		Segments:          s.segments.Segments(),
		Sections:          s.sections.Sections(),
		SelectedSegmentID: s.segments.SelectedID(),
		SelectedSectionID: s.sections.SelectedID(),
	}
}

// Snapshot is an immutable copy of the session state handed to subscribers,
// the IPC layer, and the export renderer.
type Snapshot struct {
	VideoPath         string             `json:"video_path"`
	Duration          float64            `json:"duration"`
	Playhead          float64            `json:"playhead"`
	Zoom              float64            `json:"zoom"`
	SpacerDuration    float64            `json:"spacer_duration"`
	Revision          uint64             `json:"revision"`
	Segments          []timeline.Segment `json:"segments"`
	Sections          []timeline.Section `json:"sections"`
	SelectedSegmentID string             `json:"selected_segment_id,omitempty"`
	SelectedSectionID string             `json:"selected_section_id,omitempty"`
}

// ActiveAt resolves the speaking lyric segment for a snapshot, letting export
// collaborators work from a frozen copy of the timeline.
func (sn Snapshot) ActiveAt(t float64) (timeline.Segment, bool) {
	return timeline.FindActive(sn.Segments, t)
}
