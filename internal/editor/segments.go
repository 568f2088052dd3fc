package editor

import (
	"lyricdrop/internal/timeline"
)

// SegmentUpdate describes a partial segment mutation. Nil fields are left
// unchanged.
type SegmentUpdate struct {
	StartTime *float64
	EndTime   *float64
	Text      *string
}

// SegmentStore owns the segment collection and its mutation protocol. The
// collection is kept sorted by start time after every mutation; that order is
// the canonical iteration order regardless of insertion history.
//
// The store is not safe for concurrent use; the Session serializes access.
type SegmentStore struct {
	segments   []timeline.Segment
	selectedID string
}

// NewSegmentStore returns an empty segment store.
func NewSegmentStore() *SegmentStore {
	return &SegmentStore{}
}

// Segments returns a copy of the collection in sorted order.
func (st *SegmentStore) Segments() []timeline.Segment {
	out := make([]timeline.Segment, len(st.segments))
	copy(out, st.segments)
	return out
}

// Len returns the number of segments in the store.
func (st *SegmentStore) Len() int {
	return len(st.segments)
}

// SelectedID returns the currently selected segment id, or empty.
func (st *SegmentStore) SelectedID() string {
	return st.selectedID
}

// Select marks the given segment as selected. Unknown ids are no-ops.
func (st *SegmentStore) Select(id string) Outcome {
	if id == "" {
		st.selectedID = ""
		return applied()
	}
	if st.indexOf(id) < 0 {
		return rejected("segment not found")
	}
	st.selectedID = id
	return applied()
}

// Get returns the segment with the given id.
func (st *SegmentStore) Get(id string) (timeline.Segment, bool) {
	idx := st.indexOf(id)
	if idx < 0 {
		return timeline.Segment{}, false
	}
	return st.segments[idx], true
}

// ActiveAt returns the lyric segment speaking at time t, if any.
func (st *SegmentStore) ActiveAt(t float64) (timeline.Segment, bool) {
	return timeline.FindActive(st.segments, t)
}

// ContainedLyricIDs returns the ids of lyric segments fully inside
// [start, end], in sorted order. Spacers carry no text and are skipped.
func (st *SegmentStore) ContainedLyricIDs(start, end float64) []string {
	var ids []string
	for _, segment := range st.segments {
		if segment.Kind == timeline.KindLyric && segment.Within(start, end) {
			ids = append(ids, segment.ID)
		}
	}
	return ids
}

// Import replaces the lyric layout of [sectionStart, sectionEnd] with one
// equal-width lyric segment per line. Prior segments fully inside the range
// are superseded; everything outside is preserved untouched. Selection is
// cleared on success.
func (st *SegmentStore) Import(lines []string, sectionStart, sectionEnd float64) Outcome {
	if len(lines) == 0 {
		return rejected("no lyric lines to import")
	}
	if sectionEnd <= sectionStart || sectionStart < 0 {
		return rejected("import range is empty")
	}

	created := timeline.FromLines(lines, sectionEnd, sectionStart, 0)
	if len(created) == 0 {
		return rejected("import range is empty")
	}

	kept := st.segments[:0]
	for _, segment := range st.segments {
		if !segment.Within(sectionStart, sectionEnd) {
			kept = append(kept, segment)
		}
	}
	st.segments = append(kept, created...)
	st.selectedID = ""
	st.resort()
	return applied()
}

// Append redistributes the texts of the named existing segments plus the new
// lines evenly across [sectionStart, sectionEnd]. Existing ids are reused
// positionally so external references survive the re-flow; ids beyond the
// combined count are dropped and extra lines get fresh identities.
func (st *SegmentStore) Append(lines []string, sectionStart, sectionEnd float64, existingIDs []string) Outcome {
	if len(lines) == 0 {
		return rejected("no lyric lines to append")
	}
	if sectionEnd <= sectionStart || sectionStart < 0 {
		return rejected("append range is empty")
	}

	named := make(map[string]struct{}, len(existingIDs))
	for _, id := range existingIDs {
		named[id] = struct{}{}
	}

	// Collect reused ids and their texts in current sorted order.
	var orderedIDs []string
	var texts []string
	for _, segment := range st.segments {
		if _, ok := named[segment.ID]; ok {
			orderedIDs = append(orderedIDs, segment.ID)
			texts = append(texts, segment.Text)
		}
	}
	combined := append(texts, lines...)

	created := timeline.FromLines(combined, sectionEnd, sectionStart, 0)
	if len(created) == 0 {
		return rejected("append range is empty")
	}
	for i := range created {
		if i < len(orderedIDs) {
			created[i].ID = orderedIDs[i]
		}
	}

	kept := st.segments[:0]
	for _, segment := range st.segments {
		if _, ok := named[segment.ID]; !ok {
			kept = append(kept, segment)
		}
	}
	st.segments = append(kept, created...)

	if st.selectedID != "" && st.indexOf(st.selectedID) < 0 {
		st.selectedID = ""
	}
	st.resort()
	return applied()
}

// Update applies a partial timing/text change to one segment and cascades the
// end-time delta to every later segment in the same scope: the containing
// section's segments when the target belongs to a section, or the later
// orphans when it does not. Extending a sectioned segment is clamped so the
// section's last contained segment never escapes the section end.
func (st *SegmentStore) Update(id string, upd SegmentUpdate, sections []timeline.Section) Outcome {
	idx := st.indexOf(id)
	if idx < 0 {
		return rejected("segment not found")
	}
	target := st.segments[idx]

	newStart := target.StartTime
	if upd.StartTime != nil {
		newStart = *upd.StartTime
	}
	newEnd := target.EndTime
	if upd.EndTime != nil {
		newEnd = *upd.EndTime
	}

	section, inSection := timeline.SectionFor(sections, target)
	if inSection {
		if shift := newEnd - target.EndTime; shift > 0 {
			if last, ok := st.lastContained(section); ok && last.EndTime+shift > section.EndTime {
				shift = max(0, section.EndTime-last.EndTime)
				newEnd = target.EndTime + shift
			}
		}
	}

	updated := target.WithTiming(newStart, newEnd)
	if upd.Text != nil {
		updated = updated.WithText(*upd.Text)
	}
	st.segments[idx] = updated

	// Cascade by the delta the end time actually moved, post-clamping.
	delta := updated.EndTime - target.EndTime
	if delta != 0 {
		for i := idx + 1; i < len(st.segments); i++ {
			other := st.segments[i]
			if !sameScope(other, section, inSection, sections) {
				continue
			}
			shifted := other.Shifted(delta)
			if shifted.StartTime < 0 {
				continue
			}
			st.segments[i] = shifted
		}
	}

	st.resort()
	return applied()
}

// Remove deletes a spacer and closes the gap it occupied by shifting every
// later segment in the same scope backward by its duration. A lyric segment
// is never deleted: it is converted in place to an empty spacer so removal
// cannot punch a hole in the timeline.
func (st *SegmentStore) Remove(id string, sections []timeline.Section) Outcome {
	idx := st.indexOf(id)
	if idx < 0 {
		return rejected("segment not found")
	}
	target := st.segments[idx]

	if target.IsSpacer() {
		duration := target.Duration()
		section, inSection := timeline.SectionFor(sections, target)
		st.segments = append(st.segments[:idx], st.segments[idx+1:]...)
		for i := idx; i < len(st.segments); i++ {
			other := st.segments[i]
			if !sameScope(other, section, inSection, sections) {
				continue
			}
			st.segments[i] = other.Shifted(-duration)
		}
	} else {
		target.Kind = timeline.KindSpacer
		target.Text = ""
		st.segments[idx] = target
	}

	if st.selectedID == id {
		st.selectedID = ""
	}
	st.resort()
	return applied()
}

// InsertSpacer opens a silent gap at the given time. When the time falls
// inside an existing segment the gap snaps to that segment's start or end,
// whichever half the time is in; every segment starting at or after the
// insertion point shifts forward. The resolved insertion point is returned so
// the section store can stretch or move sections to match.
func (st *SegmentStore) InsertSpacer(at, duration float64) (float64, Outcome) {
	if at < 0 {
		return 0, rejected("spacer time must be non-negative")
	}
	if duration <= 0 {
		return 0, rejected("spacer duration must be positive")
	}

	point := at
	for _, segment := range st.segments {
		if segment.Contains(at) {
			if at < (segment.StartTime+segment.EndTime)/2 {
				point = segment.StartTime
			} else {
				point = segment.EndTime
			}
			break
		}
	}

	for i, segment := range st.segments {
		if segment.StartTime >= point {
			st.segments[i] = segment.Shifted(duration)
		}
	}
	st.segments = append(st.segments, timeline.NewSpacer(point, point+duration))
	st.resort()
	return point, applied()
}

// RemoveWithin deletes every segment fully contained in [start, end] and
// returns the removed ids. Used by section removal, which is a bulk discard
// rather than a spacer conversion.
func (st *SegmentStore) RemoveWithin(start, end float64) []string {
	var removed []string
	kept := st.segments[:0]
	for _, segment := range st.segments {
		if segment.Within(start, end) {
			removed = append(removed, segment.ID)
			continue
		}
		kept = append(kept, segment)
	}
	st.segments = kept
	if st.selectedID != "" {
		for _, id := range removed {
			if id == st.selectedID {
				st.selectedID = ""
				break
			}
		}
	}
	return removed
}

// RedistributeWithin proportionally rescales every segment contained in the
// old bounds into the new bounds, preserving each segment's relative position
// inside the occupied span. Returns the number of segments rescaled; a zero
// length occupied span skips the rescale entirely rather than dividing by it.
func (st *SegmentStore) RedistributeWithin(oldStart, oldEnd, newStart, newEnd float64) int {
	var contained []int
	for i, segment := range st.segments {
		if segment.Within(oldStart, oldEnd) {
			contained = append(contained, i)
		}
	}
	if len(contained) == 0 {
		return 0
	}

	occStart := st.segments[contained[0]].StartTime
	occEnd := st.segments[contained[0]].EndTime
	for _, i := range contained[1:] {
		occStart = min(occStart, st.segments[i].StartTime)
		occEnd = max(occEnd, st.segments[i].EndTime)
	}
	span := occEnd - occStart
	if span <= 0 {
		return 0
	}

	newDuration := newEnd - newStart
	for _, i := range contained {
		segment := st.segments[i]
		relStart := (segment.StartTime - occStart) / span
		relEnd := (segment.EndTime - occStart) / span
		st.segments[i] = segment.WithTiming(newStart+relStart*newDuration, newStart+relEnd*newDuration)
	}
	st.resort()
	return len(contained)
}

func (st *SegmentStore) indexOf(id string) int {
	for i, segment := range st.segments {
		if segment.ID == id {
			return i
		}
	}
	return -1
}

// lastContained returns the last segment, in sorted order, inside the section.
func (st *SegmentStore) lastContained(section timeline.Section) (timeline.Segment, bool) {
	var last timeline.Segment
	found := false
	for _, segment := range st.segments {
		if section.ContainsSegment(segment) {
			last = segment
			found = true
		}
	}
	return last, found
}

func (st *SegmentStore) resort() {
	st.segments = timeline.SortByStartTime(st.segments)
}

// sameScope reports whether other shares the cascade scope of a mutation
// target: the same containing section, or orphanhood when the target was an
// orphan.
func sameScope(other timeline.Segment, section timeline.Section, inSection bool, sections []timeline.Section) bool {
	if inSection {
		return section.ContainsSegment(other)
	}
	_, otherInSection := timeline.SectionFor(sections, other)
	return !otherInSection
}
