package editor

import (
	"lyricdrop/internal/timeline"
)

// SectionUpdate describes a partial section resize. Nil fields keep the
// current bound.
type SectionUpdate struct {
	StartTime *float64
	EndTime   *float64
}

// SectionStore owns the section collection, kept sorted by start time. It
// never touches segments directly: coupled mutations (resize redistribution,
// removal cascade) are triggered here and executed by the SegmentStore so the
// segment collection keeps a single writer.
//
// Not safe for concurrent use; the Session serializes access.
type SectionStore struct {
	sections   []timeline.Section
	selectedID string
}

// NewSectionStore returns an empty section store.
func NewSectionStore() *SectionStore {
	return &SectionStore{}
}

// Sections returns a copy of the collection in sorted order.
func (ss *SectionStore) Sections() []timeline.Section {
	out := make([]timeline.Section, len(ss.sections))
	copy(out, ss.sections)
	return out
}

// SelectedID returns the currently selected section id, or empty.
func (ss *SectionStore) SelectedID() string {
	return ss.selectedID
}

// Select marks the given section as selected. Unknown ids are no-ops.
func (ss *SectionStore) Select(id string) Outcome {
	if id == "" {
		ss.selectedID = ""
		return applied()
	}
	if ss.indexOf(id) < 0 {
		return rejected("section not found")
	}
	ss.selectedID = id
	return applied()
}

// Get returns the section with the given id.
func (ss *SectionStore) Get(id string) (timeline.Section, bool) {
	idx := ss.indexOf(id)
	if idx < 0 {
		return timeline.Section{}, false
	}
	return ss.sections[idx], true
}

// Add inserts a new section covering [start, end]. The proposal is rejected
// when the interval is empty or when it overlaps an existing section; sharing
// a boundary with a neighbor is allowed. The new section becomes selected.
func (ss *SectionStore) Add(start, end float64) (timeline.Section, Outcome) {
	if end <= start || start < 0 {
		return timeline.Section{}, rejected("section must end after it starts")
	}
	proposed := timeline.NewSection(start, end)
	for _, existing := range ss.sections {
		if proposed.Overlaps(existing) {
			return timeline.Section{}, rejected("section overlaps an existing section")
		}
	}
	ss.sections = append(ss.sections, proposed)
	ss.selectedID = proposed.ID
	ss.resort()
	return proposed, applied()
}

// Covering returns the section that fully contains [start, end], if any.
func (ss *SectionStore) Covering(start, end float64) (timeline.Section, bool) {
	for _, section := range ss.sections {
		if section.StartTime <= start && end <= section.EndTime {
			return section, true
		}
	}
	return timeline.Section{}, false
}

// Remove deletes the section and returns it so the caller can cascade the
// bulk discard of its contained segments. Clears selection when the removed
// section was selected.
func (ss *SectionStore) Remove(id string) (timeline.Section, Outcome) {
	idx := ss.indexOf(id)
	if idx < 0 {
		return timeline.Section{}, rejected("section not found")
	}
	removed := ss.sections[idx]
	ss.sections = append(ss.sections[:idx], ss.sections[idx+1:]...)
	if ss.selectedID == id {
		ss.selectedID = ""
	}
	return removed, applied()
}

// Resolve computes the new bounds a resize would give the section without
// committing anything. The Session uses it to drive segment redistribution
// before the bounds change lands via SetBounds.
func (ss *SectionStore) Resolve(id string, upd SectionUpdate) (current, proposed timeline.Section, out Outcome) {
	idx := ss.indexOf(id)
	if idx < 0 {
		return timeline.Section{}, timeline.Section{}, rejected("section not found")
	}
	current = ss.sections[idx]

	proposed = current
	if upd.StartTime != nil {
		proposed.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		proposed.EndTime = *upd.EndTime
	}
	if proposed.EndTime <= proposed.StartTime || proposed.StartTime < 0 {
		return timeline.Section{}, timeline.Section{}, rejected("section must end after it starts")
	}
	for _, existing := range ss.sections {
		if existing.ID == id {
			continue
		}
		if proposed.Overlaps(existing) {
			return timeline.Section{}, timeline.Section{}, rejected("section overlaps an existing section")
		}
	}
	return current, proposed, applied()
}

// SetBounds commits new bounds for the section and re-sorts the collection.
func (ss *SectionStore) SetBounds(id string, start, end float64) Outcome {
	idx := ss.indexOf(id)
	if idx < 0 {
		return rejected("section not found")
	}
	ss.sections[idx].StartTime = start
	ss.sections[idx].EndTime = end
	ss.resort()
	return applied()
}

// AccommodateSpacer adjusts sections for a spacer inserted at point: a section
// containing the point (end inclusive) grows by the spacer duration, and any
// section starting after the point shifts forward wholesale.
func (ss *SectionStore) AccommodateSpacer(point, duration float64) {
	for i, section := range ss.sections {
		switch {
		case section.ContainsPoint(point):
			ss.sections[i].EndTime += duration
		case section.StartTime > point:
			ss.sections[i].StartTime += duration
			ss.sections[i].EndTime += duration
		}
	}
	ss.resort()
}

func (ss *SectionStore) indexOf(id string) int {
	for i, section := range ss.sections {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func (ss *SectionStore) resort() {
	ss.sections = timeline.SortSectionsByStartTime(ss.sections)
}
