package timeline

import "sort"

// Section is a named time range that groups and constrains a contiguous run of
// segments. A segment belongs to a section when its interval is fully contained
// in the section's interval; segments outside every section are orphans.
type Section struct {
	ID        string  `json:"id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// NewSection constructs a section with a fresh identity.
func NewSection(start, end float64) Section {
	return Section{
		ID:        newID(),
		StartTime: start,
		EndTime:   end,
	}
}

// Duration returns the section length in seconds.
func (s Section) Duration() float64 {
	return s.EndTime - s.StartTime
}

// ContainsPoint reports whether t falls inside the section, end inclusive.
func (s Section) ContainsPoint(t float64) bool {
	return s.StartTime <= t && t <= s.EndTime
}

// ContainsSegment reports whether seg lies entirely inside the section.
func (s Section) ContainsSegment(seg Segment) bool {
	return seg.Within(s.StartTime, s.EndTime)
}

// Overlaps reports whether two sections overlap. Sharing a boundary does not
// count as overlap.
func (s Section) Overlaps(other Section) bool {
	return s.StartTime < other.EndTime && s.EndTime > other.StartTime
}

// SortSectionsByStartTime returns a copy of sections in ascending start order.
// The sort is stable so equal starts keep their relative order.
func SortSectionsByStartTime(sections []Section) []Section {
	sorted := make([]Section, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	return sorted
}

// SectionFor returns the section containing seg, or false when seg is an orphan.
func SectionFor(sections []Section, seg Segment) (Section, bool) {
	for _, section := range sections {
		if section.ContainsSegment(seg) {
			return section, true
		}
	}
	return Section{}, false
}
