package model

// TopicList is the ordered list of topics. Order defines the display
// index and the ordinal a draw reports. Duplicates are allowed.
type TopicList []string

// Len is nil-safe.
func (l TopicList) Len() int { return len(l) }

// Clone returns an independent copy. A nil list clones to an empty one.
func (l TopicList) Clone() TopicList {
	out := make(TopicList, len(l))
	copy(out, l)
	return out
}

// Equal compares by content.
func (l TopicList) Equal(o TopicList) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// InBounds reports whether i is a valid 0-based index.
func (l TopicList) InBounds(i int) bool { return i >= 0 && i < len(l) }

// DrawResult is one draw's outcome. Ordinal is 1-based.
type DrawResult struct {
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`
}
