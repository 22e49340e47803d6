package common

// Location represents a contiguous range of bytes: [From,To)
type Location struct {
	From, To int
}

func (s Location) Len() int { return s.To - s.From }
