package section

// Progress returns the completion fraction of id within the content order
// Content section k (0-based) yields (k+1)/len; the gate and unknown ids yield 0
func (s *Sequence) Progress(id ID) float64 {
	o, ok := s.ordinal[id]
	if !ok || o == 0 {
		return 0
	}
	content := len(s.ids) - 1
	return float64(o) / float64(content)
}
