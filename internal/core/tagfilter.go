package core

// MatchTags evaluates a boolean tag membership predicate. Tags compare by ID,
// never by name.
//
// An empty selection matches everything in both modes: no selected tags means
// no filter is applied.
func MatchTags(contractTags []Tag, selected []Tag, mode TagMode) bool {
	if len(selected) == 0 {
		return true
	}
	have := make(map[int64]struct{}, len(contractTags))
	for _, t := range contractTags {
		have[t.ID] = struct{}{}
	}
	switch mode {
	case TagModeOr:
		for _, t := range selected {
			if _, ok := have[t.ID]; ok {
				return true
			}
		}
		return false
	default:
		// AND is the original application's default linking mode.
		for _, t := range selected {
			if _, ok := have[t.ID]; !ok {
				return false
			}
		}
		return true
	}
}
