package internal

// Split holds the train/test partition of a session log
type Split struct {
	Train          []*SearchSession
	TrainQueries   QuerySet
	TestCandidates []*SearchSession
	Test           []*SearchSession
	TestQueries    QuerySet
}

// SplitIndex returns floor(0.75 * n), the number of leading sessions used for training
func SplitIndex(n int) int {
	return n * 3 / 4
}

// SplitSessions partitions sessions by position without shuffling. Test
// candidates whose query never occurs in the training part are dropped.
func SplitSessions(sessions []*SearchSession) *Split {
	idx := SplitIndex(len(sessions))

	split := &Split{
		Train:          sessions[:idx],
		TestCandidates: sessions[idx:],
	}
	split.TrainQueries = UniqueQueries(split.Train)

	split.Test = make([]*SearchSession, 0, len(split.TestCandidates))
	for _, s := range split.TestCandidates {
		if split.TrainQueries.Contains(s.Query) {
			split.Test = append(split.Test, s)
		}
	}
	split.TestQueries = UniqueQueries(split.Test)

	return split
}
