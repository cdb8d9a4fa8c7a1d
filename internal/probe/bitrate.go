package probe

import "errors"

// ErrNoBitrates indicates bitrate selection was attempted on an empty set.
var ErrNoBitrates = errors.New("no bitrates to select from")

// SelectBitrate returns the most frequent bitrate among the observed values.
// Ties break toward the value encountered first, which follows file sort
// order when the input comes from ProbeAll.
func SelectBitrate(bitrates []int) (int, error) {
	if len(bitrates) == 0 {
		return 0, ErrNoBitrates
	}

	counts := make(map[int]int, len(bitrates))
	firstSeen := make(map[int]int, len(bitrates))
	for i, rate := range bitrates {
		counts[rate]++
		if _, ok := firstSeen[rate]; !ok {
			firstSeen[rate] = i
		}
	}

	best := bitrates[0]
	for rate, count := range counts {
		switch {
		case count > counts[best]:
			best = rate
		case count == counts[best] && firstSeen[rate] < firstSeen[best]:
			best = rate
		}
	}
	return best, nil
}
