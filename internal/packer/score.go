package packer

// score rates placing a w x h candidate into free rectangle fr. Lower is
// better; sec breaks primary ties before the positional tiebreak. Callers
// guarantee the candidate fits, so both slacks are non-negative.
func (r Rule) score(fr Rect, w, h int) (pri, sec int) {
	slackW := fr.W - w
	slackH := fr.H - h

	short, long := slackW, slackH
	if slackH < short {
		short = slackH
	}
	if slackW > long {
		long = slackW
	}

	switch r {
	case BestLongSideFit:
		return long, short
	case BestAreaFit:
		return fr.W*fr.H - w*h, short
	case BottomLeftDistance:
		return fr.X*fr.X + fr.Y*fr.Y, short
	default: // BestShortSideFit
		return short, long
	}
}
