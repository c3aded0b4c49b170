package menu

// legacyClassifier mirrors the tier bookkeeping of older releases:
//
//   - an exact token match always sets the tier to exact,
//   - a prefix match sets prefix unless the running tier is already exact,
//   - a substring match sets substring only when nothing stronger is recorded,
//   - a failing token zeroes the tier and stops the scan for that item.
//
// The running tier is shared across items, so an item can inherit a value left
// by the previous one. Only Matcher.LegacyTierCarry selects this path.
type legacyClassifier struct {
	m    Matcher
	tier Tier
}

func newLegacyClassifier(m Matcher) *legacyClassifier {
	return &legacyClassifier{m: m}
}

func (l *legacyClassifier) classify(text string, tokens []string) Tier {
	for _, tok := range tokens {
		switch l.m.TierOf(text, tok) {
		case TierExact:
			l.tier = TierExact
		case TierPrefix:
			if l.tier != TierExact {
				l.tier = TierPrefix
			}
		case TierSubstring:
			if l.tier == TierNone {
				l.tier = TierSubstring
			}
		default:
			l.tier = TierNone
			return TierNone
		}
	}
	return l.tier
}
