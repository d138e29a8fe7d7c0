package markup

// ItemCounts summarizes the answerable items of a question.
type ItemCounts struct {
	Choices          int
	CorrectChoices   int
	Dropdowns        int
	CorrectDropdowns int
	Blanks           int
	Markers          int
}

// CountItems tallies items by type.
func CountItems(items []Item) ItemCounts {
	var c ItemCounts
	for _, item := range items {
		switch it := item.(type) {
		case ChoiceOption:
			c.Choices++
			if it.Correct {
				c.CorrectChoices++
			}
		case DropdownOption:
			c.Dropdowns++
			if it.Correct {
				c.CorrectDropdowns++
			}
		case BlankToken:
			c.Blanks++
		case InlineMarker:
			c.Markers++
		}
	}
	return c
}

func inferKind(items []Item) Kind {
	c := CountItems(items)
	families := 0
	for _, n := range []int{c.Choices, c.Dropdowns, c.Blanks} {
		if n > 0 {
			families++
		}
	}
	switch {
	case families == 0:
		return KindPlain
	case families > 1:
		return KindMixed
	case c.Choices > 0:
		if c.CorrectChoices > 1 {
			return KindMultiChoice
		}
		return KindSingleChoice
	case c.Dropdowns > 0:
		return KindDropdown
	default:
		return KindFillBlank
	}
}

// ChoiceMode reports whether the choice options of q act as a
// multi-select group. Mixed questions follow the same marked-count rule.
func (q Question) ChoiceMode() Kind {
	if CountItems(q.Items).CorrectChoices > 1 {
		return KindMultiChoice
	}
	return KindSingleChoice
}
