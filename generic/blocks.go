package generic

// =============================================================================
// BLOCK EXTRACTION
// =============================================================================

// ExtractBlocks turns per-day flags into maximal runs of off-days. Runs with
// no spent day are dropped: a plain weekend is not a vacation. A holiday
// falling on a weekend counts as a weekend day only, so
// PTODays+Holidays+WeekendDays never exceeds TotalDays. For groups, holiday
// should be set only where every party has a holiday.
func ExtractBlocks(dates []TimePoint, off, spent, weekend, holiday []bool) []VacationBlock {
	var blocks []VacationBlock
	for i := 0; i < len(dates); {
		if !off[i] {
			i++
			continue
		}
		j := i
		for j+1 < len(dates) && off[j+1] {
			j++
		}
		if b := makeBlock(dates, i, j, spent, weekend, holiday); b.PTODays > 0 {
			blocks = append(blocks, b)
		}
		i = j + 1
	}
	return blocks
}

func makeBlock(dates []TimePoint, start, end int, spent, weekend, holiday []bool) VacationBlock {
	b := VacationBlock{
		Start:     dates[start],
		End:       dates[end],
		TotalDays: end - start + 1,
	}
	for i := start; i <= end; i++ {
		if spent[i] {
			b.PTODays++
		}
		// A holiday on a weekend counts once, as a weekend day.
		switch {
		case weekend[i]:
			b.WeekendDays++
		case holiday[i]:
			b.Holidays++
		}
	}
	return b
}

// LongestBlock returns the longest block, the earliest on ties.
func LongestBlock(blocks []VacationBlock) (VacationBlock, bool) {
	if len(blocks) == 0 {
		return VacationBlock{}, false
	}
	best := blocks[0]
	for _, b := range blocks[1:] {
		if b.TotalDays > best.TotalDays {
			best = b
		}
	}
	return best, true
}
