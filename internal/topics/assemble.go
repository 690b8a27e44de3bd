package topics

import "sort"

// Assemble merges blocks, their extracted fields and the metadata scan into
// records, in block order. A code missing from the metadata map yields empty
// metadata, never an error.
func Assemble(blocks []TopicBlock, fields []Fields, metadata MetadataMap) []TopicRecord {
	records := make([]TopicRecord, 0, len(blocks))
	for i, b := range blocks {
		var f Fields
		if i < len(fields) {
			f = fields[i]
		}
		m := metadata[b.Code]
		records = append(records, TopicRecord{
			Code:                  b.Code,
			Title:                 b.Title,
			OpeningDate:           m.OpeningDate,
			Deadline:              m.Deadline,
			Destination:           m.Destination,
			BudgetPerProject:      f.BudgetPerProject,
			IndicativeTotalBudget: f.IndicativeTotalBudget,
			NumberOfProjects:      NumberOfProjects(f.IndicativeTotalBudget, f.BudgetPerProject),
			TypeOfAction:          f.TypeOfAction,
			TRL:                   f.TRL,
			Call:                  f.Call,
			ExpectedOutcome:       f.ExpectedOutcome,
			Scope:                 f.Scope,
			FullText:              b.FullText,
		})
	}
	return records
}

// NumberOfProjects is total / perProject, or nil when either is missing or
// perProject is zero.
func NumberOfProjects(total, perProject *float64) *float64 {
	if total == nil || perProject == nil || *perProject == 0 {
		return nil
	}
	n := *total / *perProject
	return &n
}

// orphanedCodes returns the sorted metadata codes no block consumed.
func orphanedCodes(blocks []TopicBlock, metadata MetadataMap) []string {
	used := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		used[b.Code] = struct{}{}
	}
	var orphans []string
	for code := range metadata {
		if _, ok := used[code]; !ok {
			orphans = append(orphans, code)
		}
	}
	sort.Strings(orphans)
	return orphans
}

// duplicateCodes returns codes heading more than one block, in first-seen order.
func duplicateCodes(blocks []TopicBlock) []string {
	seen := make(map[string]int, len(blocks))
	var dups []string
	for _, b := range blocks {
		seen[b.Code]++
		if seen[b.Code] == 2 {
			dups = append(dups, b.Code)
		}
	}
	return dups
}
