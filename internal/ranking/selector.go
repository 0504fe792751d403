package ranking

// SelectionRule names the gate that produced a selection.
type SelectionRule string

const (
	RuleExactTitle   SelectionRule = "exact_title"
	RuleStrongRerank SelectionRule = "strong_rerank"
	RuleStrongRoute  SelectionRule = "strong_route"
	RuleSafeDefault  SelectionRule = "safe_default"
	RuleFallbackTop  SelectionRule = "fallback_top"
	RuleAmbiguous    SelectionRule = "ambiguous"
	RuleNoCandidates SelectionRule = "no_candidates"
)

// Selection is the outcome of SelectCandidate. Candidate is nil when the
// query is ambiguous and the caller has to ask the user.
type Selection struct {
	Candidate *Candidate
	Rule      SelectionRule
	Pool      []Candidate
}

// Select ranks the top SelectPoolSize templates and returns the single best
// fit, or nil when confidence is too low to choose automatically.
func (e *Engine) Select(input string) *Candidate {
	return e.SelectWithReason(input).Candidate
}

// SelectWithReason is Select plus the rule that decided and the ranked pool.
func (e *Engine) SelectWithReason(input string) Selection {
	return SelectCandidate(e.Rank(input, SelectPoolSize))
}

// SelectCandidate applies the confidence gates, in order, to an already
// ranked pool.
func SelectCandidate(pool []Candidate) Selection {
	sel := Selection{Pool: pool}
	if len(pool) == 0 {
		sel.Rule = RuleNoCandidates
		return sel
	}
	top := pool[0]
	pick := func(c Candidate, rule SelectionRule) Selection {
		sel.Candidate = &c
		sel.Rule = rule
		return sel
	}

	if top.IsExactTitleMatch {
		return pick(top, RuleExactTitle)
	}

	runnerUp := 0.0
	if len(pool) > 1 {
		runnerUp = pool[1].RerankConfidence
	}
	if top.RerankConfidence >= SelectRerankStrong && top.RerankConfidence-runnerUp >= SelectRerankGap {
		return pick(top, RuleStrongRerank)
	}

	if top.RouteConfidence >= SelectRouteStrong && top.RerankConfidence >= SelectRouteMinRerank {
		return pick(top, RuleStrongRoute)
	}

	for _, c := range pool {
		if c.Difficulty <= SafeDefaultMaxDiff && c.EstimatedTimeMin <= SafeDefaultMaxMinutes && c.RouteConfidence >= SelectSafeMinRoute {
			return pick(c, RuleSafeDefault)
		}
	}

	if top.RerankConfidence >= SelectFallbackRerank || top.RouteConfidence >= SelectFallbackRouteMin {
		return pick(top, RuleFallbackTop)
	}

	sel.Rule = RuleAmbiguous
	return sel
}
