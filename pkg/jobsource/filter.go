package jobsource

import "strings"

// Posting is a single job-board entry.
type Posting struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
}

// FilterDescriptions keeps postings whose title contains every keyword of
// roleName (case-insensitive substring match). When nothing matches, every
// posting with a description is accepted instead. The result is capped at limit.
func FilterDescriptions(postings []Posting, roleName string, limit int) []string {
	keywords := strings.Fields(strings.ToLower(strings.TrimSpace(roleName)))

	var strict, loose []string
	for _, p := range postings {
		if strings.TrimSpace(p.Description) == "" {
			continue
		}
		loose = append(loose, p.Description)
		if titleMatches(strings.ToLower(p.Title), keywords) {
			strict = append(strict, p.Description)
		}
	}

	out := strict
	if len(out) == 0 {
		out = loose
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func titleMatches(title string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(title, kw) {
			return false
		}
	}
	return true
}
