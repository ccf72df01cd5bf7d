package skillgap

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/nlp"
	"github.com/artem13815/skillsync/pkg/roleprofile"
	"github.com/artem13815/skillsync/pkg/validate"
)

const analyzerSystem = `You are "SkillSync AI", an expert career mentor. You perform detailed skill-gap analyses and answer with JSON only.`

var steering = map[LearningPreference]string{
	PreferCodingProjects: `steps are hands-on builds, e.g. "Build a small to-do app", "Add client-side routing to it"`,
	PreferVideoCourses:   `steps are courses to watch, e.g. "Watch a 10-hour course on the topic", "Complete the course exercises"`,
	PreferReadingDocs:    `steps are reading assignments, e.g. "Read the official quick-start guide", "Review the API reference"`,
}

// Analyzer compares a resume against a role profile.
type Analyzer struct {
	ai  llm.Generator
	log *zap.Logger
}

func NewAnalyzer(ai llm.Generator, log *zap.Logger) *Analyzer {
	return &Analyzer{ai: ai, log: logger.OrNop(log)}
}

// Analyze returns a validated result. Every failure matches ErrAnalysisFailed
// and keeps its cause.
func (a *Analyzer) Analyze(ctx context.Context, resumeText string, profile roleprofile.Profile, pref LearningPreference) (Result, error) {
	if pref == "" {
		pref = DefaultPreference
	}
	skills := nlp.DedupeSkills(profile.AllSkills())

	raw, err := a.ai.Generate(ctx, llm.Request{
		Operation: "skill_gap",
		System:    analyzerSystem,
		Prompt:    buildPrompt(resumeText, profile, skills, pref),
		Mode:      llm.ModeJSON,
		Schema:    &validate.SkillGapSchema,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	res, err := validate.Decode[Result](raw, validate.SkillGapSchema)
	if err != nil {
		a.log.Warn("skill gap answer rejected",
			zap.String("role", profile.RoleName),
			zap.Error(err),
			zap.String("raw", logger.TruncateForLog(raw, 500)))
		return Result{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	if err := checkCoverage(res, skills); err != nil {
		a.log.Warn("skill gap answer incomplete", zap.String("role", profile.RoleName), zap.Error(err))
		return Result{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	for i := range res.SkillComparison {
		if res.SkillComparison[i].MatchStatus == Matched {
			res.SkillComparison[i].LearningPlan = nil
		}
	}
	return res, nil
}

// checkCoverage requires one comparison item per target skill. Names are
// compared in canonical form, so "Golang" answers for "Go".
func checkCoverage(res Result, skills []string) error {
	covered := make(map[string]struct{}, len(res.SkillComparison))
	for _, it := range res.SkillComparison {
		covered[nlp.CanonicalSkill(it.SkillName)] = struct{}{}
	}
	for _, s := range skills {
		if _, ok := covered[nlp.CanonicalSkill(s)]; !ok {
			return &validate.SchemaViolationError{
				Schema: "skill_gap",
				Field:  "skill_comparison",
				Reason: fmt.Sprintf("missing skill %q", s),
			}
		}
	}
	return nil
}

func buildPrompt(resumeText string, profile roleprofile.Profile, skills []string, pref LearningPreference) string {
	var b strings.Builder
	b.WriteString("Perform a skill-gap analysis of the resume against the target role.\n\n")
	fmt.Fprintf(&b, "USER'S RESUME:\n---\n%s\n---\n\n", resumeText)
	fmt.Fprintf(&b, "IDEAL CANDIDATE PROFILE for %s:\n---\n%s\n---\n\n", profile.RoleName, profile.IdealProfileText)
	fmt.Fprintf(&b, "KEY TARGET SKILLS for %s:\n%s\n\n", profile.RoleName, strings.Join(skills, ", "))
	fmt.Fprintf(&b, "USER'S LEARNING PREFERENCE:\n%s\n\n", pref)
	b.WriteString("INSTRUCTIONS:\n")
	b.WriteString("1. skill_match_score: a number from 0 to 100 for how well the resume matches the ideal profile and key skills.\n")
	b.WriteString("2. analysis_summary: a motivational summary highlighting strengths and the top 2-3 skills to learn.\n")
	b.WriteString("3. skill_comparison: one entry for every key target skill, in the order given.\n")
	b.WriteString("   - match_status is one of \"Matched\", \"Partial\", \"Missing\".\n")
	b.WriteString("   - justification explains the status with evidence from the resume.\n")
	b.WriteString("   - For Partial or Missing provide learning_plan with 3-5 steps; for Matched learning_plan must be null.\n")
	fmt.Fprintf(&b, "   - Learning steps follow the preference %q: %s.\n", string(pref), steering[pref])
	b.WriteString("4. estimated_hours is a realistic positive number for each step.\n")
	b.WriteString("Return a single JSON object with the fields skill_match_score, analysis_summary and skill_comparison.\n")
	return b.String()
}
