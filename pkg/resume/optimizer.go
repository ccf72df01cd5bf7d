package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/logger"
	"github.com/artem13815/skillsync/pkg/nlp"
	"github.com/artem13815/skillsync/pkg/roleprofile"
)

// OptimizeFailed is returned in place of a rewrite when generation fails.
const OptimizeFailed = "Error: Could not generate optimized resume."

const optimizerSystem = "You are an expert resume writer who specializes in Applicant Tracking Systems (ATS)."

// Optimizer rewrites resumes towards a role profile.
type Optimizer struct {
	ai       llm.Generator
	resumes  Repository
	profiles roleprofile.UseCase
	log      *zap.Logger
}

func NewOptimizer(ai llm.Generator, resumes Repository, profiles roleprofile.UseCase, log *zap.Logger) *Optimizer {
	return &Optimizer{ai: ai, resumes: resumes, profiles: profiles, log: logger.OrNop(log)}
}

// OptimizeForRole loads the owner's resume and the role profile, then
// rewrites the resume. Lookups fail hard; only generation fails soft.
func (o *Optimizer) OptimizeForRole(ctx context.Context, ownerID, resumeID uuid.UUID, roleName string) (string, error) {
	r, err := o.resumes.GetForOwner(ctx, ownerID, resumeID)
	if err != nil {
		return "", err
	}
	profile, err := o.profiles.GetOrCreate(ctx, roleName)
	if err != nil {
		return "", err
	}
	return o.Optimize(ctx, r.ExtractedText, profile), nil
}

// Optimize returns a plain-text rewrite of resumeText, or OptimizeFailed
// when the model call fails.
func (o *Optimizer) Optimize(ctx context.Context, resumeText string, profile roleprofile.Profile) string {
	skills := nlp.DedupeSkills(profile.AllSkills())
	missing := nlp.MissingSkills(resumeText, skills)

	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite the resume below so that it is optimized for the role %q.\n\n", profile.RoleName)
	b.WriteString("Rules:\n")
	b.WriteString("- Keep every fact truthful. Do not invent employers, dates, degrees or projects.\n")
	b.WriteString("- Rephrase experience with strong action verbs and quantified results where the original supports them.\n")
	b.WriteString("- Naturally work in the target keywords the candidate demonstrably has.\n")
	b.WriteString("- Use a simple single-column structure with standard section headings.\n")
	b.WriteString("- Output plain text only: no markdown, no tables, no commentary before or after the resume.\n\n")
	fmt.Fprintf(&b, "Ideal candidate profile:\n%s\n\n", profile.IdealProfileText)
	fmt.Fprintf(&b, "Target keywords: %s\n", strings.Join(skills, ", "))
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Keywords not yet present in the resume: %s\n", strings.Join(missing, ", "))
	}
	fmt.Fprintf(&b, "\nOriginal resume:\n<<<\n%s\n>>>\n", resumeText)

	out, err := o.ai.Generate(ctx, llm.Request{
		Operation: "optimize_resume",
		System:    optimizerSystem,
		Prompt:    b.String(),
		Mode:      llm.ModeText,
	})
	if err != nil {
		o.log.Warn("resume optimization failed", zap.String("role", profile.RoleName), zap.Error(err))
		return OptimizeFailed
	}
	return strings.TrimSpace(out)
}
