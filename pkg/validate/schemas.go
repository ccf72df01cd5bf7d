package validate

const (
	StatusMatched = "Matched"
	StatusPartial = "Partial"
	StatusMissing = "Missing"
)

// RoleProfileSchema is the contract for a synthesized ideal-candidate profile.
var RoleProfileSchema = Schema{
	Name: "role_profile",
	Root: Field{
		Kind: KindObject,
		Fields: []Field{
			{
				Name:        "ideal_profile_summary",
				Kind:        KindString,
				Description: "A 3-5 sentence summary of the ideal candidate for this role.",
				Required:    true,
				NonEmpty:    true,
			},
			{
				Name:        "top_technical_skills",
				Kind:        KindArray,
				Description: "The 5-10 most frequently mentioned technical skills.",
				Required:    true,
				NonEmpty:    true,
				Items:       &Field{Kind: KindString, NonEmpty: true},
			},
			{
				Name:        "top_soft_skills",
				Kind:        KindArray,
				Description: "The 3-5 most frequently mentioned soft skills.",
				Required:    true,
				Items:       &Field{Kind: KindString, NonEmpty: true},
			},
		},
	},
}

var learningStep = Field{
	Kind: KindObject,
	Fields: []Field{
		{Name: "step_title", Kind: KindString, Description: "Short title of the learning step.", Required: true, NonEmpty: true},
		{Name: "estimated_hours", Kind: KindNumber, Description: "Estimated effort in hours.", Required: true, Min: Bound(0), ExclusiveMin: true},
		{Name: "details", Kind: KindString, Description: "What exactly to do in this step.", Required: true},
	},
}

var skillComparisonItem = Field{
	Kind: KindObject,
	Fields: []Field{
		{Name: "skill_name", Kind: KindString, Required: true, NonEmpty: true},
		{
			Name:        "match_status",
			Kind:        KindString,
			Description: "Matched, Partial or Missing.",
			Required:    true,
			Enum:        []string{StatusMatched, StatusPartial, StatusMissing},
		},
		{Name: "justification", Kind: KindString, Required: true},
		{
			Name:        "learning_plan",
			Kind:        KindArray,
			Description: "3-5 learning steps for Partial or Missing skills, null for Matched.",
			Nullable:    true,
			NonEmpty:    true,
			Items:       &learningStep,
		},
	},
	Check: checkLearningPlan,
}

// checkLearningPlan enforces: learning_plan is null iff match_status is Matched.
func checkLearningPlan(obj map[string]any) (string, string) {
	status, _ := obj["match_status"].(string)
	plan, present := obj["learning_plan"]
	hasPlan := present && plan != nil
	switch status {
	case StatusMatched:
		if hasPlan {
			return "learning_plan", "must be null when match_status is Matched"
		}
	case StatusPartial, StatusMissing:
		if !hasPlan {
			return "learning_plan", "is required when match_status is " + status
		}
	}
	return "", ""
}

// SkillGapSchema is the contract for a resume-versus-role skill-gap analysis.
var SkillGapSchema = Schema{
	Name: "skill_gap",
	Root: Field{
		Kind: KindObject,
		Fields: []Field{
			{
				Name:        "skill_match_score",
				Kind:        KindNumber,
				Description: "Overall match percentage from 0 to 100.",
				Required:    true,
				Min:         Bound(0),
				Max:         Bound(100),
			},
			{Name: "analysis_summary", Kind: KindString, Description: "A brief summary of the analysis.", Required: true},
			{
				Name:     "skill_comparison",
				Kind:     KindArray,
				Required: true,
				Items:    &skillComparisonItem,
			},
		},
	},
}
