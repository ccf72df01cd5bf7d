package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/artem13815/skillsync/pkg/llm"
	"github.com/artem13815/skillsync/pkg/validate"
)

type fakeModels struct {
	gotModel  string
	gotPrompt string
	gotConfig *genai.GenerateContentConfig
	resp      *genai.GenerateContentResponse
	err       error
	getErr    error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.gotModel = model
	f.gotConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.gotPrompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func (f *fakeModels) Get(_ context.Context, _ string, _ *genai.GetModelConfig) (*genai.Model, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &genai.Model{Name: "models/gemini-2.5-flash"}, nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGenerateJSONMode(t *testing.T) {
	fm := &fakeModels{resp: textResponse(`{"ok":true}`)}
	c := newWithModels(fm, "")

	out, err := c.Generate(context.Background(), llm.Request{
		Operation: "role_profile",
		System:    "be precise",
		Prompt:    "describe the role",
		Mode:      llm.ModeJSON,
		Schema:    &validate.RoleProfileSchema,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, defaultModel, fm.gotModel)
	assert.Equal(t, "describe the role", fm.gotPrompt)

	require.NotNil(t, fm.gotConfig)
	assert.Equal(t, "application/json", fm.gotConfig.ResponseMIMEType)
	require.NotNil(t, fm.gotConfig.SystemInstruction)
	assert.Equal(t, "be precise", fm.gotConfig.SystemInstruction.Parts[0].Text)

	schema := fm.gotConfig.ResponseSchema
	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.ElementsMatch(t, []string{"ideal_profile_summary", "top_technical_skills", "top_soft_skills"}, schema.Required)
	assert.Equal(t, genai.TypeArray, schema.Properties["top_technical_skills"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["top_technical_skills"].Items.Type)
}

func TestGenerateTextModeHasNoSchema(t *testing.T) {
	fm := &fakeModels{resp: textResponse("  rewritten resume \n")}
	c := newWithModels(fm, "gemini-2.5-pro")

	out, err := c.Generate(context.Background(), llm.Request{Prompt: "rewrite", Mode: llm.ModeText})
	require.NoError(t, err)
	assert.Equal(t, "rewritten resume", out)
	assert.Equal(t, "gemini-2.5-pro", fm.gotModel)
	assert.Empty(t, fm.gotConfig.ResponseMIMEType)
	assert.Nil(t, fm.gotConfig.ResponseSchema)
	assert.Nil(t, fm.gotConfig.SystemInstruction)
}

func TestGenerateErrors(t *testing.T) {
	c := newWithModels(&fakeModels{err: errors.New("quota exceeded")}, "")
	_, err := c.Generate(context.Background(), llm.Request{Prompt: "x"})
	require.ErrorIs(t, err, llm.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "quota exceeded")

	c = newWithModels(&fakeModels{resp: &genai.GenerateContentResponse{}}, "")
	_, err = c.Generate(context.Background(), llm.Request{Prompt: "x"})
	require.ErrorIs(t, err, llm.ErrGenerationFailed)
}

func TestSkillGapSchemaConversion(t *testing.T) {
	s := toGenaiSchema(validate.SkillGapSchema.Root)

	score := s.Properties["skill_match_score"]
	require.NotNil(t, score.Minimum)
	require.NotNil(t, score.Maximum)
	assert.Equal(t, 0.0, *score.Minimum)
	assert.Equal(t, 100.0, *score.Maximum)

	item := s.Properties["skill_comparison"].Items
	assert.Equal(t, []string{"Matched", "Partial", "Missing"}, item.Properties["match_status"].Enum)
	plan := item.Properties["learning_plan"]
	require.NotNil(t, plan.Nullable)
	assert.True(t, *plan.Nullable)
	assert.NotContains(t, item.Required, "learning_plan")
}

func TestCheck(t *testing.T) {
	c := newWithModels(&fakeModels{}, "")
	assert.NoError(t, c.Check(context.Background()))
	assert.Equal(t, "gemini", c.Name())

	c = newWithModels(&fakeModels{getErr: errors.New("not found")}, "")
	assert.Error(t, c.Check(context.Background()))
}
