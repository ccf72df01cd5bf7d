package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "c++ and c# rest api", NormalizeText("  C++ and C#,  REST-API! "))
	assert.Equal(t, "node js", NormalizeText("Node.js"))
}

func TestCanonicalSkill(t *testing.T) {
	assert.Equal(t, "go", CanonicalSkill("Golang"))
	assert.Equal(t, "postgres", CanonicalSkill("PostgreSQL"))
	assert.Equal(t, "cicd", CanonicalSkill("CI/CD"))
	assert.Equal(t, "nodejs", CanonicalSkill("Node.js"))
	assert.Equal(t, "docker", CanonicalSkill("Docker"))
}

func TestDedupeSkills(t *testing.T) {
	in := []string{"Go", " golang ", "PostgreSQL", "Postgres", "", "Communication", "communication", "Docker"}
	assert.Equal(t, []string{"Go", "PostgreSQL", "Communication", "Docker"}, DedupeSkills(in))
	assert.Empty(t, DedupeSkills(nil))
}

func TestMissingSkills(t *testing.T) {
	resume := "Built services in Golang on k8s, with REST APIs and PostgreSQL."
	skills := []string{"Go", "Kubernetes", "Postgres", "Terraform", "REST"}
	assert.Equal(t, []string{"Terraform"}, MissingSkills(resume, skills))
	assert.Equal(t, []string{"Rust"}, MissingSkills("Trusted engineer", []string{"Rust"}))
}

func TestContainsPhrase(t *testing.T) {
	assert.True(t, ContainsPhrase("rest api design", "rest api"))
	assert.False(t, ContainsPhrase("rest apis", "rest api"))
	assert.False(t, ContainsPhrase("anything", ""))
}
