package nlp

import (
	"regexp"
	"strings"
)

var (
	reNonWord = regexp.MustCompile(`[^\p{L}\p{N}+#]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// NormalizeText: нижний регистр, всё кроме букв, цифр, "+" и "#" становится
// пробелом, пробелы схлопываются. "+" и "#" нужны для c++ и c#.
func NormalizeText(s string) string {
	s = reNonWord.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// aliases maps normalized spellings to one canonical form.
var aliases = map[string]string{
	"golang":     "go",
	"postgresql": "postgres",
	"k8s":        "kubernetes",
	"js":         "javascript",
	"ts":         "typescript",
	"rest api":   "rest",
	"restful":    "rest",
	"ci cd":      "cicd",
	"node js":    "nodejs",
	"node":       "nodejs",
	"react js":   "react",
	"reactjs":    "react",
}

// CanonicalSkill returns the comparison key for a skill name.
func CanonicalSkill(skill string) string {
	n := NormalizeText(skill)
	if c, ok := aliases[n]; ok {
		return c
	}
	return n
}

// SkillVariants returns the canonical form plus every alias of it.
func SkillVariants(skill string) []string {
	canon := CanonicalSkill(skill)
	if canon == "" {
		return nil
	}
	out := []string{canon}
	for alias, c := range aliases {
		if c == canon {
			out = append(out, alias)
		}
	}
	return out
}

// DedupeSkills drops blanks and repeated skills, keeping the first spelling
// and the original order.
func DedupeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := CanonicalSkill(s)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

// MissingSkills returns the skills that the text does not mention under any variant.
func MissingSkills(text string, skills []string) []string {
	normalized := NormalizeText(text)
	var missing []string
	for _, s := range skills {
		found := false
		for _, v := range SkillVariants(s) {
			if ContainsPhrase(normalized, v) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, s)
		}
	}
	return missing
}

// ContainsPhrase проверяет наличие фразы (уже нормализованной) как целых слов.
// Пример: "rest api" найдётся в " ... rest api ..." но не в " ... rest apis ..."
func ContainsPhrase(normalizedText, normalizedPhrase string) bool {
	if normalizedPhrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + normalizedPhrase + " "
	return strings.Contains(hay, needle)
}
