package extractor

import (
	"path/filepath"
	"strings"
	"unicode"
)

const (
	defaultName  = "John Doe"
	defaultEmail = "john@example.com"
)

const fallbackTemplate = `{{name}}
Email: {{email}}
Phone: (555) 123-4567

SUMMARY
Experienced web developer with expertise in Next.js, React, and TypeScript.

EXPERIENCE
Senior Frontend Developer - Tech Company
2021 - Present
- Developed responsive web applications using Next.js and React
- Implemented user authentication and API integration
- Optimized application performance and load times

Web Developer - Digital Agency
2018 - 2021
- Built client websites and web applications
- Collaborated with design team to implement UI/UX requirements
- Managed project timelines and client expectations

EDUCATION
Bachelor of Computer Science, University of Technology (2018)

SKILLS
- JavaScript/TypeScript
- Next.js/React
- Node.js
- API Integration
- UI/UX Design`

// слова, которые не являются частью имени
var nameStopWords = map[string]bool{
	"resume": true,
	"résumé": true,
	"cv":     true,
}

// FallbackResume шаблонное резюме с именем и email, выведенными из имени файла
func FallbackResume(fileName string) string {
	name := DisplayName(fileName)
	email := defaultEmail
	if name != defaultName {
		email = DerivedEmail(name)
	}
	text := strings.ReplaceAll(fallbackTemplate, "{{name}}", name)
	text = strings.ReplaceAll(text, "{{email}}", email)
	return Normalize(text)
}

// DisplayName jane_doe-resume.pdf -> Jane Doe
func DisplayName(fileName string) string {
	base := filepath.Base(strings.TrimSpace(fileName))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	})
	parts := make([]string, 0, len(words))
	for _, word := range words {
		lower := strings.ToLower(word)
		if nameStopWords[lower] || isDigits(lower) {
			continue
		}
		parts = append(parts, titleCase(lower))
	}
	if len(parts) == 0 {
		return defaultName
	}
	return strings.Join(parts, " ")
}

// DerivedEmail Jane Doe -> jane.doe@example.com
func DerivedEmail(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ".")) + "@example.com"
}

func titleCase(word string) string {
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func isDigits(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
