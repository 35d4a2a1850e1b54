package api

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,15}$`)
)

// allowed resume extensions
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

func validResumeFilename(name string) bool {
	return resumeExtensions[strings.ToLower(filepath.Ext(name))]
}

type requiredField struct {
	name  string
	value string
}

// requireFields returns a message naming the first empty field, or "".
func requireFields(fields ...requiredField) string {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Sprintf("%s is required", f.name)
		}
	}
	return ""
}
