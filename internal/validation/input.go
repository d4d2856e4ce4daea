package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxProjectTitleLength       = 255
	MaxProjectDescriptionLength = 5000
	MaxBioLength                = 1000
	MaxTopicLength              = 50
	MaxTopicsCount              = 10
	MaxInterestsCount           = 20
	MaxLanguageLength           = 50
	MaxRepoURLLength            = 500
	MaxGithubUsernameLength     = 39
)

var githubUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9]|-[a-zA-Z0-9])*$`)

// ValidateLength проверяет длину строки в символах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation(fieldName, fmt.Sprintf("должно быть не менее %d символов", min))
	}
	if max > 0 && length > max {
		return apperror.Validation(fieldName, fmt.Sprintf("должно быть не более %d символов", max))
	}
	return nil
}

// ValidateProject проверяет текстовые поля проекта до обращения к модели.
func ValidateProject(title, description, language string, repoURL *string, topics []string) error {
	if err := ValidateLength("title", strings.TrimSpace(title), 1, MaxProjectTitleLength); err != nil {
		return err
	}
	if err := ValidateLength("description", strings.TrimSpace(description), 1, MaxProjectDescriptionLength); err != nil {
		return err
	}
	if err := ValidateLength("language", language, 0, MaxLanguageLength); err != nil {
		return err
	}
	if err := ValidateRepoURL(repoURL); err != nil {
		return err
	}
	return ValidateTags("topics", topics, MaxTopicsCount)
}

// ValidateProfile проверяет текстовые поля профиля.
func ValidateProfile(bio, githubUsername string, interests []string) error {
	if err := ValidateLength("bio", strings.TrimSpace(bio), 0, MaxBioLength); err != nil {
		return err
	}
	if err := ValidateGithubUsername(githubUsername); err != nil {
		return err
	}
	return ValidateTags("interests", interests, MaxInterestsCount)
}

// ValidateTags проверяет список меток: не больше maxCount, без пустых и повторов (без учёта регистра).
func ValidateTags(fieldName string, tags []string, maxCount int) error {
	if len(tags) > maxCount {
		return apperror.Validation(fieldName, fmt.Sprintf("не более %d значений", maxCount))
	}

	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return apperror.Validation(fieldName, "значение не может быть пустым")
		}
		if utf8.RuneCountInString(tag) > MaxTopicLength {
			return apperror.Validation(fieldName, fmt.Sprintf("значение не может быть длиннее %d символов", MaxTopicLength))
		}
		lower := strings.ToLower(tag)
		if seen[lower] {
			return apperror.Validation(fieldName, fmt.Sprintf("'%s' указано дважды", tag))
		}
		seen[lower] = true
	}
	return nil
}

// ValidateRepoURL проверяет ссылку на репозиторий.
func ValidateRepoURL(link *string) error {
	if link == nil || *link == "" {
		return nil
	}
	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength("repo_url", linkStr, 0, MaxRepoURLLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return apperror.Validation("repo_url", "некорректный формат URL")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperror.Validation("repo_url", "ссылка должна начинаться с http:// или https://")
	}
	if parsedURL.Host == "" {
		return apperror.Validation("repo_url", "ссылка должна содержать доменное имя")
	}
	return nil
}

// ValidateGithubUsername проверяет логин GitHub; пустой логин допустим.
func ValidateGithubUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil
	}
	if err := ValidateLength("github_username", username, 1, MaxGithubUsernameLength); err != nil {
		return err
	}
	if !githubUsernameRegex.MatchString(username) {
		return apperror.Validation("github_username", "допустимы латинские буквы, цифры и одиночные дефисы")
	}
	return nil
}
