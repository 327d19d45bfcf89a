package entity

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"stac-index/internal/utils/text"
)

// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
const maxURLLength = 2048

// Field length limits, in characters.
const (
	MinTitleLength         = 3
	MaxTitleLength         = 50
	MaxTutorialTitleLength = 200
	MinSummaryLength       = 50
	MaxSummaryLength       = 300
	MinSlugLength          = 3
	MaxSlugLength          = 50
	MinAccessInfoLength    = 100
	MaxAccessInfoLength    = 1000
	MinTagLength           = 2
	MaxTagLength           = 50
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

	// validator instances cache struct metadata and are safe for concurrent use.
	validate = validator.New()
)

// ReferenceData is the read-only language membership the checks depend on.
type ReferenceData interface {
	IsProgrammingLanguage(name string) bool
	IsSpokenLanguage(code string) bool
}

// ValidateURL checks that rawURL parses and is an absolute http(s) URL with a host.
// It does not contact the URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" || len(rawURL) > maxURLLength {
		return &InvalidURLError{Message: "URL is invalid"}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &InvalidURLError{Message: "URL is invalid", Err: err}
	}

	// HTTPまたはHTTPSスキームのみ許可
	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return &InvalidURLError{Message: "URL is invalid"}
	}

	if parsedURL.Host == "" {
		return &InvalidURLError{Message: "URL is invalid"}
	}

	return nil
}

// CheckTitle requires between 3 and maxLength characters.
func CheckTitle(title string, maxLength int) (string, error) {
	length := text.CountRunes(title)
	if length < MinTitleLength {
		return "", newValidationError("title", "Title must be at least %d characters, is %d characters", MinTitleLength, length)
	}
	if length > maxLength {
		return "", newValidationError("title", "Title must be no longer than %d characters, is %d characters", maxLength, length)
	}
	return title, nil
}

// CheckSummary requires between 50 and 300 characters.
func CheckSummary(summary string) (string, error) {
	length := text.CountRunes(summary)
	if length < MinSummaryLength {
		return "", newValidationError("summary", "Summary must be at least %d characters, is %d characters", MinSummaryLength, length)
	}
	if length > MaxSummaryLength {
		return "", newValidationError("summary", "Summary must be no longer than %d characters, is %d characters", MaxSummaryLength, length)
	}
	return summary, nil
}

// CheckSlug requires 3 to 50 characters from a-z, 0-9 and the hyphen.
func CheckSlug(slug string) (string, error) {
	length := text.CountRunes(slug)
	if length < MinSlugLength {
		return "", newValidationError("slug", "Slug must be at least %d characters, is %d characters", MinSlugLength, length)
	}
	if length > MaxSlugLength {
		return "", newValidationError("slug", "Slug must be no longer than %d characters, is %d characters", MaxSlugLength, length)
	}
	if !slugPattern.MatchString(slug) {
		return "", NewValidationError("slug", "Slug must only contain the following characters: a-z, 0-9, -")
	}
	return slug, nil
}

// CheckAccess accepts public, protected and private.
func CheckAccess(access string) (Access, error) {
	switch a := Access(access); a {
	case AccessPublic, AccessProtected, AccessPrivate:
		return a, nil
	}
	return "", NewValidationError("access", "Access must be one of `public`, `protected` or `private`")
}

// CheckAccessInfo returns nil for public catalogs whatever was submitted.
// Otherwise the details are required and must be 100 to 1000 characters.
func CheckAccessInfo(access Access, info string) (*string, error) {
	if access == AccessPublic {
		return nil, nil
	}
	length := text.CountRunes(info)
	if length < MinAccessInfoLength {
		return nil, newValidationError("accessInfo", "Access details must be at least %d characters, is %d characters", MinAccessInfoLength, length)
	}
	if length > MaxAccessInfoLength {
		return nil, newValidationError("accessInfo", "Access details must be no longer than %d characters, is %d characters", MaxAccessInfoLength, length)
	}
	return &info, nil
}

// CheckEmail treats an empty address as absent.
func CheckEmail(email string) (string, error) {
	if email == "" {
		return "", nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", NewValidationError("email", "Email is invalid")
	}
	return email, nil
}

// CheckLanguage validates an optional programming language by exact name.
func CheckLanguage(lang string, ref ReferenceData) (*string, error) {
	if lang == "" {
		return nil, nil
	}
	if !ref.IsProgrammingLanguage(lang) {
		return nil, newValidationError("language", "Programming Language %q is invalid", lang)
	}
	return &lang, nil
}

// CheckSpokenLanguage validates a required spoken-language code.
func CheckSpokenLanguage(code string, ref ReferenceData) (string, error) {
	if !ref.IsSpokenLanguage(code) {
		return "", newValidationError("language", "Language %q is invalid", code)
	}
	return code, nil
}

// CheckCategories requires at least one category and names the first unknown one.
func CheckCategories(categories []string) ([]string, error) {
	if len(categories) == 0 {
		return nil, NewValidationError("categories", "At least one category is required")
	}
	for _, c := range categories {
		if !IsCategory(c) {
			return nil, newValidationError("categories", "Category %q is invalid", c)
		}
	}
	return categories, nil
}

// CheckTags requires at least one tag of 2 to 50 characters and returns the tags
// lowercased, in the submitted order.
func CheckTags(tags []string) ([]string, error) {
	if len(tags) == 0 {
		return nil, NewValidationError("tags", "At least one tag is required")
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		length := text.CountRunes(tag)
		if length < MinTagLength {
			return nil, newValidationError("tags", "Tag %q must be at least %d characters, is %d characters", tag, MinTagLength, length)
		}
		if length > MaxTagLength {
			return nil, newValidationError("tags", "Tag %q must be no longer than %d characters, is %d characters", tag, MaxTagLength, length)
		}
		out = append(out, strings.ToLower(tag))
	}
	return out, nil
}
