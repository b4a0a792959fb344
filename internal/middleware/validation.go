package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxIDLen       = 64 // contestants.id / users.id / votes.id VARCHAR(64)
	MaxProvinceLen = 64 // contestants.province VARCHAR(64)

	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

var (
	// idRe matches opaque record IDs: alphanumeric, dash, underscore (covers UUIDs).
	idRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	// provinceRe matches province names: letters, spaces, hyphens.
	provinceRe = regexp.MustCompile(`^[A-Za-z][A-Za-z -]*$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that a record ID is well-formed and within DB limits.
// The field name is used in the error message.
func ValidateID(id, field string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", field + " is required"
	}
	if len(id) > MaxIDLen {
		return "", field + " must be at most 64 characters"
	}
	if !idRe.MatchString(id) {
		return "", field + " contains invalid characters"
	}
	return id, ""
}

// ValidatePagination parses page/limit query values, applying defaults and
// clamping limit to MaxPageLimit.
func ValidatePagination(pageStr, limitStr string) (int, int, string) {
	page := 1
	if pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, "page must be a positive integer"
		}
		page = p
	}

	limit := DefaultPageLimit
	if limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			return 0, 0, "limit must be a positive integer"
		}
		if l > MaxPageLimit {
			l = MaxPageLimit
		}
		limit = l
	}

	return page, limit, ""
}

// ValidateProvince checks an optional province filter.
func ValidateProvince(province string) (string, string) {
	province = strings.TrimSpace(province)
	if province == "" {
		return "", ""
	}
	if len(province) > MaxProvinceLen {
		return "", "province must be at most 64 characters"
	}
	if !provinceRe.MatchString(province) {
		return "", "province contains invalid characters"
	}
	return province, ""
}
