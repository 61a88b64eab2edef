package validator

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 8
	maxPasswordLength = 128
	maxStudioNameLen  = 255
	maxClientNameLen  = 255
	maxProjectNameLen = 255
	maxTagLabelLen    = 64
	asciiControlStart = 32
	asciiDelete       = 127

	// MaxImageSizeBytes is the inclusive upload ceiling (5MiB).
	MaxImageSizeBytes = int64(5 * 1024 * 1024)

	imageContentTypePrefix = "image/"

	errEmailEmptyFmt           = "email cannot be empty"
	errEmailLengthFmt          = "email must be between %d and %d characters"
	errEmailInvalidFmt         = "invalid email format"
	errPasswordMinLengthFmt    = "password must be at least %d characters"
	errPasswordMaxLengthFmt    = "password must not exceed %d characters"
	errStudioNameEmptyFmt      = "studio name cannot be empty"
	errStudioNameMaxLengthFmt  = "studio name must not exceed %d characters"
	errClientNameEmptyFmt      = "client name cannot be empty"
	errClientNameMaxLengthFmt  = "client name must not exceed %d characters"
	errProjectNameEmptyFmt     = "project name cannot be empty"
	errProjectNameMaxLengthFmt = "project name must not exceed %d characters"
	errTagLabelEmptyFmt        = "deliverable label cannot be empty"
	errTagLabelMaxLengthFmt    = "deliverable label must not exceed %d characters"
	errTagLabelControlFmt      = "deliverable label cannot contain control characters"
	errNoDeliverables          = "Please select at least one deliverable"
	errImageTypeFmt            = "file must be an image, got %s"
	errImageSizeFmt            = "image must not exceed %d bytes"
	errImageSizeNegativeFmt    = "image size cannot be negative"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

func StudioName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errStudioNameEmptyFmt)
	}

	if len(name) > maxStudioNameLen {
		return fmt.Errorf(errStudioNameMaxLengthFmt, maxStudioNameLen)
	}

	return nil
}

func ClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errClientNameEmptyFmt)
	}

	if len(name) > maxClientNameLen {
		return fmt.Errorf(errClientNameMaxLengthFmt, maxClientNameLen)
	}

	return nil
}

func ProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf(errProjectNameEmptyFmt)
	}

	if len(name) > maxProjectNameLen {
		return fmt.Errorf(errProjectNameMaxLengthFmt, maxProjectNameLen)
	}

	return nil
}

func TagLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return fmt.Errorf(errTagLabelEmptyFmt)
	}

	if len(label) > maxTagLabelLen {
		return fmt.Errorf(errTagLabelMaxLengthFmt, maxTagLabelLen)
	}

	for _, char := range label {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errTagLabelControlFmt)
		}
	}

	return nil
}

// Deliverables rejects an empty tag selection. A project with zero
// deliverables is disallowed, not merely discouraged.
func Deliverables(tags []string) error {
	if len(tags) == 0 {
		return fmt.Errorf(errNoDeliverables)
	}

	for _, tag := range tags {
		if err := TagLabel(tag); err != nil {
			return err
		}
	}

	return nil
}

// Image checks upload constraints for image endpoints. A file of exactly
// MaxImageSizeBytes is accepted; one byte more is rejected.
func Image(contentType string, size int64) error {
	if !strings.HasPrefix(strings.ToLower(contentType), imageContentTypePrefix) {
		return fmt.Errorf(errImageTypeFmt, contentType)
	}

	if size < 0 {
		return fmt.Errorf(errImageSizeNegativeFmt)
	}

	if size > MaxImageSizeBytes {
		return fmt.Errorf(errImageSizeFmt, MaxImageSizeBytes)
	}

	return nil
}
