// Package fetch - platform.go provides platform detection and LinkedIn page selectors.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformLinkedIn is the LinkedIn jobs site
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "linkedin.com" || strings.HasSuffix(host, ".linkedin.com") {
		return PlatformLinkedIn
	}
	return PlatformUnknown
}

// FieldSelectors maps each top-card field to a selector group. The public
// guest page uses topcard__* classes; the logged-in page uses
// jobs-unified-top-card__* classes.
type FieldSelectors struct {
	Company     string
	Title       string
	Description string
	Location    string
	DatePosted  string
	JobType     string
	Applicants  string
}

// LinkedInFieldSelectors returns the selectors for LinkedIn job pages.
func LinkedInFieldSelectors() FieldSelectors {
	return FieldSelectors{
		Company: ".topcard__org-name-link, .jobs-unified-top-card__company-name, " +
			".jobs-unified-top-card__subtitle-primary-grouping a",
		Title: ".topcard__title, .jobs-unified-top-card__job-title, .jobs-unified-top-card__title",
		Description: ".description__text, .jobs-description-content, .jobs-description__content",
		Location: ".topcard__flavor--bullet, .jobs-unified-top-card__workplace-type, " +
			".jobs-unified-top-card__subtitle-primary-grouping .jobs-unified-top-card__bullet",
		DatePosted: ".posted-time-ago__text, .jobs-unified-top-card__posted-date, " +
			".jobs-unified-top-card__subtitle-secondary-grouping .jobs-unified-top-card__posted-date",
		JobType: ".topcard__flavor--bullet:nth-of-type(2), .jobs-unified-top-card__job-insight:nth-of-type(1), " +
			".jobs-unified-top-card__subtitle-primary-grouping .jobs-unified-top-card__workplace-type",
		Applicants: ".num-applicants__caption, .jobs-unified-top-card__applicant-count, " +
			".jobs-unified-top-card__subtitle-secondary-grouping .jobs-unified-top-card__applicant-count",
	}
}

// PlatformContentSelectors returns content selectors for the description body.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformLinkedIn:
		return []string{
			".description__text",
			".jobs-description-content",
			".jobs-description__content",
			".show-more-less-html__markup",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".social-share",
		".share-buttons",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformLinkedIn:
		return append(common,
			".show-more-less-html__button",
			".description__job-criteria-list",
			".similar-jobs",
			".people-also-viewed",
			".sign-up-modal",
			".contextual-sign-in-modal",
		)
	default:
		return common
	}
}
