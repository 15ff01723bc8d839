package scraper

import (
	"strings"

	"github.com/jonathan/job-tracker/internal/fetch"
)

// Extract reads the top-card fields and description from a job page.
// Missing fields become NotSpecified and a missing description NotAvailable.
func Extract(html, url string) (JobInfo, error) {
	doc, err := fetch.ParseDocument(html)
	if err != nil {
		return JobInfo{}, err
	}

	sel := fetch.LinkedInFieldSelectors()
	info := JobInfo{
		Title:      orNotSpecified(fetch.FirstText(doc, sel.Title)),
		Company:    orNotSpecified(fetch.FirstText(doc, sel.Company)),
		Location:   orNotSpecified(fetch.FirstText(doc, sel.Location)),
		DatePosted: orNotSpecified(fetch.FirstText(doc, sel.DatePosted)),
		JobType:    orNotSpecified(fetch.FirstText(doc, sel.JobType)),
		Applicants: orNotSpecified(fetch.FirstText(doc, sel.Applicants)),
		URL:        url,
	}

	info.Description = NotAvailable
	if desc := doc.Find(sel.Description).First(); desc.Length() > 0 {
		noise := fetch.PlatformNoiseSelectors(fetch.DetectPlatform(url))
		desc.Find(strings.Join(noise, ", ")).Remove()
		if text := CleanText(desc.Text()); text != "" {
			info.Description = text
		}
	}

	return info, nil
}

// NeedsBrowser reports whether a statically fetched page looks like a
// sign-in wall or a client-rendered shell: no title, or too little text.
func NeedsBrowser(html string, info JobInfo) bool {
	if info.Title == NotSpecified {
		return true
	}
	platform := fetch.DetectPlatform(info.URL)
	text, err := fetch.ExtractMainText(html,
		fetch.PlatformContentSelectors(platform),
		fetch.PlatformNoiseSelectors(platform)...)
	if err != nil {
		return true
	}
	return fetch.ShouldUseBrowser(text)
}

func orNotSpecified(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}
