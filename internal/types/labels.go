package types

// Column labels shared by the scrape service's tabular output, the structured
// decoder's primary keys and the record export.
const (
	LabelTitle            = "Job Title"
	LabelCompany          = "Company Name"
	LabelDescription      = "Job Description"
	LabelLocation         = "Location"
	LabelDatePosted       = "Date Posted"
	LabelJobType          = "Job Type"
	LabelApplicants       = "Applicants"
	LabelURL              = "URL"
	LabelSkills           = "Skills"
	LabelExperienceLevel  = "Experience Level"
	LabelResponsibilities = "Responsibilities"
	LabelSalaryRange      = "Salary Range"
	LabelWorkMode         = "Work Mode"
)

// ScrapeColumns is the column order of the scrape service's CSV response.
var ScrapeColumns = []string{
	LabelTitle,
	LabelCompany,
	LabelDescription,
	LabelLocation,
	LabelDatePosted,
	LabelJobType,
	LabelApplicants,
	LabelURL,
	LabelSkills,
	LabelExperienceLevel,
	LabelResponsibilities,
	LabelSalaryRange,
	LabelWorkMode,
}

// ListSeparator joins Skills and Responsibilities in a single cell.
const ListSeparator = ";"
