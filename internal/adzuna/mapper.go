package adzuna

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

// maxPostingAge is the recency cut-off for fetched postings.
const maxPostingAge = 30 * 24 * time.Hour

// seniorKeywords hard-excludes postings aimed at experienced candidates.
// A match in either title or description discards the posting regardless of
// any "entry level" wording elsewhere — job ads routinely say both.
var seniorKeywords = []string{
	"senior", "sr.", "sr ", "lead", "principal", "staff",
	"manager", "director", "vp", "vice president", "chief",
	"head of", "architect", "expert", "specialist",
	"5+ years", "6+ years", "7+ years", "8+ years", "9+ years", "10+ years",
	"experienced", "seasoned", "advanced",
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// isEntryLevel applies the relevance filter: seniority block list first,
// then the 30-day recency check.
func isEntryLevel(job wireJob, now time.Time) bool {
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)

	for _, kw := range seniorKeywords {
		if strings.Contains(title, kw) || strings.Contains(description, kw) {
			return false
		}
	}

	if now.Sub(job.Created) > maxPostingAge {
		return false
	}

	return true
}

// mapToExternalJob normalises one Adzuna listing into the provider-neutral
// draft shape.
func mapToExternalJob(job wireJob) model.ExternalJob {
	location := job.Location.DisplayName
	isRemote := strings.Contains(strings.ToLower(location), "remote") ||
		strings.Contains(strings.ToLower(job.Description), "remote")

	var applyURL *string
	if job.RedirectURL != "" {
		applyURL = &job.RedirectURL
	}

	return model.ExternalJob{
		ExternalID:  job.ID,
		Title:       job.Title,
		Company:     job.Company.DisplayName,
		CompanyLogo: nil, // Adzuna doesn't provide logos
		Description: CleanDescription(job.Description),
		Location:    location,
		IsRemote:    isRemote,
		Salary:      BuildSalaryString(job.SalaryMin, job.SalaryMax),
		Type:        MapJobType(job.ContractType),
		ApplyURL:    applyURL,
		PostedDate:  job.Created,
		Source:      Source,
	}
}

// BuildSalaryString renders the salary bounds for display:
// both → "$60,000 - $80,000", min only → "$50,000+", max only →
// "Up to $90,000", neither → nil.
func BuildSalaryString(min, max *float64) *string {
	var s string
	switch {
	case min != nil && max != nil:
		s = "$" + groupThousands(*min) + " - $" + groupThousands(*max)
	case min != nil:
		s = "$" + groupThousands(*min) + "+"
	case max != nil:
		s = "Up to $" + groupThousands(*max)
	default:
		return nil
	}
	return &s
}

// groupThousands formats an amount with comma separators and no decimals.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// CleanDescription strips HTML tags, caps the text at 1000 characters with
// a trailing ellipsis, and trims surrounding whitespace. Empty input yields
// an empty string.
func CleanDescription(description string) string {
	if description == "" {
		return ""
	}

	cleaned := htmlTagPattern.ReplaceAllString(description, "")

	// Truncate on runes so multi-byte text keeps 1000 characters and never
	// ends in a split UTF-8 sequence.
	if r := []rune(cleaned); len(r) > 1000 {
		cleaned = string(r[:1000]) + "..."
	}

	return strings.TrimSpace(cleaned)
}

// MapJobType converts an Adzuna contract_type value to the canonical job
// type. Unknown or missing values default to full time.
func MapJobType(contractType string) model.JobType {
	switch strings.ToLower(contractType) {
	case "permanent", "full_time":
		return model.TypeFullTime
	case "part_time":
		return model.TypePartTime
	case "contract":
		return model.TypeContract
	case "temporary":
		return model.TypeTemporary
	default:
		return model.TypeFullTime
	}
}
