package aggregator

import (
	"strings"

	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

// Experience-level keyword sets, checked entry → mid → senior with the
// first match winning. The mid/senior branches are rarely reached in
// practice because the fetch adapter already hard-excludes senior postings;
// they are kept so tagging stays correct if that exclusion is ever relaxed.
var (
	entryKeywords  = []string{"junior", "entry", "graduate", "new grad", "associate", "intern", "trainee"}
	midKeywords    = []string{"mid", "intermediate", "2-3 years", "3-5 years"}
	seniorTagWords = []string{"senior", "lead", "principal", "5+ years", "experienced"}
)

// GenerateTags derives the display tags for a fetched posting. The result
// is an ordered sequence — duplicates never arise because each branch adds
// distinct literals, but callers must preserve the order for display.
//
// Deterministic: identical (title, description, category, remote flag,
// type) input always yields the identical sequence.
func GenerateTags(job model.ExternalJob, category string) []string {
	tags := make([]string, 0, 6)
	title := strings.ToLower(job.Title)

	switch category {
	case "software-engineer":
		tags = append(tags, "Software Engineer")
		if strings.Contains(title, "full stack") {
			tags = append(tags, "Full Stack")
		}
		if strings.Contains(title, "frontend") || strings.Contains(title, "front-end") {
			tags = append(tags, "Frontend")
		}
		if strings.Contains(title, "backend") || strings.Contains(title, "back-end") {
			tags = append(tags, "Backend")
		}
	case "data":
		tags = append(tags, "Data Science", "Analytics")
		if strings.Contains(title, "scientist") {
			tags = append(tags, "Data Scientist")
		}
		if strings.Contains(title, "analyst") {
			tags = append(tags, "Data Analyst")
		}
	case "design":
		tags = append(tags, "Design")
		if strings.Contains(title, "ux") {
			tags = append(tags, "UX")
		}
		if strings.Contains(title, "ui") {
			tags = append(tags, "UI")
		}
	case "cybersecurity":
		tags = append(tags, "Cybersecurity", "Security")
	case "ai-ml":
		tags = append(tags, "AI/ML", "Machine Learning")
	case "product":
		tags = append(tags, "Product Management", "Strategy")
	case "devops":
		tags = append(tags, "DevOps", "Cloud")
	case "qa":
		tags = append(tags, "QA", "Testing")
	}

	if job.IsRemote {
		tags = append(tags, "Remote")
	} else {
		tags = append(tags, "On-site")
	}

	tags = append(tags, experienceTag(job))
	tags = append(tags, string(job.Type))

	return tags
}

// experienceTag classifies the posting's experience level. Defaults to
// "Entry Level": this board serves entry-level candidates, and the fetch
// filter already rejected postings with explicit senior wording.
func experienceTag(job model.ExternalJob) string {
	text := strings.ToLower(job.Title + " " + job.Description)

	for _, kw := range entryKeywords {
		if strings.Contains(text, kw) {
			return "Entry Level"
		}
	}
	for _, kw := range midKeywords {
		if strings.Contains(text, kw) {
			return "Mid Level"
		}
	}
	for _, kw := range seniorTagWords {
		if strings.Contains(text, kw) {
			return "Senior Level"
		}
	}
	return "Entry Level"
}
