package rendering

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// sectionOrder is the order of the well-known sections; everything else follows alphabetically
var sectionOrder = []string{"summary", "skills", "experience", "education", "projects", "certifications", "publications"}

var headerFields = []string{"name", "email", "phone", "linkedin", "github", "website", "location"}

// listSections expect a list and reject plain strings
var listSections = []string{"experience", "education", "projects", "certifications", "publications"}

type sectionWriter func(p *page, content any)

var sectionWriters = map[string]sectionWriter{
	"experience": writeExperience,
	"skills":     writeSkills,
	"education":  writeEducation,
	"projects":   writeProjects,
}

func writeHeader(p *page, data map[string]any) {
	name := "Resume"
	if truthy(data["name"]) {
		name = text(data["name"])
	}
	p.paragraph(styleHeaderName, plain(name))

	hasContact := false
	for _, field := range []string{"email", "phone", "linkedin", "github", "website"} {
		if truthy(data[field]) {
			hasContact = true
			break
		}
	}
	if !hasContact {
		return
	}

	for _, line := range [][]string{{"email", "phone"}, {"github", "linkedin"}} {
		var parts []string
		for _, field := range line {
			if truthy(data[field]) {
				parts = append(parts, text(data[field]))
			}
		}
		if len(parts) > 0 {
			p.paragraph(styleContact, plain(strings.Join(parts, " | ")))
		}
	}
	p.space(5)
}

func writeSection(p *page, key string, content any) {
	p.paragraph(styleSection, plain(sectionTitle(key)))
	p.divider()

	if s, ok := content.(string); ok {
		switch {
		case key == "education":
			writeEducation(p, educationFromText(s))
		case key == "skills" || slices.Contains(listSections, key):
			p.paragraph(styleError, plain("Error: Invalid data format for "+key))
			p.paragraph(styleNormal, plain(cut(s, 250)+"..."))
		default:
			p.paragraph(styleNormal, plain(s))
		}
		return
	}

	if writer, ok := sectionWriters[key]; ok {
		writer(p, content)
		return
	}
	writeGeneric(p, content)
}

func writeExperience(p *page, content any) {
	for _, item := range items(content) {
		exp, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var left string
		switch {
		case exp["company"] != nil && exp["location"] != nil:
			left = text(exp["company"]) + ", " + text(exp["location"])
		case exp["company"] != nil:
			left = text(exp["company"])
		}
		p.row(styleEntryTitle, left, text(exp["date"]))

		if exp["title"] != nil {
			p.paragraph(styleJobTitle, italic(text(exp["title"])))
		}

		if exp["responsibilities"] != nil {
			p.space(5)
			for _, resp := range items(exp["responsibilities"]) {
				p.bullet(styleListItem, highlight(text(resp))...)
			}
		}
		for _, achievement := range items(exp["achievements"]) {
			p.bullet(styleListItem, plain(text(achievement)))
		}

		p.space(10)
	}
}

func writeSkills(p *page, content any) {
	switch skills := content.(type) {
	case map[string]any:
		for _, category := range sortedKeys(skills) {
			p.paragraph(styleSkillItem, bold(category+":"), plain(" "+text(skills[category])))
			p.space(3)
		}
	default:
		p.paragraph(styleSkillItem, plain(text(skills)))
	}
}

func educationFromText(s string) []any {
	details := cut(s, 500)
	if details != s {
		details += "..."
	}
	return []any{map[string]any{
		"institution": "From Resume Text",
		"degree":      "Education Information",
		"details":     []any{details},
	}}
}

// normalizeEducation coerces the education value into a list of entries
func normalizeEducation(v any) any {
	switch val := v.(type) {
	case string:
		return educationFromText(val)
	case []any:
		return val
	case map[string]any:
		return []any{val}
	default:
		return []any{map[string]any{
			"institution": "Invalid Format",
			"degree":      "Could not parse education data",
			"details":     []any{fmt.Sprintf("Original type: %T", v)},
		}}
	}
}

func writeEducation(p *page, content any) {
	for _, item := range items(normalizeEducation(content)) {
		edu, ok := item.(map[string]any)
		if !ok {
			p.paragraph(styleError, plain(fmt.Sprintf("Skipped invalid education entry (not a dictionary): %s...", cut(text(item), 100))))
			continue
		}

		var left string
		switch {
		case edu["institution"] != nil && edu["location"] != nil:
			left = text(edu["institution"]) + ", " + text(edu["location"])
		case edu["institution"] != nil:
			left = text(edu["institution"])
		case edu["school"] != nil:
			left = text(edu["school"])
		default:
			left = "Institution not specified"
		}

		date := text(edu["date"])
		if edu["date"] == nil {
			date = text(edu["dates"])
		}
		p.row(styleEntryTitle, left, date)

		switch {
		case edu["degree"] != nil && edu["major"] != nil:
			p.paragraph(styleJobTitle, italic(text(edu["degree"])+": "+text(edu["major"])))
		case edu["degree"] != nil:
			p.paragraph(styleJobTitle, italic(text(edu["degree"])))
		}

		if details, ok := edu["details"].([]any); ok {
			p.space(5)
			for _, detail := range details {
				p.bullet(styleListItem, plain(text(detail)))
			}
		} else if courses := coursework(edu); courses != "" {
			p.space(5)
			p.paragraph(styleContent, bold("Relevant Coursework:"))
			p.paragraph(styleContent, plain(courses))
		}

		p.space(10)
	}
}

// coursework reads a courses list or a coursework string
func coursework(edu map[string]any) string {
	if courses, ok := edu["courses"].([]any); ok {
		return text(courses)
	}
	if truthy(edu["coursework"]) {
		return text(edu["coursework"])
	}
	return ""
}

func writeProjects(p *page, content any) {
	for _, item := range items(content) {
		project, ok := item.(map[string]any)
		if !ok {
			continue
		}

		if project["name"] != nil {
			spans := []span{bold(text(project["name"]))}
			if project["date"] != nil {
				spans = append(spans, plain(" ("+text(project["date"])+")"))
			}
			p.paragraph(styleJobTitle, spans...)
		}

		if project["description"] != nil {
			p.bullet(styleListItem, plain(text(project["description"])))
		}

		if project["technologies"] != nil {
			p.paragraph(styleDetails, italic("Technologies: "+text(project["technologies"])))
		}

		p.space(5)
	}
}

func writeGeneric(p *page, content any) {
	switch val := content.(type) {
	case []any:
		for _, item := range val {
			entry, ok := item.(map[string]any)
			if !ok {
				p.bullet(styleListItem, plain(text(item)))
				continue
			}
			for _, key := range sortedKeys(entry) {
				writeKeyValue(p, key, entry[key])
			}
			p.space(3)
		}
	case map[string]any:
		for _, key := range sortedKeys(val) {
			writeKeyValue(p, key, val[key])
		}
	default:
		p.paragraph(styleContent, plain(text(val)))
	}
}

func writeKeyValue(p *page, key string, value any) {
	if list, ok := value.([]any); ok {
		p.paragraph(styleContent, bold(key+":"))
		for _, item := range list {
			p.bullet(styleListItem, plain(text(item)))
		}
		return
	}
	p.paragraph(styleContent, bold(key+":"), plain(" "+text(value)))
}

// remainingSections lists keys outside the header and the ordered sections, sorted
func remainingSections(data map[string]any) []string {
	var keys []string
	for _, key := range sortedKeys(data) {
		if slices.Contains(headerFields, key) || slices.Contains(sectionOrder, key) || data[key] == nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
