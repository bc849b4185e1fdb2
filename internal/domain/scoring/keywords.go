package scoring

// Keyword tables used by the sub-scores. These are configuration data, not
// logic: tests and future tuning should touch only this file.

// roleAbbreviations maps shorthand title tokens to their canonical form so
// "sr dev" and "senior developer" compare equal token-for-token.
var roleAbbreviations = map[string]string{
	"dev":    "developer",
	"devs":   "developer",
	"eng":    "engineer",
	"engr":   "engineer",
	"sr":     "senior",
	"jr":     "junior",
	"mgr":    "manager",
	"pm":     "product manager",
	"swe":    "software engineer",
	"ml":     "machine learning",
	"ai":     "artificial intelligence",
	"fe":     "frontend",
	"be":     "backend",
	"fs":     "fullstack",
	"ops":    "operations",
	"qa":     "quality assurance",
	"ux":     "user experience",
	"ui":     "user interface",
	"infosec": "security",
}

// experienceKeywords marks a title/tag as matching a stated experience level.
// The keys are the full vocabulary the preferences API accepts; a level
// missing here could never earn its bonus.
var experienceKeywords = map[string][]string{
	"entry":  {"intern", "entry", "graduate", "junior", "trainee"},
	"junior": {"junior", "entry", "associate"},
	"mid":    {"mid", "intermediate", "ii", "2"},
	"senior": {"senior", "sr", "lead", "iii", "3"},
	"staff":  {"staff", "principal", "senior"},
	"lead":   {"lead", "principal", "staff", "head", "director"},
}

// startupMarkers / corporateMarkers drive the crude company-size heuristic.
var startupMarkers = []string{
	"labs", "startup", ".io", ".ai", "studio", "ventures", "app",
}

var corporateMarkers = []string{
	"inc", "corp", "corporation", "llc", "ltd", "group", "global",
	"holdings", "international", "plc", "gmbh",
}

// TagKeywords exposes the tag table so source adapters synthesize the same
// vocabulary the scorer matches against.
func TagKeywords() map[string][]string {
	return tagKeywords
}

// tagKeywords synthesize tags for sources that publish none, by keyword
// matching against title + description.
var tagKeywords = map[string][]string{
	"golang":     {"golang", "go developer", "go engineer"},
	"python":     {"python", "django", "flask"},
	"javascript": {"javascript", "typescript", "node", "react", "vue"},
	"java":       {"java ", "spring", "kotlin"},
	"mobile":     {"ios", "android", "mobile", "react native", "flutter"},
	"devops":     {"devops", "kubernetes", "terraform", "sre", "ci/cd"},
	"data":       {"data engineer", "data scientist", "analytics", "etl"},
	"backend":    {"backend", "back-end", "api", "microservice"},
	"frontend":   {"frontend", "front-end", "css", "web developer"},
	"design":     {"designer", "figma", "ux", "ui design"},
	"security":   {"security", "infosec", "penetration", "appsec"},
	"management": {"manager", "lead", "director", "head of"},
}
