package canonical

// fieldSpec maps one canonical field to the source keys accepted for it,
// in precedence order.
type fieldSpec struct {
	name string
	keys []string
}

func field(name string, keys ...string) fieldSpec {
	if len(keys) == 0 {
		keys = []string{name}
	}
	return fieldSpec{name: name, keys: keys}
}

// summaryKeys is the fallback chain for the top-level summary.
var summaryKeys = []string{"summary", "professionalSummary", "summaryText"}

// personalFields are merged by exact name only.
var personalFields = []string{"fullName", "email", "phoneNumber", "location", "linkedin", "gitHub", "portfolio"}

var (
	skillFields = []fieldSpec{
		field("title", "title", "name"),
		field("level"),
	}

	experienceFields = []fieldSpec{
		field("jobTitle", "jobTitle", "title", "position"),
		field("company", "company", "organization"),
		field("location"),
		field("duration"),
		field("description"),
	}

	educationFields = []fieldSpec{
		field("degree"),
		field("university", "university", "institution"),
		field("Marks", "marks", "Marks"),
		field("location"),
		field("graduationYear"),
	}

	certificationFields = []fieldSpec{
		field("title", "title", "name"),
		field("issuingOrganization", "issuingOrganization", "organization"),
		field("year", "year", "date"),
	}

	// LiveLink is accepted last so an already canonical project keeps its link.
	projectFields = []fieldSpec{
		field("title", "title", "name"),
		field("description"),
		field("githubLink", "githubLink", "github"),
		field("LiveLink", "liveLink", "url", "LiveLink"),
	}

	// technologiesUsed keeps list values, so it is resolved separately.
	projectTechnologies = field("technologiesUsed", "technologiesUsed", "techStack")

	languageFields = []fieldSpec{
		field("name", "name", "language"),
	}

	interestFields = []fieldSpec{
		field("name", "name", "title"),
	}

	achievementFields = []fieldSpec{
		field("title", "title", "name"),
		field("description"),
		field("link"),
	}
)
