package validation

// ProfileData holds the profile fields that carry rules.
type ProfileData struct {
	Handle    string   `json:"handle" validate:"notblank,min=2,max=40"`
	Status    string   `json:"status" validate:"notblank"`
	Skills    []string `json:"skills" validate:"min=1"`
	Website   string   `json:"website" validate:"weburl"`
	Youtube   string   `json:"youtube" validate:"weburl"`
	Twitter   string   `json:"twitter" validate:"weburl"`
	Facebook  string   `json:"facebook" validate:"weburl"`
	Linkedin  string   `json:"linkedin" validate:"weburl"`
	Instagram string   `json:"instagram" validate:"weburl"`
}

var profileMessages = map[string]string{
	"handle.notblank": "Profile handle is required",
	"handle":          "Handle needs to be between 2 and 40 characters",
	"status":          "Status field is required",
	"skills":          "Skills field is required",
	"website":         "Not a valid URL",
	"youtube":         "Not a valid URL",
	"twitter":         "Not a valid URL",
	"facebook":        "Not a valid URL",
	"linkedin":        "Not a valid URL",
	"instagram":       "Not a valid URL",
}

// ValidateProfile checks a profile submission.
func ValidateProfile(d ProfileData) Result {
	return check(d, profileMessages)
}

// ExperienceData is the add-experience form.
type ExperienceData struct {
	Title   string `json:"title" validate:"notblank"`
	Company string `json:"company" validate:"notblank"`
	From    string `json:"from" validate:"notblank,isodate"`
	To      string `json:"to" validate:"isodate"`
}

var experienceMessages = map[string]string{
	"title":         "Job title field is required",
	"company":       "Company field is required",
	"from.notblank": "From date field is required",
	"from.isodate":  "Not a valid date",
	"to":            "Not a valid date",
}

// ValidateExperience checks an experience entry.
func ValidateExperience(d ExperienceData) Result {
	return check(d, experienceMessages)
}

// EducationData is the add-education form.
type EducationData struct {
	School       string `json:"school" validate:"notblank"`
	Degree       string `json:"degree" validate:"notblank"`
	FieldOfStudy string `json:"fieldofstudy" validate:"notblank"`
	From         string `json:"from" validate:"notblank,isodate"`
	To           string `json:"to" validate:"isodate"`
}

var educationMessages = map[string]string{
	"school":        "School field is required",
	"degree":        "Degree field is required",
	"fieldofstudy":  "Field of study field is required",
	"from.notblank": "From date field is required",
	"from.isodate":  "Not a valid date",
	"to":            "Not a valid date",
}

// ValidateEducation checks an education entry.
func ValidateEducation(d EducationData) Result {
	return check(d, educationMessages)
}
