package constants

type ContentType string

const (
	AcademicPaper      ContentType = "Academic Paper"
	Recipe             ContentType = "Recipe"
	ResumeCV           ContentType = "Resume/CV"
	CredentialsList    ContentType = "Credentials List"
	DateBasedContent   ContentType = "Date-based Content"
	MeetingNotes       ContentType = "Meeting Notes"
	StructuredData     ContentType = "Structured Data"
	NarrativeStory     ContentType = "Narrative/Story"
	ProductInformation ContentType = "Product Information"
	GeneralText        ContentType = "General Text"
)

var allContentTypes = []ContentType{
	AcademicPaper,
	Recipe,
	ResumeCV,
	CredentialsList,
	DateBasedContent,
	MeetingNotes,
	StructuredData,
	NarrativeStory,
	ProductInformation,
	GeneralText,
}

func (c ContentType) String() string { return string(c) }

func AllContentTypes() []ContentType {
	out := make([]ContentType, len(allContentTypes))
	copy(out, allContentTypes)
	return out
}
