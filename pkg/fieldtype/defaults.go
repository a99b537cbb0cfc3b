package fieldtype

import "github.com/goliatone/go-formkit/pkg/schema"

// DefaultOptions returns the option set installed when a field of the given
// type is created. Domain-specific choice types carry a fixed catalogue;
// generic choice types start with a single editable placeholder so authoring
// UIs always have at least one option to edit. Non-choice types return nil.
func DefaultOptions(t schema.FieldType) []schema.Option {
	switch t {
	case schema.FieldTypeLanguage:
		return []schema.Option{
			{ID: "ielts", Value: "ielts", Label: "IELTS Preparation"},
			{ID: "pte", Value: "pte", Label: "PTE Preparation"},
			{ID: "german", Value: "german", Label: "German Language"},
			{ID: "spanish", Value: "spanish", Label: "Spanish Language"},
			{ID: "french", Value: "french", Label: "French Language"},
			{ID: "japanese", Value: "japanese", Label: "Japanese Language"},
			{ID: "other", Value: "other", Label: "Other Language"},
		}
	case schema.FieldTypeProficiency:
		return []schema.Option{
			{ID: "beginner", Value: "beginner", Label: "Beginner (A1)"},
			{ID: "elementary", Value: "elementary", Label: "Elementary (A2)"},
			{ID: "intermediate", Value: "intermediate", Label: "Intermediate (B1)"},
			{ID: "upper-intermediate", Value: "upper-intermediate", Label: "Upper Intermediate (B2)"},
			{ID: "advanced", Value: "advanced", Label: "Advanced (C1)"},
			{ID: "proficient", Value: "proficient", Label: "Proficient (C2)"},
		}
	case schema.FieldTypeEducation:
		return []schema.Option{
			{ID: "slc", Value: "slc", Label: "SLC/SEE"},
			{ID: "plus2", Value: "plus2", Label: "+2/Intermediate"},
			{ID: "bachelor", Value: "bachelor", Label: "Bachelor's Degree"},
			{ID: "master", Value: "master", Label: "Master's Degree"},
			{ID: "phd", Value: "phd", Label: "PhD/Doctorate"},
		}
	case schema.FieldTypeTimePreference:
		return []schema.Option{
			{ID: "morning", Value: "morning", Label: "Morning (6:00 AM - 8:00 AM)"},
			{ID: "day", Value: "day", Label: "Day (10:00 AM - 4:00 PM)"},
			{ID: "evening", Value: "evening", Label: "Evening (4:00 PM - 8:00 PM)"},
			{ID: "weekend", Value: "weekend", Label: "Weekend Only"},
			{ID: "flexible", Value: "flexible", Label: "Flexible"},
		}
	case schema.FieldTypeSelect, schema.FieldTypeCheckbox:
		return []schema.Option{
			{ID: "opt1", Value: "option1", Label: "Option 1"},
		}
	case schema.FieldTypeText, schema.FieldTypeEmail, schema.FieldTypePhone,
		schema.FieldTypeDate, schema.FieldTypeNumber, schema.FieldTypeTextarea,
		schema.FieldTypeFile, schema.FieldTypeFileOrURL,
		schema.FieldTypeSelectFetch, schema.FieldTypeMultiFetch:
		return nil
	default:
		return nil
	}
}

// UploadPurpose classifies what a file field collects, constraining accepted
// extensions.
type UploadPurpose string

const (
	PurposeDocuments    UploadPurpose = "documents"
	PurposePhotos       UploadPurpose = "photos"
	PurposeCertificates UploadPurpose = "certificates"
	PurposeTranscripts  UploadPurpose = "transcripts"
	PurposeCV           UploadPurpose = "cv"
	PurposePassport     UploadPurpose = "passport"
	PurposeTestScores   UploadPurpose = "test-scores"
	PurposeAny          UploadPurpose = "any"
)

// AcceptedExtensions returns the file extensions accepted for an upload
// purpose. Unknown purposes get the permissive document default.
func AcceptedExtensions(purpose UploadPurpose) []string {
	switch purpose {
	case PurposePhotos:
		return []string{".png", ".jpg", ".jpeg"}
	case PurposeDocuments:
		return []string{".pdf", ".doc", ".docx"}
	case PurposeCertificates:
		return []string{".pdf", ".jpg", ".jpeg", ".png"}
	case PurposeTranscripts:
		return []string{".pdf"}
	case PurposeCV:
		return []string{".pdf", ".doc", ".docx"}
	case PurposePassport:
		return []string{".jpg", ".jpeg", ".png", ".pdf"}
	case PurposeTestScores:
		return []string{".pdf", ".jpg", ".jpeg", ".png"}
	default:
		return []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
	}
}
