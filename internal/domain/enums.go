package domain

// PIILabel is one of the labels the model is asked to use for a record.
type PIILabel string

const (
	LabelName                   PIILabel = "Name"
	LabelUsername               PIILabel = "Username"
	LabelEmail                  PIILabel = "Email"
	LabelPhoneNumber            PIILabel = "Phone Number"
	LabelHomeAddress            PIILabel = "Home Address"
	LabelMailingAddress         PIILabel = "Mailing Address"
	LabelDateOfBirth            PIILabel = "Date of Birth"
	LabelNationalIDNumber       PIILabel = "National ID Number"
	LabelPassportNumber         PIILabel = "Passport Number"
	LabelDriversLicenseNumber   PIILabel = "Driver’s License Number"
	LabelCreditCardNumber       PIILabel = "Credit Card Number"
	LabelBankAccountNumber      PIILabel = "Bank Account Number"
	LabelLicensePlate           PIILabel = "License Plate"
	LabelIPAddress              PIILabel = "IP Address"
	LabelMACAddress             PIILabel = "MAC Address"
	LabelGeolocationCoordinates PIILabel = "Geolocation Coordinates"
	LabelSocialMediaHandle      PIILabel = "Social Media Handle"
	LabelOtherPII               PIILabel = "Other PII"
)

// AllowedLabels lists the labels in the order they are presented to the model.
var AllowedLabels = []PIILabel{
	LabelName,
	LabelUsername,
	LabelEmail,
	LabelPhoneNumber,
	LabelHomeAddress,
	LabelMailingAddress,
	LabelDateOfBirth,
	LabelNationalIDNumber,
	LabelPassportNumber,
	LabelDriversLicenseNumber,
	LabelCreditCardNumber,
	LabelBankAccountNumber,
	LabelLicensePlate,
	LabelIPAddress,
	LabelMACAddress,
	LabelGeolocationCoordinates,
	LabelSocialMediaHandle,
	LabelOtherPII,
}

// Record kinds synthesized by the service rather than reported by the model.
const (
	// KindFallback labels a reply line that had no "Label: value" separator.
	KindFallback = "PII"
	// KindError labels the in-band error record returned by /ingest.
	KindError = "error"
)

// NoPIIToken is the reply the model gives when the input holds no PII.
const NoPIIToken = "NIL"

// IngestNoPII is the value of the /ingest "pii" field when nothing was found.
const IngestNoPII = "null"

// ChatRole identifies the author of a chat message sent to the model.
type ChatRole string

const (
	ChatRoleSystem ChatRole = "system"
	ChatRoleUser   ChatRole = "user"
)

// AuditSinkType selects where ingested prompts are recorded.
type AuditSinkType string

const (
	AuditSinkFile     AuditSinkType = "file"
	AuditSinkS3       AuditSinkType = "s3"
	AuditSinkPostgres AuditSinkType = "postgres"
	AuditSinkNone     AuditSinkType = "none"
)
