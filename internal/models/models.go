package models

import (
	"time"
)

// User roles. Role changes are an out-of-band admin action; the API never
// exposes them.
const (
	RoleEmployer      = "employer"
	RoleAdministrator = "administrator"
)

// Application statuses. Draft is initial; approved and rejected are terminal.
const (
	StatusDraft       = "draft"
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusApproved    = "approved"
	StatusRejected    = "rejected"
)

// Application types.
const (
	TypeNewApplication     = "new_application"
	TypeRenewalApplication = "renewal_application"
)

// User is the local mirror of an identity-provider account, upserted on
// first authenticated request.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Subject is the identity provider's stable account id.
	Subject   string `gorm:"uniqueIndex;not null" json:"-"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `gorm:"default:'employer'" json:"role"`
}

func (u *User) IsAdministrator() bool {
	return u.Role == RoleAdministrator
}

// Application is a license request moving through the review workflow.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// ReferenceNumber is assigned once at creation and never regenerated.
	ReferenceNumber string `gorm:"uniqueIndex;not null" json:"reference_number"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `json:"owner,omitempty"`

	ApplicationType       string `gorm:"not null" json:"application_type"`
	LocalWorkforceCount   int    `json:"local_workforce_count"`
	ForeignWorkforceCount int    `json:"foreign_workforce_count"`
	ContactName           string `json:"contact_name"`
	ContactEmail          string `json:"contact_email"`
	ContactPhone          string `json:"contact_phone"`
	ContactAddress        string `json:"contact_address"`
	ServicesDescription   string `gorm:"type:text" json:"services_description"`

	Status string `gorm:"default:'draft';index" json:"status"`

	// Review audit trail, unset until an administrator acts on the record.
	ReviewComments string     `gorm:"type:text" json:"review_comments,omitempty"`
	ReviewedByID   *uint      `json:"reviewed_by_id,omitempty"`
	ReviewedBy     *User      `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`

	Documents []Document         `json:"documents,omitempty"`
	Checklist *TriagingChecklist `json:"checklist,omitempty"`
}

// Document is uploaded file metadata attached to exactly one application.
// Rows are created at upload time and never updated.
type Document struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ApplicationID uint        `gorm:"index;not null" json:"application_id"`
	Application   Application `json:"-"`

	StoredFilename   string `gorm:"uniqueIndex;not null" json:"-"`
	OriginalFilename string `gorm:"not null" json:"original_filename"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
	// DocumentType is a free-form tag: insurance, training, supporting, other.
	DocumentType string `json:"document_type"`
}

// TriagingChecklist is an administrator-only worksheet attached to at most
// one application. Every field is optional; it never gates a status change.
type TriagingChecklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ApplicationID uint `gorm:"uniqueIndex;not null" json:"application_id"`

	// Decision fields.
	Recommendation *string `json:"recommendation,omitempty"`
	DecisionNotes  *string `gorm:"type:text" json:"decision_notes,omitempty"`
	LicenseClass   *string `json:"license_class,omitempty"`
	ValidityMonths *int    `json:"validity_months,omitempty"`
	Conditions     *string `gorm:"type:text" json:"conditions,omitempty"`

	// Employer information gathered during review.
	RegistrationNumber *string `json:"registration_number,omitempty"`
	BusinessNature     *string `json:"business_nature,omitempty"`
	OperatingAddress   *string `json:"operating_address,omitempty"`
	ContactPerson      *string `json:"contact_person,omitempty"`
	ContactPhone       *string `json:"contact_phone,omitempty"`
	YearsOperating     *int    `json:"years_operating,omitempty"`
	BranchCount        *int    `json:"branch_count,omitempty"`
	TurnoverDeclared   *string `json:"turnover_declared,omitempty"`

	// Review checklist.
	DocumentsComplete       *bool `json:"documents_complete,omitempty"`
	InsuranceValid          *bool `json:"insurance_valid,omitempty"`
	TrainingCertified       *bool `json:"training_certified,omitempty"`
	FeePaid                 *bool `json:"fee_paid,omitempty"`
	PremisesInspected       *bool `json:"premises_inspected,omitempty"`
	WorkforceVerified       *bool `json:"workforce_verified,omitempty"`
	RecordsCompliant        *bool `json:"records_compliant,omitempty"`
	NoOutstandingViolations *bool `json:"no_outstanding_violations,omitempty"`
	DeclarationSigned       *bool `json:"declaration_signed,omitempty"`
	InterviewCompleted      *bool `json:"interview_completed,omitempty"`
	SafetyOfficerAppointed  *bool `json:"safety_officer_appointed,omitempty"`

	ReviewerRemarks *string `gorm:"type:text" json:"reviewer_remarks,omitempty"`
}
