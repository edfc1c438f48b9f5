package dtos

// SaveChecklistRequest mirrors the triaging checklist. Every field is
// optional and independently settable; nil means "leave as is" on upsert.
type SaveChecklistRequest struct {
	// Decision fields
	Recommendation *string `json:"recommendation"`
	DecisionNotes  *string `json:"decision_notes"`
	LicenseClass   *string `json:"license_class"`
	ValidityMonths *int    `json:"validity_months"`
	Conditions     *string `json:"conditions"`

	// Employer information
	RegistrationNumber *string `json:"registration_number"`
	BusinessNature     *string `json:"business_nature"`
	OperatingAddress   *string `json:"operating_address"`
	ContactPerson      *string `json:"contact_person"`
	ContactPhone       *string `json:"contact_phone"`
	YearsOperating     *int    `json:"years_operating"`
	BranchCount        *int    `json:"branch_count"`
	TurnoverDeclared   *string `json:"turnover_declared"`

	// Review checklist
	DocumentsComplete       *bool `json:"documents_complete"`
	InsuranceValid          *bool `json:"insurance_valid"`
	TrainingCertified       *bool `json:"training_certified"`
	FeePaid                 *bool `json:"fee_paid"`
	PremisesInspected       *bool `json:"premises_inspected"`
	WorkforceVerified       *bool `json:"workforce_verified"`
	RecordsCompliant        *bool `json:"records_compliant"`
	NoOutstandingViolations *bool `json:"no_outstanding_violations"`
	DeclarationSigned       *bool `json:"declaration_signed"`
	InterviewCompleted      *bool `json:"interview_completed"`
	SafetyOfficerAppointed  *bool `json:"safety_officer_appointed"`

	ReviewerRemarks *string `json:"reviewer_remarks"`
}
