package help

// HelpText contains information about a field
type HelpText struct {
	Title       string
	Description string
	Details     string
}

// Texts contains help information for all wizard fields
var Texts = map[string]HelpText{
	"name": {
		Title:       "FULL NAME",
		Description: "Display name of the staff member.",
		Details:     "Shown on schedules, visit notes and the staff directory.",
	},
	"email": {
		Title:       "EMAIL",
		Description: "Login identifier and notification address.",
		Details:     "Must be unique across the facility. Format: user@domain.tld",
	},
	"phone": {
		Title:       "PHONE",
		Description: "Contact number for the duty roster.",
		Details:     "Digits plus + - ( ) and spaces. Extensions go in parentheses.",
	},
	"password": {
		Title:       "PASSWORD",
		Description: "Initial account password.",
		Details: `Minimum 6 characters when creating an account.
When editing, leave blank to keep the current password unchanged.`,
	},
	"roles": {
		Title:       "ROLES",
		Description: "Roles held at this facility.",
		Details: `At least one role is required.
Selecting Admin grants every permission implicitly and skips the
remaining onboarding steps.`,
	},
	"permissions": {
		Title:       "PERMISSIONS",
		Description: "Fine-grained grants per selected role.",
		Details:     "Pre-ticked entries come from the role's default permission set.",
	},
	"qualifications": {
		Title:       "QUALIFICATIONS",
		Description: "Degrees and certifications, one per line.",
		Details:     "Blank lines are dropped. At least one entry is required.",
	},
	"services": {
		Title:       "SERVICES",
		Description: "Services offered, one per line.",
		Details:     "e.g. General Consultation, Minor Surgery, Vaccination",
	},
	"timings": {
		Title:       "WEEKLY TIMINGS",
		Description: "Consultation hours per weekday.",
		Details: `Mark a day available to set its hours.
Slot duration must be between 5 and 120 minutes.`,
	},
	"faq": {
		Title:       "FAQ",
		Description: "Questions patients see on the staff profile.",
		Details:     "Both question and answer are required for every entry.",
	},
	"share_procedures": {
		Title:       "SHARE PROCEDURES",
		Description: "Revenue-share splits for procedures.",
		Details:     "Share percentage must be greater than zero.",
	},
	"patient_search": {
		Title:       "PATIENT SEARCH",
		Description: "Find the patient to chart a visit for.",
		Details:     "Search by name or MRN. Results refresh as you type.",
	},
	"triage_level": {
		Title:       "TRIAGE LEVEL",
		Description: "Acuity on the 1-5 emergency severity index.",
		Details:     "1 = resuscitation, 5 = non-urgent. Defaults to 3.",
	},
	"vitals": {
		Title:       "VITAL SIGNS",
		Description: "One set of recorded vitals.",
		Details: `Pulse 20-300 bpm, systolic 40-300 mmHg, temperature 30-45 °C,
respiratory rate 4-80 /min, SpO2 0-100 %.`,
	},
	"disposition": {
		Title:       "DISPOSITION",
		Description: "How the visit ends.",
		Details:     "DISCHARGE, ADMIT, TRANSFER, OBSERVATION or LWBS (left without being seen).",
	},
}
