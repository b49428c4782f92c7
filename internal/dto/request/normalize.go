package request

import "strings"

// blankToNil clears optional fields that were sent as empty or whitespace,
// so "" means "not set" rather than failing a format rule.
func blankToNil(fields ...**string) {
	for _, f := range fields {
		if *f != nil && strings.TrimSpace(**f) == "" {
			*f = nil
		}
	}
}

func (r *DogRequest) Normalize() {
	blankToNil(&r.CallName, &r.RegistrationNumber, &r.Microchip,
		&r.DateOfBirth, &r.DateOfDeath, &r.Color,
		&r.SireID, &r.DamID, &r.KennelID, &r.LitterID,
		&r.BreederName, &r.OwnerName,
		&r.AppraisalDate, &r.AppraisalJudge, &r.AppraisalNotes,
		&r.HipScore, &r.ElbowScore, &r.EyeTest, &r.DNAProfile, &r.Notes)
}

func (r *LitterRequest) Normalize() {
	blankToNil(&r.SireID, &r.DamID, &r.KennelID, &r.Notes)
}

func (r *KennelRequest) Normalize() {
	blankToNil(&r.Prefix, &r.OwnerName, &r.ContactEmail, &r.Phone,
		&r.Website, &r.City, &r.Country, &r.Description)
}

func (r *AttachmentUploadRequest) Normalize() {
	blankToNil(&r.Title, &r.CertificateType, &r.IssuedBy, &r.IssuedAt)
}
