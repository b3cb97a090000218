package entity

// specialtyExpertise maps each specialization to the expertise areas a
// doctor may claim under it. Expertise areas submitted during registration
// must be drawn from the chosen specializations' sub-areas.
var specialtyExpertise = map[string][]string{
	"Cardiology":       {"Interventional Cardiology", "Electrophysiology", "Heart Failure", "Preventive Cardiology"},
	"Dermatology":      {"Cosmetic Dermatology", "Pediatric Dermatology", "Dermatopathology"},
	"Neurology":        {"Stroke", "Epilepsy", "Movement Disorders", "Neuromuscular Medicine"},
	"Orthopedics":      {"Sports Medicine", "Joint Replacement", "Spine Surgery", "Hand Surgery"},
	"Pediatrics":       {"Neonatology", "Pediatric Cardiology", "Adolescent Medicine"},
	"Psychiatry":       {"Child Psychiatry", "Addiction Psychiatry", "Geriatric Psychiatry"},
	"General Medicine": {"Diabetes Care", "Hypertension", "Geriatric Care", "Preventive Medicine"},
	"Gynecology":       {"Obstetrics", "Reproductive Endocrinology", "Gynecologic Oncology"},
	"ENT":              {"Otology", "Rhinology", "Laryngology", "Head and Neck Surgery"},
	"Ophthalmology":    {"Cataract Surgery", "Retina", "Glaucoma", "Cornea"},
}

// IsKnownSpecialization reports whether the specialization is recognized
func IsKnownSpecialization(specialization string) bool {
	_, ok := specialtyExpertise[specialization]
	return ok
}

// IsAllowedExpertise reports whether the expertise area belongs to any of
// the given specializations
func IsAllowedExpertise(expertise string, specializations []string) bool {
	for _, spec := range specializations {
		for _, allowed := range specialtyExpertise[spec] {
			if allowed == expertise {
				return true
			}
		}
	}
	return false
}
