package analyses

import "math"

// parameterWeights is the server-side source of truth for parameter weights.
// Model-reported weights are overwritten with these values before scoring.
var parameterWeights = map[string]float64{
	"certifications":    1.2,
	"offensive_skills":  1.1,
	"defensive_skills":  1.1,
	"governance":        1.0,
	"cloud_security":    1.1,
	"tools":             1.0,
	"programming":       1.0,
	"architecture":      1.0,
	"education":         0.9,
	"soft_skills":       1.0,
	"languages":         0.8,
	"devsecops":         1.0,
	"forensics":         1.0,
	"cryptography":      1.0,
	"ot_ics":            1.0,
	"mobile_iot":        1.0,
	"threat_intel":      1.0,
	"contributions":     0.9,
	"publications":      0.9,
	"management":        1.0,
	"crisis":            1.1,
	"transformation":    1.0,
	"niche_specialties": 1.0,
	"experience":        1.2,
}

// parameters returns each scored dimension paired with its wire name, in
// contract order.
func (d *DetailedScores) parameters() []namedParameter {
	return []namedParameter{
		{"certifications", &d.Certifications},
		{"offensive_skills", &d.OffensiveSkills},
		{"defensive_skills", &d.DefensiveSkills},
		{"governance", &d.Governance},
		{"cloud_security", &d.CloudSecurity},
		{"tools", &d.Tools},
		{"programming", &d.Programming},
		{"architecture", &d.Architecture},
		{"education", &d.Education},
		{"soft_skills", &d.SoftSkills},
		{"languages", &d.Languages},
		{"devsecops", &d.DevSecOps},
		{"forensics", &d.Forensics},
		{"cryptography", &d.Cryptography},
		{"ot_ics", &d.OTICS},
		{"mobile_iot", &d.MobileIoT},
		{"threat_intel", &d.ThreatIntel},
		{"contributions", &d.Contributions},
		{"publications", &d.Publications},
		{"management", &d.Management},
		{"crisis", &d.Crisis},
		{"transformation", &d.Transformation},
		{"niche_specialties", &d.NicheSpecialties},
		{"experience", &d.Experience},
	}
}

type namedParameter struct {
	name  string
	param *Parameter
}

// applyWeights stamps the canonical weight onto every parameter.
func applyWeights(d *DetailedScores) {
	for _, np := range d.parameters() {
		np.param.Weight = parameterWeights[np.name]
	}
}

// weightedTotal computes the weight-normalized average score across all
// parameters, clamped to [0, 10] and rounded to two decimals.
func weightedTotal(d *DetailedScores) float64 {
	var sum, weightSum float64
	for _, np := range d.parameters() {
		sum += np.param.Score * np.param.Weight
		weightSum += np.param.Weight
	}
	if weightSum == 0 {
		return 0
	}
	total := sum / weightSum
	if total < 0 {
		total = 0
	}
	if total > 10 {
		total = 10
	}
	return math.Round(total*100) / 100
}

// percentileFor maps a total score to a 0-100 market percentile.
func percentileFor(total float64) int {
	p := int(math.Round(total * 10))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
