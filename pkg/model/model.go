package model

// Report is the complete structured analysis produced for one solution URL.
// It is created once by the generation engine, optionally rehydrated from the
// cache, and never mutated field by field afterwards: callers replace the
// whole value or nothing.
type Report struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	MarketSize string `json:"marketSize,omitempty"`
	// Timestamp is the creation instant in epoch milliseconds. Cache expiry
	// is evaluated against this value, not against store-level TTLs.
	Timestamp int64 `json:"timestamp"`

	CompanyProfile  CompanyProfile  `json:"companyProfile"`
	Overview        Overview        `json:"overview"`
	Industries      []Industry      `json:"industries"`
	Personas        Personas        `json:"personas"`
	Competition     Competition     `json:"competition"`
	Technical       TechnicalAnalysis `json:"technical"`
	ContentStrategy ContentStrategy `json:"contentStrategy"`
}

// Industry returns the industry at the zero-based index, or nil when the
// index is out of range. Views treat a nil result exactly like a missing
// report.
func (r *Report) Industry(idx int) *Industry {
	if r == nil || idx < 0 || idx >= len(r.Industries) {
		return nil
	}
	return &r.Industries[idx]
}

type CompanyProfile struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
	Summary string `json:"summary"`
}

type Overview struct {
	SolutionOverview     string               `json:"solutionOverview"`
	IdealCustomerProfile IdealCustomerProfile `json:"idealCustomerProfile"`
	Differentiators      []IconItem           `json:"differentiators"`
}

type IdealCustomerProfile struct {
	Size       string `json:"size"`
	Industry   string `json:"industry"`
	PainPoints string `json:"painPoints"`
}

// IconItem is the {icon, title, desc} triple used by differentiators and
// industry pain points. The icon is a symbolic glyph name resolved by the
// view layer, not validated here.
type IconItem struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type Industry struct {
	Name       string     `json:"name"`
	MatchScore int        `json:"matchScore"`
	Icon       string     `json:"icon"`
	ImpactText string     `json:"impactText"`
	PainPoints []IconItem `json:"painPoints"`
	JobTitles  []JobTitle `json:"jobTitles"`
	// Slug is produced by the model but no reader consults it; positional
	// index remains the deep-link key.
	Slug string `json:"slug"`
}

type JobTitle struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type Personas struct {
	Roles  []PersonaRole  `json:"roles"`
	Titles []PersonaTitle `json:"titles"`
}

type PersonaRole struct {
	Title      string `json:"title"`
	Desc       string `json:"desc"`
	Icon       string `json:"icon"`
	Power      string `json:"power"`
	PowerColor string `json:"powerColor"`
	Func       string `json:"func"`
	Common     string `json:"common"`
}

// PersonaTitle carries plain-string lists, unlike Industry pain points which
// are {icon,title,desc} triples. The asymmetry is part of the wire contract.
type PersonaTitle struct {
	Title      string   `json:"title"`
	Type       string   `json:"type"`
	RoleClass  string   `json:"roleClass"`
	PainPoints []string `json:"painPoints"`
	Objections []string `json:"objections"`
	Responses  []string `json:"responses"`
}

// Wire-level sentinels marking the "our own offering" competitor entry.
// They stay on the wire for compatibility with stored reports; code must go
// through IsSelf / ExternalCompetitors instead of comparing strings inline.
const (
	SelfCompetitorName = "Us"
	SelfCompetitorType = "Category Leader"
)

// Fallback column headers when fewer than two external competitors exist.
const (
	FallbackCompetitorA = "Competitor A"
	FallbackCompetitorB = "Competitor B"
)

type Competitor struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// IsSelf reports whether the entry represents our own offering. An entry is
// self when either wire sentinel matches; absent or misspelled sentinels
// fail open and the entry counts as an external competitor.
func (c Competitor) IsSelf() bool {
	return c.Name == SelfCompetitorName || c.Type == SelfCompetitorType
}

type Competition struct {
	Competitors     []Competitor         `json:"competitors"`
	Differentiation []DifferentiationRow `json:"differentiation"`
}

// DifferentiationRow is a fixed 4-column comparison. The compA/compB column
// headers are not stored; they are derived from the competitor list via
// CompetitorHeaders.
type DifferentiationRow struct {
	Feature string `json:"feature"`
	Us      string `json:"us"`
	CompA   string `json:"compA"`
	CompB   string `json:"compB"`
}

// ExternalCompetitors returns the competitors that are not our own offering,
// in list order.
func (c Competition) ExternalCompetitors() []Competitor {
	var out []Competitor
	for _, comp := range c.Competitors {
		if !comp.IsSelf() {
			out = append(out, comp)
		}
	}
	return out
}

// CompetitorHeaders derives the two external-competitor column headers for
// the differentiation table: the first two non-self entries in list order,
// with literal placeholders filling any missing slot. Every renderer must
// use this single derivation.
func (c Competition) CompetitorHeaders() (string, string) {
	compA, compB := FallbackCompetitorA, FallbackCompetitorB
	ext := c.ExternalCompetitors()
	if len(ext) > 0 {
		compA = ext[0].Name
	}
	if len(ext) > 1 {
		compB = ext[1].Name
	}
	return compA, compB
}

type TechnicalAnalysis struct {
	Architecture Architecture `json:"architecture"`
	Security     Security     `json:"security"`
	// Scalability is present in the schema but rendered nowhere.
	Scalability    string             `json:"scalability"`
	Integrations   Integrations       `json:"integrations"`
	Implementation Implementation     `json:"implementation"`
	DeepFeatures   []TechnicalFeature `json:"deepFeatures"`
}

type Architecture struct {
	DiagramDescription string   `json:"diagramDescription"`
	DataFlow           string   `json:"dataFlow"`
	Infrastructure     []string `json:"infrastructure"`
}

type Security struct {
	Compliance    []string `json:"compliance"`
	Encryption    string   `json:"encryption"`
	AccessControl string   `json:"accessControl"`
}

type Integrations struct {
	Categories      []IntegrationCategory `json:"categories"`
	APICapabilities string                `json:"apiCapabilities"`
}

type IntegrationCategory struct {
	Name  string   `json:"name"`
	Tools []string `json:"tools"`
}

type Implementation struct {
	TimeToValue  string   `json:"timeToValue"`
	Requirements []string `json:"requirements"`
}

type TechnicalFeature struct {
	Title           string `json:"title"`
	TechnicalDetail string `json:"technicalDetail"`
	BusinessValue   string `json:"businessValue"`
}

// ContentStrategy is a reserved extension point: the schema carries it but
// the model never populates contentMix and no view renders it.
type ContentStrategy struct {
	ContentMix []ContentMixEntry `json:"contentMix"`
}

type ContentMixEntry struct {
	Type       string `json:"type"`
	Percentage int    `json:"percentage"`
}
