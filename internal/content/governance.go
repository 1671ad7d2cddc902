// Package content holds the fixed deck about engineering governance.
package content

import "github.com/basel-ax/deckgen/internal/domain"

// Section is one bullet slide
type Section struct {
	Heading string
	Bullets []string
}

// Deck is the complete content of a presentation
type Deck struct {
	Title    string
	Subtitle string
	Sections []Section
	Closing  Section
	Prompts  map[string]string
}

// Requests lists the illustration requests in slide order
func (d Deck) Requests() []domain.SlideRequest {
	reqs := make([]domain.SlideRequest, 0, len(d.Sections)+2)
	reqs = append(reqs, domain.SlideRequest{Label: d.Title, Prompt: d.Prompts[d.Title]})
	for _, s := range d.Sections {
		reqs = append(reqs, domain.SlideRequest{Label: s.Heading, Prompt: d.Prompts[s.Heading]})
	}
	reqs = append(reqs, domain.SlideRequest{Label: d.Closing.Heading, Prompt: d.Prompts[d.Closing.Heading]})
	return reqs
}

// Governance returns the corporate governance deck
func Governance() Deck {
	return Deck{
		Title:    "Corporate Governance and Legal Responsibilities of Engineers",
		Subtitle: "Protecting Stakeholders Through Ethical Engineering",
		Sections: []Section{
			{
				Heading: "Governance Overview",
				Bullets: []string{
					"Corporate governance sets direction, control, and accountability for organizations.",
					"Balances interests of shareholders, management, customers, regulators, and the public.",
					"Engineers translate governance strategy into safe, compliant technical solutions.",
				},
			},
			{
				Heading: "Governance Structures",
				Bullets: []string{
					"Boards establish strategy, approve risk appetite, and monitor performance impacting engineering programs.",
					"Audit, risk, and compliance committees oversee controls and reporting tied to technical work.",
					"Defined reporting lines connect engineering leads with governance bodies for oversight.",
				},
			},
			{
				Heading: "Policies Shaping Engineering",
				Bullets: []string{
					"Quality and safety policies define technical requirements, testing, and approvals.",
					"Sustainability commitments steer design choices toward ESG-aligned outcomes.",
					"Transparency mandates accurate data reporting and stakeholder communication.",
				},
			},
			{
				Heading: "Legal Duties of Engineers",
				Bullets: []string{
					"Duty of care requires diligence in design, testing, and deployment to protect public safety.",
					"Compliance with applicable regulations: building codes, environmental statutes, industry standards.",
					"Thorough documentation and traceability demonstrate compliance and mitigate liability.",
				},
			},
			{
				Heading: "Ethics and Professional Standards",
				Bullets: []string{
					"Adhere to codes from IEEE, NSPE, or local engineering bodies to guide conduct.",
					"Identify conflicts of interest early; escalate issues through governance channels.",
					"Balance innovation with societal responsibilities and long-term stakeholder trust.",
				},
			},
			{
				Heading: "Risk Management Role",
				Bullets: []string{
					"Embed risk assessments in design reviews, FMEA, and technical audits.",
					"Track key risk indicators and mitigation plans within governance frameworks.",
					"Capture lessons learned from engineering failures to strengthen future controls.",
				},
			},
			{
				Heading: "Partnering with Legal & Compliance",
				Bullets: []string{
					"Support regulatory filings, certifications, and audit responses with accurate data.",
					"Provide technical diligence during mergers, acquisitions, and vendor evaluations.",
					"Craft precise specifications, warranties, and liability clauses within contracts.",
				},
			},
			{
				Heading: "Accountability & Documentation",
				Bullets: []string{
					"Maintain design records, change logs, and approvals in accessible repositories.",
					"Use RACI matrices to clarify roles in technical decisions and sign-offs.",
					"Document rationale in decision registers to stand up under investigation or litigation.",
				},
			},
			{
				Heading: "Future Governance Trends",
				Bullets: []string{
					"AI governance, data privacy, and cybersecurity regulations expand engineering duties.",
					"ESG reporting raises expectations for lifecycle sustainability and transparency.",
					"Global harmonization of engineering standards demands continuous monitoring.",
				},
			},
		},
		Closing: Section{
			Heading: "Key Takeaways & Next Steps",
			Bullets: []string{
				"Engineering governance blends technical diligence, legal compliance, and ethical leadership.",
				"Immediate actions: review policies, assess compliance gaps, schedule training refreshers.",
				"Encourage dialogue: invite questions and plan deeper dives into governance priorities.",
			},
		},
		Prompts: map[string]string{
			"Corporate Governance and Legal Responsibilities of Engineers": "futuristic corporate boardroom with engineers collaborating, digital governance dashboard, purple accent lighting, cinematic concept art",
			"Governance Overview":                "illustration of a balanced corporate governance wheel with diverse engineers and stakeholders, modern flat design, soft purple palette",
			"Governance Structures":              "organizational chart visual with board, committees, and engineering team connections, isometric style, violet tones",
			"Policies Shaping Engineering":       "engineer reviewing safety policy documents and sustainability checklist in a modern workspace, digital art",
			"Legal Duties of Engineers":          "engineer signing compliance documents with legal scales and blueprint overlay, photo-realistic, professional lighting",
			"Ethics and Professional Standards":  "diverse engineers pledging integrity with abstract ethical compass backdrop, semi-realistic digital painting",
			"Risk Management Role":               "engineers analyzing risk dashboard with holographic warnings and mitigation icons, cyberpunk-inspired scene",
			"Partnering with Legal & Compliance": "engineer collaborating with legal advisor over contract documents, high-resolution illustration, warm tones",
			"Accountability & Documentation":     "digital archive room with holographic records and engineer updating logs, sci-fi yet professional aesthetic",
			"Future Governance Trends":           "AI-powered cityscape with connected infrastructure and governance icons, visionary concept art, purple glow",
			"Key Takeaways & Next Steps":         "team of engineers celebrating success with checklist and roadmap, modern vector illustration, optimistic lighting",
		},
	}
}
