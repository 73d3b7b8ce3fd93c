package datagen

var (
	firstNames = []string{
		"James", "Maria", "Robert", "Linda", "Michael", "Sofia", "David", "Aisha",
		"Daniel", "Emily", "Carlos", "Grace", "Thomas", "Priya", "Kevin", "Hannah",
	}
	lastNames = []string{
		"Walker", "Garcia", "Chen", "Okafor", "Murphy", "Patel", "Nguyen", "Rossi",
		"Johnson", "Schmidt", "Kowalski", "Reyes", "Bennett", "Kim", "Hughes", "Silva",
	}
	companiesByRole = map[string][]string{
		"gc": {
			"Summit Builders", "Ironclad Construction", "Keystone General", "Blue Ridge Contracting",
			"Cornerstone Development", "Meridian Build Group",
		},
		"subcontractor": {
			"Precision Electric", "AquaFlow Plumbing", "Apex HVAC Services", "SteelFrame Erectors",
			"Granite Concrete Works", "BrightLine Drywall", "TopCoat Painting", "RoofRight Systems",
		},
		"supplier": {
			"BuildMart Supply", "Pacific Lumber Co.", "Metro Steel Distributors", "ReadyMix Materials",
		},
		"bank": {
			"First Builders Bank", "Capital Construction Finance", "Heritage Commercial Lending",
		},
		"admin": {"ProcureHub"},
	}
	projectNames = []string{
		"Riverside Office Complex", "Downtown Medical Center", "Oakwood Elementary Expansion",
		"Harbor View Apartments", "Northgate Shopping Plaza", "Cedar Park Warehouse",
		"Lakeside Community Center", "Metro Transit Hub Renovation", "Sunset Senior Living",
		"Highland Parking Structure", "Westfield Data Center", "Pinecrest Hotel Remodel",
	}
	projectDescriptions = []string{
		"Ground-up construction including site work, foundations and structural steel.",
		"Interior renovation of occupied floors with phased MEP upgrades.",
		"Tilt-up concrete shell with office build-out and loading docks.",
		"Mixed-use development with retail podium and four residential levels.",
		"Seismic retrofit and envelope replacement of an existing structure.",
		"Tenant improvement package including finishes, lighting and fire protection.",
	}
	locations = []string{
		"Austin, TX", "Denver, CO", "Portland, OR", "Phoenix, AZ", "Charlotte, NC",
		"Columbus, OH", "Nashville, TN", "Sacramento, CA",
	}
	projectTimelines = []string{"6 months", "9 months", "12 months", "18 months", "24 weeks", "36 weeks"}
	bidTimelines     = []string{"4 weeks", "6 weeks", "8 weeks", "10 weeks", "2 months", "3 months", "45", "60"}
	bidDescriptions  = []string{
		"Full scope per drawings, including labor, materials and cleanup.",
		"Scope per specifications; excludes permits and temporary power.",
		"Includes value-engineered alternates and a 2-year workmanship warranty.",
		"Crew of 12 with dedicated foreman; schedule assumes site access on award.",
		"Pricing valid for 30 days; includes submittals and as-built drawings.",
	}
	specializations = []string{
		"Electrical", "Plumbing", "HVAC", "Concrete", "Steel Erection", "Drywall",
		"Roofing", "Painting", "Masonry", "Fire Protection", "Excavation", "Glazing",
	}
	notificationTemplates = []struct {
		title    string
		message  string
		kind     string
		category string
	}{
		{"New bid received", "A new bid was submitted on one of your projects.", "info", "bid"},
		{"Bid awarded", "Congratulations, your bid has been awarded.", "success", "bid"},
		{"Bid not selected", "Another bid was selected for this project.", "warning", "bid"},
		{"Project updated", "Plans or timeline changed on a project you follow.", "info", "project"},
		{"Payment received", "A payment has been recorded to your account.", "success", "payment"},
		{"Payment failed", "A payment could not be processed.", "error", "payment"},
		{"New message", "You have a new message from a project participant.", "info", "message"},
		{"Scheduled maintenance", "The platform will be briefly unavailable tonight.", "warning", "system"},
	}
	inventoryCatalog = []struct {
		name     string
		category string
		unit     string
		minPrice float64
		maxPrice float64
	}{
		{"Portland Cement 94lb", "Concrete", "bag", 12, 18},
		{"Rebar #4 20ft", "Steel", "piece", 9, 15},
		{"2x4 Stud 8ft", "Lumber", "piece", 3, 6},
		{"Drywall Sheet 4x8", "Drywall", "sheet", 11, 16},
		{"THHN Copper Wire 500ft", "Electrical", "spool", 80, 140},
		{"PVC Pipe 2in 10ft", "Plumbing", "piece", 7, 12},
		{"Asphalt Shingles", "Roofing", "bundle", 28, 42},
		{"Structural Steel Beam W8", "Steel", "foot", 20, 35},
	}
	loanPurposes = []string{
		"Equipment financing", "Working capital line", "Materials bridge loan",
		"Payroll financing for awarded contract", "Construction-to-permanent financing",
	}
)
